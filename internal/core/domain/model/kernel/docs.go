// Package kernel provides the value objects shared by every aggregate of the
// food-ordering domain.
//
// The package includes:
//   - UUID: identifier for customers, restaurants, drivers, menu items, orders and addresses
//   - Money: a non-negative amount in minor currency units
//   - Role and Actor: the authenticated identity on whose behalf an operation runs
//
// All types are immutable and safe for concurrent use. Zero values of UUID and
// Actor are invalid and are rejected by their Validate methods.
package kernel
