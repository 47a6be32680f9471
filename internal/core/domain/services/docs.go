// Package services provides domain services that work across aggregates of the
// food-ordering domain.
//
// The package includes:
//   - CheckoutAssembler: turns a cart plus a delivery address into an order.Draft
//   - ShippingFeePolicy: decides the shipping fee of a checkout
package services
