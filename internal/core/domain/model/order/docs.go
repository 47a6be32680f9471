// Package order provides the Order aggregate and the role-scoped status state
// machine that governs it.
//
// The package includes:
//   - Order: the durable record created by checkout and advanced by restaurant and driver actions
//   - Item: an immutable line of an order with the menu name and price frozen at checkout
//   - Draft: the transient payload assembled from a cart, never persisted
//   - Status: the canonical lifecycle and its transition table
//
// Key business rules:
//   - Orders follow Placed -> Accepted -> DriverAssigned -> InTransit -> Delivered, and may be
//     Canceled from any non-terminal state by the roles the transition table allows
//   - Delivered and Canceled are terminal; orders are never deleted
//   - A transition not in the table is rejected with *InvalidTransitionError and the order is unchanged
//   - Accepted -> DriverAssigned happens only through Claim, which storage applies as one
//     conditional update so at most one driver wins
//   - Only participants may act on an order: its customer, staff of its restaurant and its
//     assigned driver
package order
