// Package cart implements the customer's pending selection prior to checkout.
//
// The package includes:
//   - Cart: the aggregate root, owned by one customer device
//   - Line: one menu item with its quantity and notes
//   - MenuItem: the catalog view of an item being added
//   - Owner: the customer/device pair a cart is stored under
//
// Key business rules:
//   - A cart holds lines from a single restaurant for its whole lifetime; adding an item
//     from another restaurant is rejected with ErrRestaurantMismatch and leaves the cart unchanged
//   - Adding an item already in the cart merges the lines: quantities are summed and notes replaced
//   - A line never has a quantity below one; driving it to zero removes the line
//   - Item count and subtotal are derived from the lines on every call and never stored
package cart
