package ports

import (
	"context"

	"foodorder/internal/core/domain/model/cart"
)

// CartStore keeps one cart per owner.
type CartStore interface {
	// Get returns the owner's cart, or an empty cart when none is stored.
	Get(ctx context.Context, owner cart.Owner) (*cart.Cart, error)

	// Update loads the owner's cart, applies fn and stores the result as one atomic
	// read-modify-write. When fn returns an error nothing is stored and the error is
	// returned unchanged.
	Update(ctx context.Context, owner cart.Owner, fn func(c *cart.Cart) error) (*cart.Cart, error)

	// Delete removes the owner's cart. Deleting a missing cart is not an error.
	Delete(ctx context.Context, owner cart.Owner) error
}
