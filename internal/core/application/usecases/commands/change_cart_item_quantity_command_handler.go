package commands

import (
	"context"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/ports"
)

type ChangeCartItemQuantityCommandHandler struct {
	carts ports.CartStore
}

func NewChangeCartItemQuantityCommandHandler(carts ports.CartStore) ChangeCartItemQuantityCommandHandler {
	return ChangeCartItemQuantityCommandHandler{carts: carts}
}

// Handle returns the updated cart. An unknown item yields *errs.ObjectNotFoundError.
func (h ChangeCartItemQuantityCommandHandler) Handle(ctx context.Context, cmd ChangeCartItemQuantityCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.carts.Update(ctx, cmd.Owner(), func(c *cart.Cart) error {
		return c.ChangeQuantity(cmd.ItemID(), cmd.Delta())
	})
}
