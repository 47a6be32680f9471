package commands

import (
	"context"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/ports"
)

type RemoveCartItemCommandHandler struct {
	carts ports.CartStore
}

func NewRemoveCartItemCommandHandler(carts ports.CartStore) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{carts: carts}
}

// Handle returns the updated cart. Removing the last line makes the cart empty, after
// which items from any restaurant may be added.
func (h RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.carts.Update(ctx, cmd.Owner(), func(c *cart.Cart) error {
		return c.RemoveItem(cmd.ItemID())
	})
}
