package commands

import (
	"context"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/ports"
)

type SetCartItemNotesCommandHandler struct {
	carts ports.CartStore
}

func NewSetCartItemNotesCommandHandler(carts ports.CartStore) SetCartItemNotesCommandHandler {
	return SetCartItemNotesCommandHandler{carts: carts}
}

func (h SetCartItemNotesCommandHandler) Handle(ctx context.Context, cmd SetCartItemNotesCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.carts.Update(ctx, cmd.Owner(), func(c *cart.Cart) error {
		return c.SetNotes(cmd.ItemID(), cmd.Notes())
	})
}
