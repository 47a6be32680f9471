package commands

import (
	"context"

	"foodorder/internal/core/ports"
)

type ClearCartCommandHandler struct {
	carts ports.CartStore
}

func NewClearCartCommandHandler(carts ports.CartStore) ClearCartCommandHandler {
	return ClearCartCommandHandler{carts: carts}
}

func (h ClearCartCommandHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.carts.Delete(ctx, cmd.Owner())
}
