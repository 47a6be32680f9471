package commands

import (
	"context"
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/ports"
)

var (
	ErrMenuItemIsUnavailable = errors.New("menu item is not available right now")
)

// AddCartItemCommandHandler resolves the item in the menu catalog and adds it to the
// owner's cart in one atomic read-modify-write.
//
// Returns *cart.RestaurantMismatchError (wrapping cart.ErrRestaurantMismatch) when the
// cart already holds items from another restaurant; the stored cart is left unchanged.
type AddCartItemCommandHandler struct {
	carts   ports.CartStore
	catalog ports.MenuCatalog
}

func NewAddCartItemCommandHandler(carts ports.CartStore, catalog ports.MenuCatalog) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		carts:   carts,
		catalog: catalog,
	}
}

// Handle processes the command and returns the updated cart.
func (h AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	entry, err := h.catalog.GetMenuItem(ctx, cmd.ItemID())
	if err != nil {
		return nil, err
	}
	if !entry.Available {
		return nil, fmt.Errorf("%w: %s", ErrMenuItemIsUnavailable, entry.Item.Name())
	}

	return h.carts.Update(ctx, cmd.Owner(), func(c *cart.Cart) error {
		return c.AddItem(entry.Item, cmd.Quantity(), cmd.Notes())
	})
}
