package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	ErrAddCartItemCommandIsNotConstructed = errors.New(
		"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
	)
)

// AddCartItemCommand represents a request to put a menu item into the owner's cart.
// Name, price and restaurant are taken from the menu catalog, never from the client.
//
// Example:
//
//	owner, _ := cart.NewOwner(customerID, "phone")
//	cmd, err := NewAddCartItemCommand(owner, itemID, 2, "no onions")
//	if err != nil {
//	    return fmt.Errorf("invalid cart item: %w", err)
//	}
//
//	c, err := handler.Handle(ctx, cmd)
//	var mismatch *cart.RestaurantMismatchError
//	if errors.As(err, &mismatch) {
//	    // ask the customer to clear the cart first
//	}
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	owner    cart.Owner
	itemID   kernel.UUID
	quantity int
	notes    string

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand creates a command to add quantity units of a menu item.
// Quantity must be within cart.MinQuantity and cart.MaxQuantity.
func NewAddCartItemCommand(owner cart.Owner, itemID kernel.UUID, quantity int, notes string) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwner(owner),
		cmd.setItemID(itemID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

func (c AddCartItemCommand) Owner() cart.Owner {
	return c.owner
}

func (c AddCartItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

func (c AddCartItemCommand) Notes() string {
	return c.notes
}

func (c *AddCartItemCommand) setOwner(owner cart.Owner) error {
	if err := owner.Validate(); err != nil {
		return err
	}

	c.owner = owner
	return nil
}

func (c *AddCartItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *AddCartItemCommand) setQuantity(quantity int) error {
	if quantity < cart.MinQuantity || quantity > cart.MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, cart.MinQuantity, cart.MaxQuantity)
	}

	c.quantity = quantity
	return nil
}
