package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var (
	ErrChangeCartItemQuantityCommandIsNotConstructed = errors.New(
		"ChangeCartItemQuantityCommand must be created via NewChangeCartItemQuantityCommand constructor",
	)
	ErrQuantityDeltaIsZero = errors.New("quantity delta must not be zero")
)

// ChangeCartItemQuantityCommand adjusts the quantity of a cart line by delta.
// A resulting quantity of zero or less removes the line.
type ChangeCartItemQuantityCommand struct { //nolint:recvcheck //using for validation
	owner  cart.Owner
	itemID kernel.UUID
	delta  int

	guard guard.ConstructorGuard
}

func NewChangeCartItemQuantityCommand(owner cart.Owner, itemID kernel.UUID, delta int) (ChangeCartItemQuantityCommand, error) {
	cmd := ChangeCartItemQuantityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwner(owner),
		cmd.setItemID(itemID),
		cmd.setDelta(delta),
	); err != nil {
		return ChangeCartItemQuantityCommand{}, err
	}

	return cmd, nil
}

func (c ChangeCartItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrChangeCartItemQuantityCommandIsNotConstructed)
}

func (c ChangeCartItemQuantityCommand) Owner() cart.Owner {
	return c.owner
}

func (c ChangeCartItemQuantityCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c ChangeCartItemQuantityCommand) Delta() int {
	return c.delta
}

func (c *ChangeCartItemQuantityCommand) setOwner(owner cart.Owner) error {
	if err := owner.Validate(); err != nil {
		return err
	}

	c.owner = owner
	return nil
}

func (c *ChangeCartItemQuantityCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *ChangeCartItemQuantityCommand) setDelta(delta int) error {
	if delta == 0 {
		return ErrQuantityDeltaIsZero
	}

	c.delta = delta
	return nil
}
