package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var (
	ErrRemoveCartItemCommandIsNotConstructed = errors.New(
		"RemoveCartItemCommand must be created via NewRemoveCartItemCommand constructor",
	)
)

// RemoveCartItemCommand drops a line from the owner's cart.
type RemoveCartItemCommand struct { //nolint:recvcheck //using for validation
	owner  cart.Owner
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveCartItemCommand(owner cart.Owner, itemID kernel.UUID) (RemoveCartItemCommand, error) {
	if err := errors.Join(owner.Validate(), itemID.Validate()); err != nil {
		return RemoveCartItemCommand{}, err
	}

	return RemoveCartItemCommand{
		owner:  owner,
		itemID: itemID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveCartItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartItemCommandIsNotConstructed)
}

func (c RemoveCartItemCommand) Owner() cart.Owner {
	return c.owner
}

func (c RemoveCartItemCommand) ItemID() kernel.UUID {
	return c.itemID
}
