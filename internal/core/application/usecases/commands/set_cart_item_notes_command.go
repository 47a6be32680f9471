package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var (
	ErrSetCartItemNotesCommandIsNotConstructed = errors.New(
		"SetCartItemNotesCommand must be created via NewSetCartItemNotesCommand constructor",
	)
)

// SetCartItemNotesCommand replaces the preparation notes of a cart line.
// Empty notes clear them.
type SetCartItemNotesCommand struct { //nolint:recvcheck //using for validation
	owner  cart.Owner
	itemID kernel.UUID
	notes  string

	guard guard.ConstructorGuard
}

func NewSetCartItemNotesCommand(owner cart.Owner, itemID kernel.UUID, notes string) (SetCartItemNotesCommand, error) {
	cmd := SetCartItemNotesCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(owner.Validate(), itemID.Validate()); err != nil {
		return SetCartItemNotesCommand{}, err
	}
	cmd.owner = owner
	cmd.itemID = itemID

	return cmd, nil
}

func (c SetCartItemNotesCommand) Validate() error {
	return c.guard.Validate(ErrSetCartItemNotesCommandIsNotConstructed)
}

func (c SetCartItemNotesCommand) Owner() cart.Owner {
	return c.owner
}

func (c SetCartItemNotesCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c SetCartItemNotesCommand) Notes() string {
	return c.notes
}
