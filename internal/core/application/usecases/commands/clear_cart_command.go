package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/pkg/guard"
)

var (
	ErrClearCartCommandIsNotConstructed = errors.New(
		"ClearCartCommand must be created via NewClearCartCommand constructor",
	)
)

// ClearCartCommand empties the owner's cart.
type ClearCartCommand struct { //nolint:recvcheck //using for validation
	owner cart.Owner

	guard guard.ConstructorGuard
}

func NewClearCartCommand(owner cart.Owner) (ClearCartCommand, error) {
	if err := owner.Validate(); err != nil {
		return ClearCartCommand{}, err
	}

	return ClearCartCommand{owner: owner, guard: guard.NewConstructorGuard()}, nil
}

func (c ClearCartCommand) Validate() error {
	return c.guard.Validate(ErrClearCartCommandIsNotConstructed)
}

func (c ClearCartCommand) Owner() cart.Owner {
	return c.owner
}
