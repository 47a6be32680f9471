package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var (
	ErrReleaseOrderCommandIsNotConstructed = errors.New(
		"ReleaseOrderCommand must be created via NewReleaseOrderCommand constructor",
	)
)

// ReleaseOrderCommand lets the assigned driver hand an order back before pickup.
type ReleaseOrderCommand struct { //nolint:recvcheck //using for validation
	driver  kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewReleaseOrderCommand(driver kernel.Actor, orderID kernel.UUID) (ReleaseOrderCommand, error) {
	if err := errors.Join(validateDriver(driver), orderID.Validate()); err != nil {
		return ReleaseOrderCommand{}, err
	}

	return ReleaseOrderCommand{
		driver:  driver,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ReleaseOrderCommand) Validate() error {
	return c.guard.Validate(ErrReleaseOrderCommandIsNotConstructed)
}

func (c ReleaseOrderCommand) Driver() kernel.Actor {
	return c.driver
}

func (c ReleaseOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
