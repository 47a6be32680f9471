package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/guard"
)

var (
	ErrClaimOrderCommandIsNotConstructed = errors.New(
		"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
	)
)

// ClaimOrderCommand is a driver's attempt to take an accepted order.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	driver  kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClaimOrderCommand(driver kernel.Actor, orderID kernel.UUID) (ClaimOrderCommand, error) {
	if err := errors.Join(validateDriver(driver), orderID.Validate()); err != nil {
		return ClaimOrderCommand{}, err
	}

	return ClaimOrderCommand{
		driver:  driver,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

func (c ClaimOrderCommand) Driver() kernel.Actor {
	return c.driver
}

func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func validateDriver(driver kernel.Actor) error {
	if err := driver.Validate(); err != nil {
		return err
	}
	if !driver.Is(kernel.RoleDriver) {
		return order.ErrRoleNotAllowed
	}
	return nil
}
