package queries

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/guard"
)

var (
	ErrListAvailableOrdersQueryIsNotConstructed = errors.New(
		"ListAvailableOrdersQuery must be created via NewListAvailableOrdersQuery constructor",
	)
)

// ListAvailableOrdersQuery lists the orders drivers may claim, longest waiting first.
// The list is a hint: a listed order may already be taken when the claim arrives.
type ListAvailableOrdersQuery struct {
	driver kernel.Actor
	limit  int

	guard guard.ConstructorGuard
}

// NewListAvailableOrdersQuery returns order.ErrRoleNotAllowed for non-drivers.
func NewListAvailableOrdersQuery(driver kernel.Actor, limit int) (ListAvailableOrdersQuery, error) {
	if err := errors.Join(driver.Validate(), validateLimit(limit)); err != nil {
		return ListAvailableOrdersQuery{}, err
	}
	if !driver.Is(kernel.RoleDriver) {
		return ListAvailableOrdersQuery{}, order.ErrRoleNotAllowed
	}

	return ListAvailableOrdersQuery{driver: driver, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableOrdersQueryIsNotConstructed)
}

func (q ListAvailableOrdersQuery) Driver() kernel.Actor {
	return q.driver
}

func (q ListAvailableOrdersQuery) Limit() int {
	return q.limit
}
