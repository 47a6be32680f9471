package order

import (
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/kernel"
)

var (
	// ErrInvalidTransition is the sentinel wrapped by *InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyClaimed is returned to every driver but the first one to claim an order.
	ErrAlreadyClaimed = errors.New("order was just taken by another driver")

	// ErrNotParticipant is returned when the actor is not the order's customer, staff of
	// its restaurant, or its assigned driver.
	ErrNotParticipant = errors.New("actor does not participate in this order")

	// ErrRoleNotAllowed is returned when the actor's role may never perform the operation.
	ErrRoleNotAllowed = errors.New("role is not allowed to perform this operation")

	// ErrDuplicateOrder is returned by storage when the customer already placed an order
	// with the same idempotency key.
	ErrDuplicateOrder = errors.New("order with this idempotency key already exists")
)

// InvalidTransitionError describes a rejected status change. The caller should refresh
// the order and derive the allowed actions again rather than retry.
type InvalidTransitionError struct {
	From   Status
	To     Status
	Role   kernel.Role
	Reason string
}

func NewInvalidTransitionError(from, to Status, role kernel.Role) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Role: role}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s -> %s is not allowed for %s", ErrInvalidTransition, e.From, e.To, e.Role)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
