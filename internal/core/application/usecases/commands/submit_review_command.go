package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var (
	ErrSubmitReviewCommandIsNotConstructed = errors.New(
		"SubmitReviewCommand must be created via NewSubmitReviewCommand constructor",
	)
)

// SubmitReviewCommand is a customer's rating of a delivered order. Rating and comment
// are validated by the handler once the order is known to accept a review, so a
// repeated submission is reported as already reviewed whatever its content.
type SubmitReviewCommand struct {
	customer kernel.Actor
	orderID  kernel.UUID
	rating   int
	comment  string

	guard guard.ConstructorGuard
}

func NewSubmitReviewCommand(customer kernel.Actor, orderID kernel.UUID, rating int, comment string) (SubmitReviewCommand, error) {
	cmd := SubmitReviewCommand{
		customer: customer,
		orderID:  orderID,
		rating:   rating,
		comment:  comment,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		customer.Validate(),
		orderID.Validate(),
	); err != nil {
		return SubmitReviewCommand{}, err
	}

	return cmd, nil
}

func (c SubmitReviewCommand) Validate() error {
	return c.guard.Validate(ErrSubmitReviewCommandIsNotConstructed)
}

func (c SubmitReviewCommand) Customer() kernel.Actor {
	return c.customer
}

func (c SubmitReviewCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SubmitReviewCommand) Rating() int {
	return c.rating
}

func (c SubmitReviewCommand) Comment() string {
	return c.comment
}

