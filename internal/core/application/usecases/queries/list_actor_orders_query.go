package queries

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/guard"
)

var (
	ErrListActorOrdersQueryIsNotConstructed = errors.New(
		"ListActorOrdersQuery must be created via NewListActorOrdersQuery constructor",
	)
)

// ListActorOrdersQuery lists the orders an actor participates in, newest first:
// a customer's own orders, every order of a restaurant, or the orders assigned to a
// driver.
//
// Example:
//
//	query, err := NewListActorOrdersQuery(actor, nil, DefaultListLimit)
//	if err != nil {
//	    return err
//	}
//	summaries, err := handler.Handle(ctx, query)
type ListActorOrdersQuery struct {
	actor  kernel.Actor
	status *order.Status
	limit  int

	guard guard.ConstructorGuard
}

// NewListActorOrdersQuery creates the query. A nil status lists every status.
func NewListActorOrdersQuery(actor kernel.Actor, status *order.Status, limit int) (ListActorOrdersQuery, error) {
	var statusErr error
	if status != nil {
		statusErr = status.Validate()
	}
	if err := errors.Join(actor.Validate(), statusErr, validateLimit(limit)); err != nil {
		return ListActorOrdersQuery{}, err
	}

	return ListActorOrdersQuery{
		actor:  actor,
		status: status,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListActorOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListActorOrdersQueryIsNotConstructed)
}

func (q ListActorOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListActorOrdersQuery) Status() *order.Status {
	return q.status
}

func (q ListActorOrdersQuery) Limit() int {
	return q.limit
}
