package commands

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

const concurrentChangeReason = "the order was changed by someone else, reload it and try again"

// ChangeOrderStatusCommandHandler applies a role-scoped status transition.
//
// The transition is validated on the aggregate and written with a conditional update
// that matches the status and driver the aggregate was loaded with. When another writer
// got there first the order is re-read and the transition is reported against its new
// status, so a request is never silently applied to a state it was not checked against.
//
// Example:
//
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrNotParticipant):
//	    // 403
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // 409, err explains from, to and role
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle returns the order in its new status.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expected := o.Snapshot()
	if err = o.Transition(cmd.Actor(), cmd.Target(), now); err != nil {
		return nil, err
	}

	updated, err := orderRepo.UpdateIfUnchanged(ctx, o, expected)
	if err != nil {
		return nil, err
	}
	if !updated {
		current, err := orderRepo.Get(ctx, cmd.OrderID())
		if err != nil {
			return nil, err
		}
		return nil, transitionConflict(current, cmd.Actor(), cmd.Target())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, ports.NewOrderEvent(ports.EventOrderStatusChanged, o, now))
	return o, nil
}

// transitionConflict re-checks the transition against the order as another writer left it.
func transitionConflict(current *order.Order, actor kernel.Actor, target order.Status) error {
	from := current.Status()
	if err := current.Transition(actor, target, time.Now().UTC()); err != nil {
		return err
	}

	e := order.NewInvalidTransitionError(from, target, actor.Role())
	e.Reason = concurrentChangeReason
	return e
}
