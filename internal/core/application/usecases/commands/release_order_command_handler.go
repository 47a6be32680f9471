package commands

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// ReleaseOrderCommandHandler returns a DriverAssigned order to Accepted with no driver,
// making it claimable again. The write only matches while the order is still assigned
// to the releasing driver.
type ReleaseOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewReleaseOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) ReleaseOrderCommandHandler {
	return ReleaseOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h ReleaseOrderCommandHandler) Handle(ctx context.Context, cmd ReleaseOrderCommand) (*order.Order, error) {
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
	if err = o.Release(cmd.Driver(), now); err != nil {
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
		from := current.Status()
		if err = current.Release(cmd.Driver(), now); err != nil {
			return nil, err
		}
		e := order.NewInvalidTransitionError(from, order.Accepted, cmd.Driver().Role())
		e.Reason = concurrentChangeReason
		return nil, e
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, ports.NewOrderEvent(ports.EventOrderReleased, o, now))
	return o, nil
}
