package commands

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// ClaimOrderCommandHandler assigns an accepted order to the first driver who claims it.
//
// The claim is decided by a single conditional update in storage. Of any number of
// concurrent claims exactly one succeeds; every other driver gets order.ErrAlreadyClaimed
// and the order is left as the winner wrote it. Claiming an order that is not yet
// accepted or was canceled yields *order.InvalidTransitionError.
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewClaimOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle returns the order assigned to the driver.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
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
	if err = o.Claim(cmd.Driver(), now); err != nil {
		return nil, err
	}

	won, err := orderRepo.Claim(ctx, o.ID(), cmd.Driver().ID(), now)
	if err != nil {
		return nil, err
	}
	if !won {
		current, err := orderRepo.Get(ctx, cmd.OrderID())
		if err != nil {
			return nil, err
		}
		if err = current.Claim(cmd.Driver(), now); err != nil {
			return nil, err
		}
		return nil, order.ErrAlreadyClaimed
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, ports.NewOrderEvent(ports.EventOrderClaimed, o, now))
	return o, nil
}
