package commands

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/review"
	"foodorder/internal/core/ports"
)

// SubmitReviewCommandHandler records a customer's review of a delivered order.
//
// Checks, in order:
//  1. the order exists and belongs to the customer (order.ErrNotParticipant)
//  2. the order is Delivered (review.ErrNotDelivered, also for canceled orders)
//  3. the order has no review yet (review.ErrAlreadyReviewed)
//  4. rating and comment are within bounds (errs.ValueIsOutOfRangeError)
//
// The unique index on the order id settles concurrent submissions.
type SubmitReviewCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

func NewSubmitReviewCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) SubmitReviewCommandHandler {
	return SubmitReviewCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h SubmitReviewCommandHandler) Handle(ctx context.Context, cmd SubmitReviewCommand) (*review.Review, error) {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = review.CheckReviewable(o, cmd.Customer()); err != nil {
		return nil, err
	}

	reviewRepo := uow.ReviewRepository()
	exists, err := reviewRepo.ExistsForOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, review.ErrAlreadyReviewed
	}

	now := time.Now().UTC()
	r, err := review.NewReview(kernel.NewUUID(), o, cmd.Customer(), cmd.Rating(), cmd.Comment(), now)
	if err != nil {
		return nil, err
	}

	if err = reviewRepo.Add(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	event := ports.NewOrderEvent(ports.EventReviewSubmitted, o, now)
	event.Rating = r.Rating()
	h.notifier.Notify(ctx, event)
	return r, nil
}
