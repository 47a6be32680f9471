package queries

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

type GetOrderQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetOrderQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

// Handle returns order.ErrNotParticipant when the actor may not see the order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	o, err := uow.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	actor := query.Actor()
	if !o.CanBeViewedBy(actor) {
		return GetOrderQueryResponse{}, order.ErrNotParticipant
	}

	resp := GetOrderQueryResponse{
		Order:       o,
		StatusLabel: o.Status().Label(actor.Role()),
	}
	if o.CheckParticipant(actor) == nil {
		resp.AllowedTargets = o.Status().AllowedTargets(actor.Role())
	}

	if o.Status() == order.Delivered {
		r, err := uow.ReviewRepository().GetByOrder(ctx, o.ID())
		switch {
		case err == nil:
			resp.Review = r
		case !errors.Is(err, errs.ErrObjectNotFound):
			return GetOrderQueryResponse{}, err
		}
	}

	return resp, nil
}
