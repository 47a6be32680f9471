package queries

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"gorm.io/gorm"
)

type ListActorOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListActorOrdersQueryHandler(db *gorm.DB) ListActorOrdersQueryHandler {
	return ListActorOrdersQueryHandler{db: db}
}

func (h ListActorOrdersQueryHandler) Handle(ctx context.Context, query ListActorOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	var column string
	var owner kernel.UUID
	switch actor.Role() {
	case kernel.RoleCustomer:
		column, owner = "customer_id", actor.ID()
	case kernel.RoleDriver:
		column, owner = "driver_id", actor.ID()
	case kernel.RoleRestaurant:
		if actor.RestaurantID() == nil {
			return nil, order.ErrNotParticipant
		}
		column, owner = "restaurant_id", *actor.RestaurantID()
	default:
		return nil, order.ErrRoleNotAllowed
	}

	stmt := `SELECT` + summaryColumns + `
		FROM orders
		WHERE ` + column + ` = ?`
	args := []any{owner.Bytes()}
	if s := query.Status(); s != nil {
		stmt += ` AND status = ?`
		args = append(args, int(*s))
	}
	stmt += `
		ORDER BY placed_at DESC, id
		LIMIT ?`
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, errs.NewPersistenceUnavailableError("list actor orders", err)
	}
	defer rows.Close()

	return scanSummaries(rows, actor.Role())
}
