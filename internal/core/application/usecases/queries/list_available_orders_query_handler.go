package queries

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"gorm.io/gorm"
)

type ListAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListAvailableOrdersQueryHandler(db *gorm.DB) ListAvailableOrdersQueryHandler {
	return ListAvailableOrdersQueryHandler{db: db}
}

func (h ListAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListAvailableOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+summaryColumns+`
		FROM orders
		WHERE status = ? AND driver_id IS NULL
		ORDER BY updated_at, id
		LIMIT ?
	`, int(order.Accepted), query.Limit()).Rows()
	if err != nil {
		return nil, errs.NewPersistenceUnavailableError("list available orders", err)
	}
	defer rows.Close()

	return scanSummaries(rows, kernel.RoleDriver)
}
