package queries

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"gorm.io/gorm"
)

type ListAwaitingDriverQueryHandler struct {
	db *gorm.DB
}

func NewListAwaitingDriverQueryHandler(db *gorm.DB) ListAwaitingDriverQueryHandler {
	return ListAwaitingDriverQueryHandler{db: db}
}

// Handle uses updated_at as the acceptance time: an Accepted order without a driver
// was last written when it was accepted or released.
func (h ListAwaitingDriverQueryHandler) Handle(
	ctx context.Context,
	query ListAwaitingDriverQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := `SELECT` + summaryColumns + `
		FROM orders
		WHERE status = ? AND driver_id IS NULL AND updated_at < ?`
	args := []any{int(order.Accepted), query.AcceptedBefore()}
	if updatedAt, id, ok := query.Cursor(); ok {
		stmt += ` AND (updated_at, id) > (?, ?)`
		args = append(args, updatedAt, id.Bytes())
	}
	stmt += `
		ORDER BY updated_at, id
		LIMIT ?`
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, errs.NewPersistenceUnavailableError("list orders awaiting a driver", err)
	}
	defer rows.Close()

	return scanSummaries(rows, kernel.RoleRestaurant)
}
