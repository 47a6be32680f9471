package queries

import (
	"database/sql"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// summaryColumns is the column list every summary query selects, in scan order.
const summaryColumns = `
			id,
			customer_id,
			restaurant_id,
			driver_id,
			status,
			total,
			placed_at,
			updated_at`

// OrderSummary is the list view of an order.
type OrderSummary struct {
	ID           kernel.UUID
	CustomerID   kernel.UUID
	RestaurantID kernel.UUID
	DriverID     *kernel.UUID
	Status       order.Status
	StatusLabel  string
	Total        kernel.Money
	PlacedAt     time.Time
	UpdatedAt    time.Time
}

// scanSummaries reads rows selected with summaryColumns and labels each status for viewer.
func scanSummaries(rows *sql.Rows, viewer kernel.Role) ([]OrderSummary, error) {
	summaries := make([]OrderSummary, 0)

	for rows.Next() {
		var (
			id, customerID, restaurantID uuid.UUID
			driverID                     uuid.NullUUID
			status                       int
			total                        int64
			s                            OrderSummary
		)

		if err := rows.Scan(
			&id,
			&customerID,
			&restaurantID,
			&driverID,
			&status,
			&total,
			&s.PlacedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, errs.NewPersistenceUnavailableError("scan order summary", err)
		}

		var err error
		if s.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if s.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if s.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
			return nil, err
		}
		if driverID.Valid {
			d, err := kernel.UUIDFromBytes(driverID.UUID[:])
			if err != nil {
				return nil, err
			}
			s.DriverID = &d
		}

		s.Status = order.Status(status)
		if err := s.Status.Validate(); err != nil {
			return nil, err
		}
		s.StatusLabel = s.Status.Label(viewer)

		if s.Total, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}

		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, errs.NewPersistenceUnavailableError("read order summaries", err)
	}

	return summaries, nil
}

func validateLimit(limit int) error {
	if limit < 1 || limit > MaxListLimit {
		return errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	return nil
}
