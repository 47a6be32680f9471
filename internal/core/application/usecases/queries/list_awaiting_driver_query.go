package queries

import (
	"errors"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	ErrListAwaitingDriverQueryIsNotConstructed = errors.New(
		"ListAwaitingDriverQuery must be created via NewListAwaitingDriverQuery constructor",
	)
)

// ListAwaitingDriverQuery finds accepted orders no driver has claimed since before
// acceptedBefore. It is read-only; nothing is canceled automatically.
//
// Results are ordered by (updated_at, id); After continues behind the last row of a
// page.
type ListAwaitingDriverQuery struct {
	acceptedBefore time.Time
	limit          int

	afterUpdatedAt time.Time
	afterID        *kernel.UUID

	guard guard.ConstructorGuard
}

func NewListAwaitingDriverQuery(acceptedBefore time.Time, limit int) (ListAwaitingDriverQuery, error) {
	var timeErr error
	if acceptedBefore.IsZero() {
		timeErr = errs.NewValueIsRequiredError("acceptedBefore")
	}
	if err := errors.Join(timeErr, validateLimit(limit)); err != nil {
		return ListAwaitingDriverQuery{}, err
	}

	return ListAwaitingDriverQuery{
		acceptedBefore: acceptedBefore,
		limit:          limit,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q ListAwaitingDriverQuery) Validate() error {
	return q.guard.Validate(ErrListAwaitingDriverQueryIsNotConstructed)
}

func (q ListAwaitingDriverQuery) AcceptedBefore() time.Time {
	return q.acceptedBefore
}

func (q ListAwaitingDriverQuery) Limit() int {
	return q.limit
}

// After returns the query for the page that follows last.
func (q ListAwaitingDriverQuery) After(last OrderSummary) ListAwaitingDriverQuery {
	id := last.ID
	q.afterUpdatedAt = last.UpdatedAt
	q.afterID = &id
	return q
}

// Cursor returns the position After set, if any.
func (q ListAwaitingDriverQuery) Cursor() (time.Time, kernel.UUID, bool) {
	if q.afterID == nil {
		return time.Time{}, kernel.UUID{}, false
	}
	return q.afterUpdatedAt, *q.afterID, true
}
