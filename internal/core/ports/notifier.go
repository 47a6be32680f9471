package ports

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

type EventType string

const (
	EventOrderPlaced         EventType = "order.placed"
	EventOrderStatusChanged  EventType = "order.status_changed"
	EventOrderClaimed        EventType = "order.claimed"
	EventOrderReleased       EventType = "order.released"
	EventOrderAwaitingDriver EventType = "order.awaiting_driver"
	EventReviewSubmitted     EventType = "review.submitted"
)

// Event is a notification about an order.
type Event struct {
	Type         EventType
	OrderID      kernel.UUID
	CustomerID   kernel.UUID
	RestaurantID kernel.UUID
	DriverID     *kernel.UUID
	Status       order.Status
	Rating       int
	OccurredAt   time.Time
}

// NewOrderEvent builds an event from the current state of o.
func NewOrderEvent(eventType EventType, o *order.Order, at time.Time) Event {
	return Event{
		Type:         eventType,
		OrderID:      o.ID(),
		CustomerID:   o.CustomerID(),
		RestaurantID: o.RestaurantID(),
		DriverID:     o.DriverID(),
		Status:       o.Status(),
		OccurredAt:   at,
	}
}

// Notifier is the fire-and-forget notification surface. Implementations report
// delivery failures through their own logging; callers never wait for confirmation.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}
