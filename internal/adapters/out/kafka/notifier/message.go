package notifier

import (
	"time"

	"foodorder/internal/core/ports"
)

// message is the JSON payload published for every event.
type message struct {
	Type         string    `json:"type"`
	OrderID      string    `json:"orderId"`
	CustomerID   string    `json:"customerId"`
	RestaurantID string    `json:"restaurantId"`
	DriverID     string    `json:"driverId,omitempty"`
	Status       string    `json:"status,omitempty"`
	Rating       int       `json:"rating,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

func newMessage(e ports.Event) message {
	m := message{
		Type:         string(e.Type),
		OrderID:      e.OrderID.String(),
		CustomerID:   e.CustomerID.String(),
		RestaurantID: e.RestaurantID.String(),
		Rating:       e.Rating,
		OccurredAt:   e.OccurredAt.UTC(),
	}
	if e.DriverID != nil {
		m.DriverID = e.DriverID.String()
	}
	if e.Status.Validate() == nil {
		m.Status = e.Status.String()
	}
	return m
}
