package notifier

import (
	"context"
	"log/slog"

	"foodorder/internal/core/ports"
)

// LogNotifier writes events to the log. It stands in for Kafka when no brokers are
// configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "LogNotifier")}
}

func (n *LogNotifier) Notify(ctx context.Context, event ports.Event) {
	m := newMessage(event)
	n.logger.InfoContext(ctx, "event",
		"type", m.Type,
		"orderId", m.OrderID,
		"customerId", m.CustomerID,
		"restaurantId", m.RestaurantID,
		"driverId", m.DriverID,
		"status", m.Status,
	)
}
