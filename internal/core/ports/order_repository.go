// Package ports defines the contracts between the core and its adapters: storage,
// the menu catalog and address book collaborators, and the notification surface.
package ports

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Every driver or transport failure is returned as *errs.PersistenceUnavailableError.
// A lookup that matches nothing returns *errs.ObjectNotFoundError.
type OrderRepository interface {
	// Add persists a new order with its items.
	// Returns order.ErrDuplicateOrder when the customer already has an order with the
	// same idempotency key.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByIdempotencyKey retrieves the order a customer placed with key.
	GetByIdempotencyKey(ctx context.Context, customerID kernel.UUID, key string) (*order.Order, error)

	// UpdateIfUnchanged writes the status, driver, deliveredAt and updatedAt of aggregate
	// only if the stored status and driver still equal expected. It reports false, not an
	// error, when another writer changed the order first.
	UpdateIfUnchanged(ctx context.Context, aggregate *order.Order, expected order.Snapshot) (bool, error)

	// Claim assigns driverID and moves the order to DriverAssigned in a single conditional
	// update that matches only Accepted orders without a driver. It reports whether this
	// call won.
	Claim(ctx context.Context, orderID, driverID kernel.UUID, at time.Time) (bool, error)
}
