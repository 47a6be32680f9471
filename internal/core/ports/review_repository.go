package ports

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/review"
)

// ReviewRepository defines the persistence contract for reviews. Storage holds a
// unique constraint on the order id.
type ReviewRepository interface {
	// Add persists a review. Returns review.ErrAlreadyReviewed when the order already has one.
	Add(ctx context.Context, r *review.Review) error

	// ExistsForOrder reports whether the order has been reviewed.
	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)

	// GetByOrder retrieves the review of an order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*review.Review, error)
}
