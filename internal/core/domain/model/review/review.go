// Package review implements the review left by a customer on a delivered order.
//
// At most one review exists per order, it may only be created once the order is
// Delivered, and it is immutable afterwards.
package review

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 2000
)

var (
	ErrReviewIsNotConstructed = errors.New("Review must be created via NewReview or RestoreReview constructor")

	// ErrNotDelivered is returned while the order has not reached Delivered. For a
	// canceled order it is permanent.
	ErrNotDelivered = errors.New("order has not been delivered")

	// ErrAlreadyReviewed is returned for every review after the first one on an order.
	ErrAlreadyReviewed = errors.New("order has already been reviewed")
)

// Review is a customer's rating of a delivered order.
type Review struct {
	id            kernel.UUID
	orderID       kernel.UUID
	customerID    kernel.UUID
	restaurantID  kernel.UUID
	rating        int
	comment       string
	createdAt     time.Time
	isConstructed bool
}

// CheckReviewable reports whether author may review o at all, independent of the
// review's content.
//
// Returns:
//   - order.ErrNotParticipant if author is not the order's customer
//   - ErrNotDelivered if the order is not Delivered
func CheckReviewable(o *order.Order, author kernel.Actor) error {
	if err := errors.Join(o.Validate(), author.Validate()); err != nil {
		return err
	}
	if !author.Is(kernel.RoleCustomer) || o.CheckParticipant(author) != nil {
		return order.ErrNotParticipant
	}
	if o.Status() != order.Delivered {
		return fmt.Errorf("%w: status is %s", ErrNotDelivered, o.Status())
	}
	return nil
}

// NewReview creates a review for o on behalf of the order's customer.
//
// Returns:
//   - the errors of CheckReviewable
//   - errs.ValueIsOutOfRangeError for a rating outside [MinRating, MaxRating] or an oversized comment
//
// Uniqueness per order is enforced by the caller against storage, before the content
// is validated.
func NewReview(id kernel.UUID, o *order.Order, author kernel.Actor, rating int, comment string, at time.Time) (*Review, error) {
	if err := errors.Join(id.Validate(), CheckReviewable(o, author)); err != nil {
		return nil, err
	}

	return RestoreReview(id, o.ID(), o.CustomerID(), o.RestaurantID(), rating, comment, at)
}

// RestoreReview rebuilds a review from storage.
func RestoreReview(
	id, orderID, customerID, restaurantID kernel.UUID,
	rating int,
	comment string,
	createdAt time.Time,
) (*Review, error) {
	var ratingErr, commentErr error
	if rating < MinRating || rating > MaxRating {
		ratingErr = errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	if n := utf8.RuneCountInString(comment); n > MaxCommentLength {
		commentErr = errs.NewValueIsOutOfRangeError("comment length", n, 0, MaxCommentLength)
	}
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		customerID.Validate(),
		restaurantID.Validate(),
		ratingErr,
		commentErr,
	); err != nil {
		return nil, err
	}

	return &Review{
		id:            id,
		orderID:       orderID,
		customerID:    customerID,
		restaurantID:  restaurantID,
		rating:        rating,
		comment:       comment,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (r *Review) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReviewIsNotConstructed
	}
	return nil
}

func (r *Review) ID() kernel.UUID { return r.id }
func (r *Review) OrderID() kernel.UUID { return r.orderID }
func (r *Review) CustomerID() kernel.UUID { return r.customerID }
func (r *Review) RestaurantID() kernel.UUID { return r.restaurantID }
func (r *Review) Rating() int { return r.rating }
func (r *Review) Comment() string { return r.comment }
func (r *Review) CreatedAt() time.Time { return r.createdAt }
