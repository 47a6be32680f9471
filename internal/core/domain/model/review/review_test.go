package review_test

import (
	"strings"
	"testing"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/review"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreOrder(t *testing.T, customerID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	price, _ := kernel.NewMoney(1000)
	item, err := order.NewItem(kernel.NewUUID(), "soup", price, 1, "")
	require.NoError(t, err)

	r := order.Record{
		ID:           kernel.NewUUID(),
		CustomerID:   customerID,
		RestaurantID: kernel.NewUUID(),
		AddressID:    kernel.NewUUID(),
		Items:        []order.Item{item},
		Subtotal:     price,
		Total:        price,
		Status:       status,
		PlacedAt:     time.Now(),
	}
	if status == order.DriverAssigned || status == order.InTransit || status == order.Delivered {
		d := kernel.NewUUID()
		r.DriverID = &d
	}
	if status == order.Delivered {
		now := time.Now()
		r.DeliveredAt = &now
	}
	o, err := order.RestoreOrder(r)
	require.NoError(t, err)
	return o
}

func customer(t *testing.T, id kernel.UUID) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, kernel.RoleCustomer, nil)
	require.NoError(t, err)
	return a
}

func TestNewReview(t *testing.T) {
	customerID := kernel.NewUUID()
	author := customer(t, customerID)

	t.Run("delivered order accepts a review", func(t *testing.T) {
		o := restoreOrder(t, customerID, order.Delivered)
		at := time.Now()

		r, err := review.NewReview(kernel.NewUUID(), o, author, 5, "hot and fast", at)

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.True(t, r.OrderID().IsEqual(o.ID()))
		assert.True(t, r.CustomerID().IsEqual(customerID))
		assert.True(t, r.RestaurantID().IsEqual(o.RestaurantID()))
		assert.Equal(t, 5, r.Rating())
		assert.Equal(t, "hot and fast", r.Comment())
		assert.Equal(t, at, r.CreatedAt())
	})

	for _, status := range []order.Status{order.Placed, order.Accepted, order.DriverAssigned, order.InTransit, order.Canceled} {
		t.Run("rejected while "+status.String(), func(t *testing.T) {
			o := restoreOrder(t, customerID, status)

			_, err := review.NewReview(kernel.NewUUID(), o, author, 4, "", time.Now())

			require.ErrorIs(t, err, review.ErrNotDelivered)
		})
	}

	t.Run("rating must be within 1..5", func(t *testing.T) {
		o := restoreOrder(t, customerID, order.Delivered)

		for _, rating := range []int{0, 6, -1} {
			_, err := review.NewReview(kernel.NewUUID(), o, author, rating, "", time.Now())

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, "rating %d", rating)
		}
	})

	t.Run("comment is optional but bounded", func(t *testing.T) {
		o := restoreOrder(t, customerID, order.Delivered)

		_, err := review.NewReview(kernel.NewUUID(), o, author, 3, strings.Repeat("a", review.MaxCommentLength+1), time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("only the order's customer may review", func(t *testing.T) {
		o := restoreOrder(t, customerID, order.Delivered)

		_, err := review.NewReview(kernel.NewUUID(), o, customer(t, kernel.NewUUID()), 5, "", time.Now())

		require.ErrorIs(t, err, order.ErrNotParticipant)
	})

	t.Run("zero value inputs are rejected", func(t *testing.T) {
		_, err := review.NewReview(kernel.UUID{}, nil, kernel.Actor{}, 5, "", time.Now())

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
		require.ErrorIs(t, err, kernel.ErrActorIsNotConstructed)
	})
}

func TestCheckReviewable(t *testing.T) {
	customerID := kernel.NewUUID()
	author := customer(t, customerID)

	require.NoError(t, review.CheckReviewable(restoreOrder(t, customerID, order.Delivered), author))
	require.ErrorIs(t, review.CheckReviewable(restoreOrder(t, customerID, order.InTransit), author), review.ErrNotDelivered)
	require.ErrorIs(t,
		review.CheckReviewable(restoreOrder(t, customerID, order.Delivered), customer(t, kernel.NewUUID())),
		order.ErrNotParticipant)
}
