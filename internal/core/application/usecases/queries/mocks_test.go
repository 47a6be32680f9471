package queries_test

import (
	"context"
	"testing"
	"time"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/review"
	"foodorder/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCartStore struct {
	mock.Mock
}

func (m *MockCartStore) Get(ctx context.Context, owner cart.Owner) (*cart.Cart, error) {
	args := m.Called(ctx, owner)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}

func (m *MockCartStore) Update(ctx context.Context, owner cart.Owner, fn func(c *cart.Cart) error) (*cart.Cart, error) {
	args := m.Called(ctx, owner, fn)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}

func (m *MockCartStore) Delete(ctx context.Context, owner cart.Owner) error {
	return m.Called(ctx, owner).Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByIdempotencyKey(ctx context.Context, customerID kernel.UUID, key string) (*order.Order, error) {
	args := m.Called(ctx, customerID, key)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) UpdateIfUnchanged(ctx context.Context, aggregate *order.Order, expected order.Snapshot) (bool, error) {
	args := m.Called(ctx, aggregate, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Claim(ctx context.Context, orderID, driverID kernel.UUID, at time.Time) (bool, error) {
	args := m.Called(ctx, orderID, driverID, at)
	return args.Bool(0), args.Error(1)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Add(ctx context.Context, r *review.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReviewRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*review.Review, error) {
	args := m.Called(ctx, orderID)
	r, _ := args.Get(0).(*review.Review)
	return r, args.Error(1)
}

// stubUnitOfWork serves fixed repositories and never opens a transaction.
type stubUnitOfWork struct {
	orders  *MockOrderRepository
	reviews *MockReviewRepository
}

func (u *stubUnitOfWork) Begin(context.Context) error { return nil }
func (u *stubUnitOfWork) Commit(context.Context) error { return nil }
func (u *stubUnitOfWork) Rollback(context.Context) error { return nil }
func (u *stubUnitOfWork) OrderRepository() ports.OrderRepository { return u.orders }
func (u *stubUnitOfWork) ReviewRepository() ports.ReviewRepository { return u.reviews }

type stubUnitOfWorkFactory struct {
	uow *stubUnitOfWork
}

func (f stubUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.uow
}

func newMoney(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount)
	require.NoError(t, err)
	return m
}

// restoreOrder builds an order in status. Orders at or past DriverAssigned are
// assigned to driverID.
func restoreOrder(t *testing.T, customerID, restaurantID kernel.UUID, driverID *kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	price := newMoney(t, 18000)
	fee := newMoney(t, 7000)
	item, err := order.NewItem(kernel.NewUUID(), "Mie Ayam", price, 1, "")
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Microsecond)
	r := order.Record{
		ID:           kernel.NewUUID(),
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		AddressID:    kernel.NewUUID(),
		Items:        []order.Item{item},
		Subtotal:     price,
		ShippingFee:  fee,
		Total:        price.Add(fee),
		Status:       status,
		PlacedAt:     now,
		UpdatedAt:    now,
	}
	if status == order.DriverAssigned || status == order.InTransit || status == order.Delivered {
		r.DriverID = driverID
	}
	if status == order.Delivered {
		r.DeliveredAt = &now
	}
	o, err := order.RestoreOrder(r)
	require.NoError(t, err)
	return o
}
