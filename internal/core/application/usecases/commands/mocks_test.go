package commands_test

import (
	"context"
	"testing"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/review"
	"foodorder/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetByIdempotencyKey(ctx context.Context, customerID kernel.UUID, key string) (*order.Order, error) {
	args := m.Called(ctx, customerID, key)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) UpdateIfUnchanged(ctx context.Context, o *order.Order, expected order.Snapshot) (bool, error) {
	args := m.Called(ctx, o, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Claim(ctx context.Context, orderID, driverID kernel.UUID, at time.Time) (bool, error) {
	args := m.Called(ctx, orderID, driverID, at)
	return args.Bool(0), args.Error(1)
}

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) Add(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*review.Review, error) {
	args := m.Called(ctx, orderID)
	if r, ok := args.Get(0).(*review.Review); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct{ MockOrderUoW }

func (m *MockUoW) ReviewRepository() ports.ReviewRepository {
	args := m.Called()
	return args.Get(0).(ports.ReviewRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// MockCartStore runs the mutation passed to Update against the cart returned by the
// expectation, so the real cart rules apply.
type MockCartStore struct{ mock.Mock }

func (m *MockCartStore) Get(ctx context.Context, owner cart.Owner) (*cart.Cart, error) {
	args := m.Called(ctx, owner)
	if c, ok := args.Get(0).(*cart.Cart); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartStore) Update(ctx context.Context, owner cart.Owner, fn func(c *cart.Cart) error) (*cart.Cart, error) {
	args := m.Called(ctx, owner)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	c := args.Get(0).(*cart.Cart)
	if err := fn(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (m *MockCartStore) Delete(ctx context.Context, owner cart.Owner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

type MockMenuCatalog struct{ mock.Mock }

func (m *MockMenuCatalog) GetMenuItem(ctx context.Context, itemID kernel.UUID) (ports.CatalogItem, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(ports.CatalogItem), args.Error(1)
}

type MockAddressBook struct{ mock.Mock }

func (m *MockAddressBook) GetAddress(ctx context.Context, customerID, addressID kernel.UUID) (ports.Address, error) {
	args := m.Called(ctx, customerID, addressID)
	return args.Get(0).(ports.Address), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, event ports.Event) {
	m.Called(ctx, event)
}

func newActor(t *testing.T, role kernel.Role, restaurantID *kernel.UUID) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role, restaurantID)
	require.NoError(t, err)
	return a
}

func newMoney(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount)
	require.NoError(t, err)
	return m
}

func newMenuItem(t *testing.T, restaurantID kernel.UUID, name string, price int64) cart.MenuItem {
	t.Helper()
	item, err := cart.NewMenuItem(kernel.NewUUID(), name, newMoney(t, price), restaurantID, "Warung Sari")
	require.NoError(t, err)
	return item
}

func newOwner(t *testing.T, customerID kernel.UUID) cart.Owner {
	t.Helper()
	owner, err := cart.NewOwner(customerID, "phone")
	require.NoError(t, err)
	return owner
}

func newEmptyCart(t *testing.T, owner cart.Owner) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(owner)
	require.NoError(t, err)
	return c
}

// restoreOrder builds an order of customerID at restaurantID in the given status.
// Orders at or past DriverAssigned are assigned to driverID.
func restoreOrder(t *testing.T, customerID, restaurantID kernel.UUID, driverID *kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	price := newMoney(t, 25000)
	item, err := order.NewItem(kernel.NewUUID(), "nasi goreng", price, 1, "")
	require.NoError(t, err)

	r := order.Record{
		ID:           kernel.NewUUID(),
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		AddressID:    kernel.NewUUID(),
		Items:        []order.Item{item},
		Subtotal:     price,
		Total:        price,
		Status:       status,
		PlacedAt:     time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if status == order.DriverAssigned || status == order.InTransit || status == order.Delivered {
		r.DriverID = driverID
	}
	if status == order.Delivered {
		now := time.Now().UTC()
		r.DeliveredAt = &now
	}
	o, err := order.RestoreOrder(r)
	require.NoError(t, err)
	return o
}

func portsItem(item cart.MenuItem, available bool) ports.CatalogItem {
	return ports.CatalogItem{Item: item, Available: available}
}
