package cartstore_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"foodorder/internal/adapters/out/redis/cartstore"
	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*cartstore.RedisCartStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cartstore.NewRedisCartStore(client, time.Hour), mr
}

func newOwner(t *testing.T) cart.Owner {
	t.Helper()
	owner, err := cart.NewOwner(kernel.NewUUID(), "ipad")
	require.NoError(t, err)
	return owner
}

func newItem(t *testing.T, restaurantID kernel.UUID, name string, price int64) cart.MenuItem {
	t.Helper()
	money, err := kernel.NewMoney(price)
	require.NoError(t, err)
	item, err := cart.NewMenuItem(kernel.NewUUID(), name, money, restaurantID, "Sate Khas Senayan")
	require.NoError(t, err)
	return item
}

func TestRedisCartStore_GetMissingCartIsEmpty(t *testing.T) {
	store, _ := newStore(t)
	owner := newOwner(t)

	c, err := store.Get(t.Context(), owner)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, owner, c.Owner())
}

func TestRedisCartStore_UpdateRoundTrip(t *testing.T) {
	store, mr := newStore(t)
	owner := newOwner(t)
	restaurantID := kernel.NewUUID()
	sate := newItem(t, restaurantID, "Sate Ayam", 30000)
	lontong := newItem(t, restaurantID, "Lontong", 5000)

	_, err := store.Update(t.Context(), owner, func(c *cart.Cart) error {
		return errors.Join(c.AddItem(sate, 2, "extra peanut sauce"), c.AddItem(lontong, 1, ""))
	})
	require.NoError(t, err)

	key := store.Key(owner)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))

	got, err := store.Get(t.Context(), owner)
	require.NoError(t, err)
	require.Len(t, got.Lines(), 2)
	assert.Equal(t, "Sate Ayam", got.Lines()[0].Name())
	assert.Equal(t, 2, got.Lines()[0].Quantity())
	assert.Equal(t, "extra peanut sauce", got.Lines()[0].Notes())
	assert.Equal(t, "Sate Khas Senayan", got.RestaurantName())
	assert.Equal(t, int64(65000), got.Subtotal().Amount())
}

func TestRedisCartStore_CartsAreSeparatedByDevice(t *testing.T) {
	store, _ := newStore(t)
	customerID := kernel.NewUUID()
	phone, err := cart.NewOwner(customerID, "phone")
	require.NoError(t, err)
	laptop, err := cart.NewOwner(customerID, "laptop")
	require.NoError(t, err)

	_, err = store.Update(t.Context(), phone, func(c *cart.Cart) error {
		return c.AddItem(newItem(t, kernel.NewUUID(), "Rendang", 40000), 1, "")
	})
	require.NoError(t, err)

	c, err := store.Get(t.Context(), laptop)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestRedisCartStore_FailedMutationStoresNothing(t *testing.T) {
	store, _ := newStore(t)
	owner := newOwner(t)
	first := newItem(t, kernel.NewUUID(), "Gado Gado", 20000)
	other := newItem(t, kernel.NewUUID(), "Pempek", 25000)

	_, err := store.Update(t.Context(), owner, func(c *cart.Cart) error { return c.AddItem(first, 1, "") })
	require.NoError(t, err)

	_, err = store.Update(t.Context(), owner, func(c *cart.Cart) error { return c.AddItem(other, 1, "") })
	require.ErrorIs(t, err, cart.ErrRestaurantMismatch)

	got, err := store.Get(t.Context(), owner)
	require.NoError(t, err)
	require.Len(t, got.Lines(), 1)
	assert.Equal(t, "Gado Gado", got.Lines()[0].Name())
}

func TestRedisCartStore_EmptiedCartIsRemoved(t *testing.T) {
	store, mr := newStore(t)
	owner := newOwner(t)
	item := newItem(t, kernel.NewUUID(), "Es Campur", 12000)

	_, err := store.Update(t.Context(), owner, func(c *cart.Cart) error { return c.AddItem(item, 1, "") })
	require.NoError(t, err)
	_, err = store.Update(t.Context(), owner, func(c *cart.Cart) error { return c.RemoveItem(item.ID()) })
	require.NoError(t, err)

	assert.False(t, mr.Exists(store.Key(owner)))
}

func TestRedisCartStore_Delete(t *testing.T) {
	store, mr := newStore(t)
	owner := newOwner(t)

	require.NoError(t, store.Delete(t.Context(), owner), "deleting a missing cart is fine")

	_, err := store.Update(t.Context(), owner, func(c *cart.Cart) error {
		return c.AddItem(newItem(t, kernel.NewUUID(), "Martabak", 35000), 1, "")
	})
	require.NoError(t, err)
	require.NoError(t, store.Delete(t.Context(), owner))
	assert.False(t, mr.Exists(store.Key(owner)))
}

func TestRedisCartStore_ConcurrentUpdatesAreNotLost(t *testing.T) {
	store, _ := newStore(t)
	owner := newOwner(t)
	item := newItem(t, kernel.NewUUID(), "Kerupuk", 2000)

	const writers = 4
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(t.Context(), owner, func(c *cart.Cart) error { return c.AddItem(item, 1, "") })
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Get(t.Context(), owner)
	require.NoError(t, err)
	require.Len(t, got.Lines(), 1)
	assert.Equal(t, writers, got.Lines()[0].Quantity())
}

func TestRedisCartStore_CorruptPayload(t *testing.T) {
	store, mr := newStore(t)
	owner := newOwner(t)
	require.NoError(t, mr.Set(store.Key(owner), "{not json"))

	_, err := store.Get(t.Context(), owner)
	require.ErrorIs(t, err, errs.ErrPersistenceUnavailable)
}

func TestRedisCartStore_ServerDown(t *testing.T) {
	store, mr := newStore(t)
	mr.Close()

	_, err := store.Get(t.Context(), newOwner(t))
	require.ErrorIs(t, err, errs.ErrPersistenceUnavailable)
}
