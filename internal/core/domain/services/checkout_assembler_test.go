package services_test

import (
	"math/rand/v2"
	"testing"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fee = 15000

func newAssembler(t *testing.T) services.CheckoutAssembler {
	t.Helper()
	m, err := kernel.NewMoney(fee)
	require.NoError(t, err)
	return services.NewCheckoutAssembler(services.NewFlatShippingFee(m))
}

func newCart(t *testing.T) *cart.Cart {
	t.Helper()
	owner, err := cart.NewOwner(kernel.NewUUID(), "")
	require.NoError(t, err)
	c, err := cart.NewCart(owner)
	require.NoError(t, err)
	return c
}

func addItem(t *testing.T, c *cart.Cart, restaurantID kernel.UUID, price int64, qty int) cart.MenuItem {
	t.Helper()
	m, err := kernel.NewMoney(price)
	require.NoError(t, err)
	item, err := cart.NewMenuItem(kernel.NewUUID(), "dish", m, restaurantID, "Noodle Bar")
	require.NoError(t, err)
	require.NoError(t, c.AddItem(item, qty, "note"))
	return item
}

func TestCheckoutAssembler_Assemble(t *testing.T) {
	assembler := newAssembler(t)

	t.Run("computes subtotal fee and total", func(t *testing.T) {
		r1 := kernel.NewUUID()
		c := newCart(t)
		addItem(t, c, r1, 50000, 1)
		addItem(t, c, r1, 20000, 2)
		addressID := kernel.NewUUID()

		draft, err := assembler.Assemble(c, addressID, "leave at door")

		require.NoError(t, err)
		assert.Equal(t, int64(90000), draft.Subtotal().Amount())
		assert.Equal(t, int64(fee), draft.ShippingFee().Amount())
		assert.Equal(t, int64(90000+fee), draft.Total().Amount())
		assert.True(t, draft.RestaurantID().IsEqual(r1))
		assert.True(t, draft.AddressID().IsEqual(addressID))
		assert.Equal(t, "leave at door", draft.DeliveryNote())
		require.Len(t, draft.Items(), 2)
		assert.Equal(t, "note", draft.Items()[0].Note())
	})

	t.Run("empty cart is rejected before submission", func(t *testing.T) {
		_, err := assembler.Assemble(newCart(t), kernel.NewUUID(), "")

		require.ErrorIs(t, err, services.ErrCartIsEmpty)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("missing address is rejected before submission", func(t *testing.T) {
		c := newCart(t)
		addItem(t, c, kernel.NewUUID(), 100, 1)

		_, err := assembler.Assemble(c, kernel.UUID{}, "")

		require.ErrorIs(t, err, services.ErrAddressIsRequired)
	})

	t.Run("empty cart wins over missing address", func(t *testing.T) {
		_, err := assembler.Assemble(newCart(t), kernel.UUID{}, "")

		require.ErrorIs(t, err, services.ErrCartIsEmpty)
	})

	t.Run("unconstructed cart", func(t *testing.T) {
		_, err := assembler.Assemble(nil, kernel.NewUUID(), "")

		require.ErrorIs(t, err, cart.ErrCartIsNotConstructed)
	})
}

// For random carts subtotal = Σ price×qty and total = subtotal + fee.
func TestCheckoutAssembler_TotalsProperty(t *testing.T) {
	assembler := newAssembler(t)
	rng := rand.New(rand.NewPCG(1, 2))

	for range 100 {
		c := newCart(t)
		r := kernel.NewUUID()
		var expected int64
		for range 1 + rng.IntN(6) {
			price := int64(rng.IntN(100000))
			qty := 1 + rng.IntN(5)
			addItem(t, c, r, price, qty)
			expected += price * int64(qty)
		}

		draft, err := assembler.Assemble(c, kernel.NewUUID(), "")

		require.NoError(t, err)
		assert.Equal(t, expected, draft.Subtotal().Amount())
		assert.Equal(t, expected+fee, draft.Total().Amount())
		assert.False(t, draft.ShippingFee().IsZero())
	}
}

func TestFlatShippingFee_ZeroForEmptyItems(t *testing.T) {
	m, _ := kernel.NewMoney(fee)
	policy := services.NewFlatShippingFee(m)

	assert.True(t, policy.FeeFor(kernel.NewUUID(), nil).IsZero())
}

func TestCheckoutAssembler_Reprice(t *testing.T) {
	assembler := newAssembler(t)
	c := newCart(t)
	item := addItem(t, c, kernel.NewUUID(), 1000, 3)
	draft, err := assembler.Assemble(c, kernel.NewUUID(), "")
	require.NoError(t, err)

	t.Run("uses snapshot prices", func(t *testing.T) {
		newPrice, _ := kernel.NewMoney(1200)
		snap, err := order.NewItem(item.ID(), "dish (new name)", newPrice, 3, "note")
		require.NoError(t, err)

		repriced, err := assembler.Reprice(draft, []order.Item{snap})

		require.NoError(t, err)
		assert.Equal(t, int64(3600), repriced.Subtotal().Amount())
		assert.Equal(t, int64(3600+fee), repriced.Total().Amount())
		assert.Equal(t, "dish (new name)", repriced.Items()[0].Name())
		assert.True(t, repriced.AddressID().IsEqual(draft.AddressID()))
	})

	t.Run("rejects mismatching snapshots", func(t *testing.T) {
		price, _ := kernel.NewMoney(1000)
		wrongQty, err := order.NewItem(item.ID(), "dish", price, 2, "")
		require.NoError(t, err)

		_, err = assembler.Reprice(draft, []order.Item{wrongQty})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = assembler.Reprice(draft, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCheckoutAssembler_Quote(t *testing.T) {
	assembler := newAssembler(t)

	t.Run("empty cart costs nothing", func(t *testing.T) {
		q := assembler.Quote(newCart(t))

		assert.Equal(t, services.Quote{}, q)
	})

	t.Run("quotes a filled cart", func(t *testing.T) {
		c := newCart(t)
		addItem(t, c, kernel.NewUUID(), 2500, 2)

		q := assembler.Quote(c)

		assert.Equal(t, 2, q.ItemCount)
		assert.Equal(t, int64(5000), q.Subtotal.Amount())
		assert.Equal(t, int64(5000+fee), q.Total.Amount())
	})
}
