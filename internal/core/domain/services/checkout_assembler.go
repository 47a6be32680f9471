package services

import (
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
)

var (
	// ErrCartIsEmpty is returned before submission when there is nothing to order.
	ErrCartIsEmpty = errs.NewValueIsRequiredErrorWithCause("cart", errors.New("the cart is empty, add an item before checking out"))

	// ErrAddressIsRequired is returned before submission when no delivery address was chosen.
	ErrAddressIsRequired = errs.NewValueIsRequiredErrorWithCause("addressId", errors.New("choose a delivery address before checking out"))
)

// Quote summarises what a checkout of the cart would cost right now.
type Quote struct {
	ItemCount   int
	Subtotal    kernel.Money
	ShippingFee kernel.Money
	Total       kernel.Money
}

// CheckoutAssembler converts a cart snapshot and a chosen address into an order.Draft.
//
// Business rules:
//   - an empty cart and a missing address are rejected locally, before any collaborator is called
//   - subtotal = Σ unitPrice × quantity over the lines
//   - total = subtotal + shippingFee, where the fee comes from the ShippingFeePolicy
//
// The assembler never retries and never submits; the caller creates the order from the draft.
type CheckoutAssembler struct {
	fees ShippingFeePolicy
}

func NewCheckoutAssembler(fees ShippingFeePolicy) CheckoutAssembler {
	return CheckoutAssembler{fees: fees}
}

// Assemble builds a draft from the current cart lines.
//
// Returns:
//   - ErrCartIsEmpty if the cart has no lines
//   - ErrAddressIsRequired if addressID is the zero UUID
func (a CheckoutAssembler) Assemble(c *cart.Cart, addressID kernel.UUID, deliveryNote string) (order.Draft, error) {
	if err := c.Validate(); err != nil {
		return order.Draft{}, err
	}

	restaurantID, ok := c.RestaurantID()
	if !ok {
		return order.Draft{}, ErrCartIsEmpty
	}
	if addressID.Validate() != nil {
		return order.Draft{}, ErrAddressIsRequired
	}

	items := make([]order.Item, 0, len(c.Lines()))
	for _, l := range c.Lines() {
		it, err := order.NewItem(l.ItemID(), l.Name(), l.UnitPrice(), l.Quantity(), l.Notes())
		if err != nil {
			return order.Draft{}, err
		}
		items = append(items, it)
	}

	return order.NewDraft(restaurantID, addressID, deliveryNote, items, a.fees.FeeFor(restaurantID, items))
}

// Reprice rebuilds draft from catalog snapshots taken at order creation. Every draft item
// must have exactly one snapshot with the same menu item id and quantity.
func (a CheckoutAssembler) Reprice(draft order.Draft, snapshots []order.Item) (order.Draft, error) {
	if err := draft.Validate(); err != nil {
		return order.Draft{}, err
	}

	draftItems := draft.Items()
	if len(snapshots) != len(draftItems) {
		return order.Draft{}, errs.NewValueIsInvalidErrorWithCause(
			"snapshots",
			fmt.Errorf("got %d snapshots for %d items", len(snapshots), len(draftItems)),
		)
	}
	for i, it := range draftItems {
		s := snapshots[i]
		if !s.MenuItemID().IsEqual(it.MenuItemID()) || s.Quantity() != it.Quantity() {
			return order.Draft{}, errs.NewValueIsInvalidErrorWithCause(
				"snapshots",
				fmt.Errorf("snapshot %d does not match item %s", i, it.MenuItemID()),
			)
		}
	}

	return order.NewDraft(
		draft.RestaurantID(),
		draft.AddressID(),
		draft.DeliveryNote(),
		snapshots,
		a.fees.FeeFor(draft.RestaurantID(), snapshots),
	)
}

// Quote prices the cart without requiring an address. An empty cart costs nothing.
func (a CheckoutAssembler) Quote(c *cart.Cart) Quote {
	if c == nil || c.IsEmpty() {
		return Quote{}
	}

	restaurantID, _ := c.RestaurantID()
	items := make([]order.Item, 0, len(c.Lines()))
	for _, l := range c.Lines() {
		if it, err := order.NewItem(l.ItemID(), l.Name(), l.UnitPrice(), l.Quantity(), l.Notes()); err == nil {
			items = append(items, it)
		}
	}

	subtotal := c.Subtotal()
	fee := a.fees.FeeFor(restaurantID, items)
	return Quote{
		ItemCount:   c.TotalItemCount(),
		Subtotal:    subtotal,
		ShippingFee: fee,
		Total:       subtotal.Add(fee),
	}
}
