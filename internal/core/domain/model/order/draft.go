package order

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrDraftIsNotConstructed = errors.New("Draft must be created via NewDraft constructor")

// Draft is the transient order-creation payload assembled from a cart at checkout.
// It is never persisted.
//
// Invariants:
//   - subtotal = Σ unitPrice × quantity over items
//   - total = subtotal + shippingFee
type Draft struct {
	restaurantID kernel.UUID
	addressID    kernel.UUID
	deliveryNote string
	items        []Item
	subtotal     kernel.Money
	shippingFee  kernel.Money
	total        kernel.Money
	guard        guard.ConstructorGuard
}

// NewDraft validates the inputs and derives subtotal and total from items and shippingFee.
func NewDraft(
	restaurantID kernel.UUID,
	addressID kernel.UUID,
	deliveryNote string,
	items []Item,
	shippingFee kernel.Money,
) (Draft, error) {
	var itemsErr error
	if len(items) == 0 {
		itemsErr = errs.NewValueIsRequiredError("items")
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			itemsErr = errors.Join(itemsErr, err)
		}
	}
	if err := errors.Join(restaurantID.Validate(), addressID.Validate(), itemsErr); err != nil {
		return Draft{}, err
	}

	subtotal := sumItems(items)
	return Draft{
		restaurantID: restaurantID,
		addressID:    addressID,
		deliveryNote: deliveryNote,
		items:        append([]Item(nil), items...),
		subtotal:     subtotal,
		shippingFee:  shippingFee,
		total:        subtotal.Add(shippingFee),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (d Draft) Validate() error {
	return d.guard.Validate(ErrDraftIsNotConstructed)
}

func (d Draft) RestaurantID() kernel.UUID {
	return d.restaurantID
}

func (d Draft) AddressID() kernel.UUID {
	return d.addressID
}

func (d Draft) DeliveryNote() string {
	return d.deliveryNote
}

// Items returns a copy of the draft items.
func (d Draft) Items() []Item {
	return append([]Item(nil), d.items...)
}

func (d Draft) Subtotal() kernel.Money {
	return d.subtotal
}

func (d Draft) ShippingFee() kernel.Money {
	return d.shippingFee
}

func (d Draft) Total() kernel.Money {
	return d.total
}
