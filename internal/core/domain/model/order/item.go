package order

import (
	"errors"
	"strings"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

const MaxItemQuantity = 99

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line of an order. Name and unit price are snapshots taken at checkout,
// so later menu edits never change a placed order.
type Item struct {
	menuItemID kernel.UUID
	name       string
	unitPrice  kernel.Money
	quantity   int
	note       string
	guard      guard.ConstructorGuard
}

func NewItem(menuItemID kernel.UUID, name string, unitPrice kernel.Money, quantity int, note string) (Item, error) {
	var nameErr, qtyErr error
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("item name")
	}
	if quantity < 1 || quantity > MaxItemQuantity {
		qtyErr = errs.NewValueIsOutOfRangeError("item quantity", quantity, 1, MaxItemQuantity)
	}
	if err := errors.Join(menuItemID.Validate(), nameErr, qtyErr); err != nil {
		return Item{}, err
	}

	return Item{
		menuItemID: menuItemID,
		name:       name,
		unitPrice:  unitPrice,
		quantity:   quantity,
		note:       note,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

func (i Item) Name() string {
	return i.name
}

func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) Note() string {
	return i.note
}

// Total returns unit price × quantity.
func (i Item) Total() kernel.Money {
	total, _ := i.unitPrice.Multiply(i.quantity)
	return total
}

func sumItems(items []Item) kernel.Money {
	subtotal := kernel.ZeroMoney()
	for _, it := range items {
		subtotal = subtotal.Add(it.Total())
	}
	return subtotal
}
