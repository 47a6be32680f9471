package cart

import (
	"errors"
	"strings"
	"unicode/utf8"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

const (
	MinQuantity    = 1
	MaxQuantity    = 99
	MaxNotesLength = 500
)

var (
	ErrMenuItemIsNotConstructed = errors.New("MenuItem must be created via NewMenuItem constructor")
	ErrLineIsNotConstructed     = errors.New("Line must be created via NewLine or RestoreLine constructor")
)

// MenuItem is what the menu catalog reports about an item at the moment it is added
// to a cart.
type MenuItem struct {
	id             kernel.UUID
	name           string
	unitPrice      kernel.Money
	restaurantID   kernel.UUID
	restaurantName string
	guard          guard.ConstructorGuard
}

func NewMenuItem(
	id kernel.UUID,
	name string,
	unitPrice kernel.Money,
	restaurantID kernel.UUID,
	restaurantName string,
) (MenuItem, error) {
	if err := errors.Join(
		id.Validate(),
		restaurantID.Validate(),
		validateRequired("name", name),
	); err != nil {
		return MenuItem{}, err
	}

	return MenuItem{
		id:             id,
		name:           strings.TrimSpace(name),
		unitPrice:      unitPrice,
		restaurantID:   restaurantID,
		restaurantName: strings.TrimSpace(restaurantName),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (m MenuItem) Validate() error {
	return m.guard.Validate(ErrMenuItemIsNotConstructed)
}

func (m MenuItem) ID() kernel.UUID { return m.id }
func (m MenuItem) Name() string { return m.name }
func (m MenuItem) UnitPrice() kernel.Money { return m.unitPrice }
func (m MenuItem) RestaurantID() kernel.UUID { return m.restaurantID }
func (m MenuItem) RestaurantName() string { return m.restaurantName }

// Line is a single menu item in a cart. Lines are values; the cart replaces them on
// every mutation.
type Line struct {
	itemID         kernel.UUID
	name           string
	unitPrice      kernel.Money
	quantity       int
	notes          string
	restaurantID   kernel.UUID
	restaurantName string
	guard          guard.ConstructorGuard
}

// NewLine creates a line for item with the given quantity and notes.
func NewLine(item MenuItem, quantity int, notes string) (Line, error) {
	if err := item.Validate(); err != nil {
		return Line{}, err
	}
	return RestoreLine(item.id, item.name, item.unitPrice, quantity, notes, item.restaurantID, item.restaurantName)
}

// RestoreLine rebuilds a line from storage.
func RestoreLine(
	itemID kernel.UUID,
	name string,
	unitPrice kernel.Money,
	quantity int,
	notes string,
	restaurantID kernel.UUID,
	restaurantName string,
) (Line, error) {
	if err := errors.Join(
		itemID.Validate(),
		restaurantID.Validate(),
		validateRequired("name", name),
		validateQuantity(quantity),
		validateNotes(notes),
	); err != nil {
		return Line{}, err
	}

	return Line{
		itemID:         itemID,
		name:           name,
		unitPrice:      unitPrice,
		quantity:       quantity,
		notes:          notes,
		restaurantID:   restaurantID,
		restaurantName: restaurantName,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

func (l Line) ItemID() kernel.UUID { return l.itemID }
func (l Line) Name() string { return l.name }
func (l Line) UnitPrice() kernel.Money { return l.unitPrice }
func (l Line) Quantity() int { return l.quantity }
func (l Line) Notes() string { return l.notes }
func (l Line) RestaurantID() kernel.UUID { return l.restaurantID }
func (l Line) RestaurantName() string { return l.restaurantName }

// Total returns unit price × quantity.
func (l Line) Total() kernel.Money {
	// quantity is validated to be positive
	total, _ := l.unitPrice.Multiply(l.quantity)
	return total
}

func validateRequired(param, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity < MinQuantity || quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, MinQuantity, MaxQuantity)
	}
	return nil
}

func validateNotes(notes string) error {
	if n := utf8.RuneCountInString(notes); n > MaxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes length", n, 0, MaxNotesLength)
	}
	return nil
}
