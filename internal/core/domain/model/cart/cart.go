package cart

import (
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

var (
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart constructor")

	// ErrRestaurantMismatch is returned when an item from a second restaurant is added
	// to a non-empty cart. The caller decides whether to clear the cart first.
	ErrRestaurantMismatch = errors.New("cart already holds items from another restaurant")
)

// RestaurantMismatchError carries both restaurants so the caller can build an
// actionable message.
type RestaurantMismatchError struct {
	CartRestaurantID   kernel.UUID
	CartRestaurantName string
	ItemRestaurantID   kernel.UUID
}

func (e *RestaurantMismatchError) Error() string {
	name := e.CartRestaurantName
	if name == "" {
		name = e.CartRestaurantID.String()
	}
	return fmt.Sprintf("%s: cart holds items from %s, clear the cart to order from restaurant %s",
		ErrRestaurantMismatch, name, e.ItemRestaurantID)
}

func (e *RestaurantMismatchError) Unwrap() error {
	return ErrRestaurantMismatch
}

// Cart is the aggregate root for a customer's pending selection.
//
// Invariants:
//   - every line shares the same restaurant id
//   - every line has a quantity in [MinQuantity, MaxQuantity]
//   - at most one line per menu item id
//
// A failed mutation leaves the cart exactly as it was.
type Cart struct {
	owner         Owner
	lines         []Line
	isConstructed bool
}

// NewCart creates an empty cart for owner.
func NewCart(owner Owner) (*Cart, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	return &Cart{owner: owner, isConstructed: true}, nil
}

// RestoreCart rebuilds a cart from storage and re-checks its invariants.
func RestoreCart(owner Owner, lines []Line) (*Cart, error) {
	c, err := NewCart(owner)
	if err != nil {
		return nil, err
	}

	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if rid, ok := c.RestaurantID(); ok && !rid.IsEqual(l.restaurantID) {
			return nil, c.mismatch(l.restaurantID)
		}
		if c.indexOf(l.itemID) >= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("lines", fmt.Errorf("item %s appears twice", l.itemID))
		}
		c.lines = append(c.lines, l)
	}
	return c, nil
}

func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

func (c *Cart) Owner() Owner {
	return c.owner
}

// AddItem adds quantity units of item to the cart.
//
// The item is accepted when the cart is empty or already holds items of the same
// restaurant; otherwise a *RestaurantMismatchError is returned. When the item is
// already in the cart the quantities are summed and notes replaced.
func (c *Cart) AddItem(item MenuItem, quantity int, notes string) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if rid, ok := c.RestaurantID(); ok && !rid.IsEqual(item.restaurantID) {
		return c.mismatch(item.restaurantID)
	}

	if i := c.indexOf(item.id); i >= 0 {
		if err := validateQuantity(quantity); err != nil {
			return err
		}
		current := c.lines[i]
		merged, err := RestoreLine(
			current.itemID,
			item.name,
			item.unitPrice,
			current.quantity+quantity,
			notes,
			current.restaurantID,
			current.restaurantName,
		)
		if err != nil {
			return err
		}
		c.lines[i] = merged
		return nil
	}

	line, err := NewLine(item, quantity, notes)
	if err != nil {
		return err
	}
	c.lines = append(c.lines, line)
	return nil
}

// ChangeQuantity adds delta (which may be negative) to the quantity of a line.
// A resulting quantity of zero or less removes the line.
func (c *Cart) ChangeQuantity(itemID kernel.UUID, delta int) error {
	i := c.indexOf(itemID)
	if i < 0 {
		return errs.NewObjectNotFoundError("itemId", itemID)
	}

	next := c.lines[i].quantity + delta
	if next < MinQuantity {
		c.removeAt(i)
		return nil
	}
	if err := validateQuantity(next); err != nil {
		return err
	}
	c.lines[i].quantity = next
	return nil
}

// SetNotes replaces the notes of a line.
func (c *Cart) SetNotes(itemID kernel.UUID, notes string) error {
	i := c.indexOf(itemID)
	if i < 0 {
		return errs.NewObjectNotFoundError("itemId", itemID)
	}
	if err := validateNotes(notes); err != nil {
		return err
	}
	c.lines[i].notes = notes
	return nil
}

// RemoveItem deletes a line.
func (c *Cart) RemoveItem(itemID kernel.UUID) error {
	i := c.indexOf(itemID)
	if i < 0 {
		return errs.NewObjectNotFoundError("itemId", itemID)
	}
	c.removeAt(i)
	return nil
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.lines = nil
}

// RestaurantID returns the restaurant shared by all lines, or false for an empty cart.
func (c *Cart) RestaurantID() (kernel.UUID, bool) {
	if len(c.lines) == 0 {
		return kernel.UUID{}, false
	}
	return c.lines[0].restaurantID, true
}

// RestaurantName returns the display name of the cart's restaurant, or "" when empty.
func (c *Cart) RestaurantName() string {
	if len(c.lines) == 0 {
		return ""
	}
	return c.lines[0].restaurantName
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalItemCount is the sum of all line quantities.
func (c *Cart) TotalItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.quantity
	}
	return n
}

// Subtotal is the sum of unit price × quantity over all lines.
func (c *Cart) Subtotal() kernel.Money {
	total := kernel.ZeroMoney()
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

func (c *Cart) indexOf(itemID kernel.UUID) int {
	for i, l := range c.lines {
		if l.itemID.IsEqual(itemID) {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	if len(c.lines) == 0 {
		c.lines = nil
	}
}

func (c *Cart) mismatch(itemRestaurantID kernel.UUID) error {
	rid, _ := c.RestaurantID()
	return &RestaurantMismatchError{
		CartRestaurantID:   rid,
		CartRestaurantName: c.RestaurantName(),
		ItemRestaurantID:   itemRestaurantID,
	}
}
