package order

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

const (
	MaxDeliveryNoteLength   = 500
	MaxIdempotencyKeyLength = 128
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is the aggregate root of the order lifecycle. It is created from a Draft at
// checkout and afterwards mutated only through Transition, Claim and Release.
//
// Order follows these invariants:
//   - Items are immutable snapshots and there is at least one
//   - total = subtotal + shippingFee and subtotal = Σ item totals
//   - Status and driver assignment are consistent (see Status.ValidateCanHaveDriver)
//   - deliveredAt is set exactly when the status is Delivered
//
// Every mutator leaves the order unchanged when it returns an error.
type Order struct {
	id             kernel.UUID
	customerID     kernel.UUID
	restaurantID   kernel.UUID
	addressID      kernel.UUID
	driverID       *kernel.UUID
	deliveryNote   string
	items          []Item
	subtotal       kernel.Money
	shippingFee    kernel.Money
	total          kernel.Money
	status         Status
	placedAt       time.Time
	updatedAt      time.Time
	deliveredAt    *time.Time
	idempotencyKey string
	isConstructed  bool
}

// Record is the full state of an order as read from storage. It is consumed by
// RestoreOrder only.
type Record struct {
	ID             kernel.UUID
	CustomerID     kernel.UUID
	RestaurantID   kernel.UUID
	AddressID      kernel.UUID
	DriverID       *kernel.UUID
	DeliveryNote   string
	Items          []Item
	Subtotal       kernel.Money
	ShippingFee    kernel.Money
	Total          kernel.Money
	Status         Status
	PlacedAt       time.Time
	UpdatedAt      time.Time
	DeliveredAt    *time.Time
	IdempotencyKey string
}

// Snapshot is the part of an order the conditional update compares against storage.
type Snapshot struct {
	Status   Status
	DriverID *kernel.UUID
}

// NewOrder creates an order in Placed status from a checkout draft.
//
// Parameters:
//   - id: identifier of the new order
//   - customerID: the customer placing the order
//   - draft: the assembled checkout payload
//   - idempotencyKey: client generated token; empty disables deduplication
//   - placedAt: creation time
func NewOrder(id, customerID kernel.UUID, draft Draft, idempotencyKey string, placedAt time.Time) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		draft.Validate(),
		validateDeliveryNote(draft.deliveryNote),
		validateIdempotencyKey(idempotencyKey),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:             id,
		customerID:     customerID,
		restaurantID:   draft.restaurantID,
		addressID:      draft.addressID,
		deliveryNote:   draft.deliveryNote,
		items:          draft.Items(),
		subtotal:       draft.subtotal,
		shippingFee:    draft.shippingFee,
		total:          draft.total,
		status:         Placed,
		placedAt:       placedAt,
		updatedAt:      placedAt,
		idempotencyKey: idempotencyKey,
		isConstructed:  true,
	}, nil
}

// RestoreOrder rebuilds an order from storage and re-checks every invariant.
func RestoreOrder(r Record) (*Order, error) {
	var itemsErr error
	if len(r.Items) == 0 {
		itemsErr = errs.NewValueIsRequiredError("items")
	}
	for _, it := range r.Items {
		itemsErr = errors.Join(itemsErr, it.Validate())
	}

	var driverErr error
	if r.DriverID != nil {
		driverErr = r.DriverID.Validate()
	}

	if err := errors.Join(
		r.ID.Validate(),
		r.CustomerID.Validate(),
		r.RestaurantID.Validate(),
		r.AddressID.Validate(),
		driverErr,
		itemsErr,
		r.Status.Validate(),
		r.Status.ValidateCanHaveDriver(r.DriverID != nil),
		validateDeliveryNote(r.DeliveryNote),
		validateIdempotencyKey(r.IdempotencyKey),
	); err != nil {
		return nil, err
	}

	if subtotal := sumItems(r.Items); !subtotal.IsEqual(r.Subtotal) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"subtotal",
			fmt.Errorf("stored %s does not match items total %s", r.Subtotal, subtotal),
		)
	}
	if total := r.Subtotal.Add(r.ShippingFee); !total.IsEqual(r.Total) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"total",
			fmt.Errorf("stored %s does not match subtotal plus shipping %s", r.Total, total),
		)
	}
	if (r.Status == Delivered) != (r.DeliveredAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"deliveredAt",
			fmt.Errorf("must be set exactly when status is %s, status is %s", Delivered, r.Status),
		)
	}

	o := &Order{
		id:             r.ID,
		customerID:     r.CustomerID,
		restaurantID:   r.RestaurantID,
		addressID:      r.AddressID,
		deliveryNote:   r.DeliveryNote,
		items:          append([]Item(nil), r.Items...),
		subtotal:       r.Subtotal,
		shippingFee:    r.ShippingFee,
		total:          r.Total,
		status:         r.Status,
		placedAt:       r.PlacedAt,
		updatedAt:      r.UpdatedAt,
		idempotencyKey: r.IdempotencyKey,
		isConstructed:  true,
	}
	if r.DriverID != nil {
		d := *r.DriverID
		o.driverID = &d
	}
	if r.DeliveredAt != nil {
		t := *r.DeliveredAt
		o.deliveredAt = &t
	}
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

func (o *Order) AddressID() kernel.UUID {
	return o.addressID
}

// DriverID returns the assigned driver, or nil while the order is unassigned.
func (o *Order) DriverID() *kernel.UUID {
	if o.driverID == nil {
		return nil
	}
	d := *o.driverID
	return &d
}

func (o *Order) DeliveryNote() string {
	return o.deliveryNote
}

// Items returns a copy of the order items.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

func (o *Order) ShippingFee() kernel.Money {
	return o.shippingFee
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// DeliveredAt returns the delivery time, or nil unless the order is Delivered.
func (o *Order) DeliveredAt() *time.Time {
	if o.deliveredAt == nil {
		return nil
	}
	t := *o.deliveredAt
	return &t
}

func (o *Order) IdempotencyKey() string {
	return o.idempotencyKey
}

// Snapshot captures the status and driver before a mutation, to be passed as the
// expected state of the conditional update.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{Status: o.status, DriverID: o.DriverID()}
}

// CheckParticipant returns ErrNotParticipant unless actor is the order's customer,
// staff of its restaurant, or its assigned driver.
func (o *Order) CheckParticipant(actor kernel.Actor) error {
	switch actor.Role() {
	case kernel.RoleCustomer:
		if o.customerID.IsEqual(actor.ID()) {
			return nil
		}
	case kernel.RoleRestaurant:
		if actor.WorksAt(o.restaurantID) {
			return nil
		}
	case kernel.RoleDriver:
		if o.driverID != nil && o.driverID.IsEqual(actor.ID()) {
			return nil
		}
	}
	return ErrNotParticipant
}

// IsAvailable reports whether drivers may claim the order.
func (o *Order) IsAvailable() bool {
	return o.status == Accepted && o.driverID == nil
}

// CanBeViewedBy reports whether actor may read the order. Besides participants,
// any driver may read an order that is available for claiming.
func (o *Order) CanBeViewedBy(actor kernel.Actor) bool {
	if o.CheckParticipant(actor) == nil {
		return true
	}
	return actor.Is(kernel.RoleDriver) && o.IsAvailable()
}

// Transition moves the order to status `to` on behalf of actor.
//
// The actor must participate in the order and the (status, to, role) triple must be in
// the transition table. Accepted -> DriverAssigned is rejected here; drivers use Claim.
// Moving to Delivered records deliveredAt.
//
// Returns:
//   - ErrNotParticipant if actor is not a participant
//   - *InvalidTransitionError if the transition is not allowed
func (o *Order) Transition(actor kernel.Actor, to Status, at time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := o.CheckParticipant(actor); err != nil {
		return err
	}
	if to == DriverAssigned {
		e := NewInvalidTransitionError(o.status, to, actor.Role())
		e.Reason = "drivers take orders by claiming them"
		return e
	}
	if err := o.status.CanTransition(to, actor.Role()); err != nil {
		return err
	}

	o.status = to
	o.updatedAt = at
	if to == Delivered {
		t := at
		o.deliveredAt = &t
	}
	return nil
}

// Claim assigns the order to driver and moves it to DriverAssigned.
//
// Storage must apply the claim as a single conditional update; this method only
// validates it against the in-memory state.
//
// Returns:
//   - ErrRoleNotAllowed if actor is not a driver
//   - ErrAlreadyClaimed if the order already has a driver
//   - *InvalidTransitionError if the order is not yet Accepted or was Canceled
func (o *Order) Claim(driver kernel.Actor, at time.Time) error {
	if err := driver.Validate(); err != nil {
		return err
	}
	if !driver.Is(kernel.RoleDriver) {
		return ErrRoleNotAllowed
	}

	switch o.status {
	case Accepted:
		if o.driverID != nil {
			return ErrAlreadyClaimed
		}
	case DriverAssigned, InTransit, Delivered:
		return ErrAlreadyClaimed
	case Unknown, Placed, Canceled:
		return NewInvalidTransitionError(o.status, DriverAssigned, driver.Role())
	}
	if err := o.status.CanTransition(DriverAssigned, driver.Role()); err != nil {
		return err
	}

	id := driver.ID()
	o.driverID = &id
	o.status = DriverAssigned
	o.updatedAt = at
	return nil
}

// Release returns a claimed order to the pool of available orders. Only the assigned
// driver may release, and only before pickup.
func (o *Order) Release(driver kernel.Actor, at time.Time) error {
	if err := driver.Validate(); err != nil {
		return err
	}
	if !driver.Is(kernel.RoleDriver) {
		return ErrRoleNotAllowed
	}
	if err := o.CheckParticipant(driver); err != nil {
		return err
	}
	if o.status != DriverAssigned {
		e := NewInvalidTransitionError(o.status, Accepted, driver.Role())
		e.Reason = "only an order that has not been picked up can be released"
		return e
	}

	o.driverID = nil
	o.status = Accepted
	o.updatedAt = at
	return nil
}

func validateDeliveryNote(note string) error {
	if n := utf8.RuneCountInString(note); n > MaxDeliveryNoteLength {
		return errs.NewValueIsOutOfRangeError("delivery note length", n, 0, MaxDeliveryNoteLength)
	}
	return nil
}

func validateIdempotencyKey(key string) error {
	if len(key) > MaxIdempotencyKeyLength {
		return errs.NewValueIsOutOfRangeError("idempotency key length", len(key), 0, MaxIdempotencyKeyLength)
	}
	return nil
}
