package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
)

// PlaceOrderCommand represents a checkout of the customer's cart.
//
// The idempotency key is generated by the client once per checkout attempt and reused on
// every retry of that attempt. Submitting the same key twice returns the first order.
//
// The address is not checked here: an empty cart is reported before a missing address.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(customer, "phone", addressID, "leave at the door", key)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrCartIsEmpty) {
//	    // nothing to order
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	customer       kernel.Actor
	owner          cart.Owner
	addressID      kernel.UUID
	deliveryNote   string
	idempotencyKey string

	guard guard.ConstructorGuard
}

func NewPlaceOrderCommand(
	customer kernel.Actor,
	deviceID string,
	addressID kernel.UUID,
	deliveryNote string,
	idempotencyKey string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		addressID:    addressID,
		deliveryNote: deliveryNote,
		guard:        guard.NewConstructorGuard(),
	}

	if err := cmd.setCustomer(customer, deviceID); err != nil {
		return PlaceOrderCommand{}, err
	}
	if err := cmd.setIdempotencyKey(idempotencyKey); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) Customer() kernel.Actor {
	return c.customer
}

// Owner identifies the cart being checked out.
func (c PlaceOrderCommand) Owner() cart.Owner {
	return c.owner
}

func (c PlaceOrderCommand) AddressID() kernel.UUID {
	return c.addressID
}

func (c PlaceOrderCommand) DeliveryNote() string {
	return c.deliveryNote
}

func (c PlaceOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *PlaceOrderCommand) setCustomer(customer kernel.Actor, deviceID string) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	if !customer.Is(kernel.RoleCustomer) {
		return order.ErrRoleNotAllowed
	}

	owner, err := cart.NewOwner(customer.ID(), deviceID)
	if err != nil {
		return err
	}

	c.customer = customer
	c.owner = owner
	return nil
}

func (c *PlaceOrderCommand) setIdempotencyKey(key string) error {
	if key == "" {
		return errs.NewValueIsRequiredError("idempotencyKey")
	}
	if len(key) > order.MaxIdempotencyKeyLength {
		return errs.NewValueIsOutOfRangeError("idempotencyKey length", len(key), 1, order.MaxIdempotencyKeyLength)
	}

	c.idempotencyKey = key
	return nil
}
