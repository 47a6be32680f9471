package kernel

import (
	"errors"
	"fmt"
	"strings"

	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	ErrActorIsNotConstructed       = errors.New("Actor must be created via NewActor constructor")
	ErrRestaurantStaffNeedsBinding = errs.NewValueIsRequiredErrorWithCause(
		"restaurantId",
		errors.New("restaurant staff must be bound to a restaurant"),
	)
)

// Role is the kind of actor issuing a request.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleRestaurant Role = "restaurant"
	RoleDriver     Role = "driver"
)

// ParseRole converts a token claim into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleRestaurant, RoleDriver:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

// Actor is the verified identity on whose behalf a command runs. It is built by the
// inbound adapter from the authentication service and passed explicitly to every
// command; nothing in the core reads identity from ambient state.
//
// Restaurant staff are always bound to exactly one restaurant.
type Actor struct {
	id           UUID
	role         Role
	restaurantID *UUID
	guard        guard.ConstructorGuard
}

// NewActor validates and creates an Actor. restaurantID is required for RoleRestaurant
// and ignored for the other roles.
func NewActor(id UUID, role Role, restaurantID *UUID) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	a := Actor{id: id, role: role, guard: guard.NewConstructorGuard()}
	if role == RoleRestaurant {
		if restaurantID == nil || restaurantID.Validate() != nil {
			return Actor{}, ErrRestaurantStaffNeedsBinding
		}
		rid := *restaurantID
		a.restaurantID = &rid
	}
	return a, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// RestaurantID returns the restaurant staff binding, or nil for other roles.
func (a Actor) RestaurantID() *UUID {
	if a.restaurantID == nil {
		return nil
	}
	rid := *a.restaurantID
	return &rid
}

// Is reports whether the actor has the given role.
func (a Actor) Is(role Role) bool {
	return a.role == role
}

// WorksAt reports whether the actor is staff of the given restaurant.
func (a Actor) WorksAt(restaurantID UUID) bool {
	return a.role == RoleRestaurant && a.restaurantID != nil && a.restaurantID.IsEqual(restaurantID)
}
