package order

import (
	"fmt"
	"slices"
	"strings"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It is the single persisted
// status; the customer and restaurant vocabularies are presentation labels derived
// from it.
//
// State transitions:
//
//	Placed ──> Accepted ──> DriverAssigned ──> InTransit ──> Delivered
//	  │           │           │     │               │
//	  │           │           │     └── Release ──> Accepted
//	  └───────────┴───────────┴─────────────────────┴──> Canceled
//
// Which role may trigger each arrow is fixed by the transition table; see CanTransition.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status of an order created by checkout.
	Placed

	// Accepted means the restaurant acknowledged the order. It is available to drivers.
	Accepted

	// DriverAssigned means exactly one driver claimed the order.
	DriverAssigned

	// InTransit means the driver picked the order up.
	InTransit

	// Delivered is terminal and unlocks the review gate.
	Delivered

	// Canceled is terminal and permanently disables reviewing.
	Canceled
)

// transitions is the role-scoped transition table. Accepted -> DriverAssigned is listed
// for completeness; orders reach it only through Claim.
func transitions() map[Status]map[Status][]kernel.Role {
	return map[Status]map[Status][]kernel.Role{
		Placed: {
			Accepted: {kernel.RoleRestaurant},
			Canceled: {kernel.RoleRestaurant, kernel.RoleCustomer},
		},
		Accepted: {
			DriverAssigned: {kernel.RoleDriver},
			Canceled:       {kernel.RoleRestaurant},
		},
		DriverAssigned: {
			InTransit: {kernel.RoleDriver},
			Canceled:  {kernel.RoleDriver},
		},
		InTransit: {
			Delivered: {kernel.RoleDriver},
			Canceled:  {kernel.RoleDriver},
		},
	}
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Placed:         "Placed",
		Accepted:       "Accepted",
		DriverAssigned: "DriverAssigned",
		InTransit:      "InTransit",
		Delivered:      "Delivered",
		Canceled:       "Canceled",
	}
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Placed, Accepted, DriverAssigned, InTransit, Delivered, Canceled}
}

// ParseStatus converts the canonical name (case-insensitive) into a Status.
func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses() {
		if strings.EqualFold(strings.TrimSpace(s), st.String()) {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of the six lifecycle states.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if !slices.Contains(AllStatuses(), s) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical name of the status, or "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled
}

// CanTransition checks the transition table without performing the transition.
//
// Returns:
//   - nil if role may move an order from s to `to`
//   - *InvalidTransitionError for every pair not in the table, including skipped steps,
//     moves out of terminal states and self-transitions
func (s Status) CanTransition(to Status, role kernel.Role) error {
	roles, ok := transitions()[s][to]
	if !ok || !slices.Contains(roles, role) {
		return NewInvalidTransitionError(s, to, role)
	}
	return nil
}

// AllowedTargets returns the statuses role may move an order to from s through a
// status change, in lifecycle order. DriverAssigned is never offered: it is reached
// only by Claim. Presentation layers use it to offer only legal actions.
func (s Status) AllowedTargets(role kernel.Role) []Status {
	var out []Status
	for _, to := range AllStatuses() {
		if to == DriverAssigned {
			continue
		}
		if s.CanTransition(to, role) == nil {
			out = append(out, to)
		}
	}
	return out
}

// CustomerLabel returns the status as shown to customers and drivers.
func (s Status) CustomerLabel() string {
	switch s {
	case Placed:
		return "Pending"
	case Accepted:
		return "Accepted"
	case DriverAssigned:
		return "Assigned"
	case InTransit:
		return "In Transit"
	case Delivered:
		return "Delivered"
	case Canceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// RestaurantLabel returns the status as shown to restaurant staff.
func (s Status) RestaurantLabel() string {
	switch s {
	case Placed:
		return "new"
	case Accepted, DriverAssigned:
		return "processing"
	case InTransit:
		return "in-delivery"
	case Delivered:
		return "completed"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Label returns the vocabulary matching the viewer's role.
func (s Status) Label(viewer kernel.Role) string {
	if viewer == kernel.RoleRestaurant {
		return s.RestaurantLabel()
	}
	return s.CustomerLabel()
}

// ValidateCanHaveDriver checks the consistency between a status and driver assignment.
//
// Business Rules:
//   - Placed and Accepted orders have no driver
//   - DriverAssigned, InTransit and Delivered orders have a driver
//   - Canceled orders may or may not have one, depending on when they were canceled
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	switch s {
	case Placed, Accepted:
		if hasDriver {
			return errs.NewValueIsInvalidErrorWithCause(
				"status is invalid",
				fmt.Errorf("%s is not a valid status to have a driver", s),
			)
		}
	case DriverAssigned, InTransit, Delivered:
		if !hasDriver {
			return errs.NewValueIsInvalidErrorWithCause(
				"status is invalid",
				fmt.Errorf("%s is not a valid status to have no driver", s),
			)
		}
	case Unknown, Canceled:
	}
	return nil
}
