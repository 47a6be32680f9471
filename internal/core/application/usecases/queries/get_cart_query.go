package queries

import (
	"errors"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/pkg/guard"
)

var (
	ErrGetCartQueryIsNotConstructed = errors.New(
		"GetCartQuery must be created via NewGetCartQuery constructor",
	)
)

// GetCartQuery reads the cart of one customer session together with its price quote.
//
// Example:
//
//	owner, _ := cart.NewOwner(customerID, "ios-5f1c")
//	query, err := NewGetCartQuery(owner)
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
type GetCartQuery struct {
	owner cart.Owner

	guard guard.ConstructorGuard
}

func NewGetCartQuery(owner cart.Owner) (GetCartQuery, error) {
	if err := owner.Validate(); err != nil {
		return GetCartQuery{}, err
	}

	return GetCartQuery{owner: owner, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

func (q GetCartQuery) Owner() cart.Owner {
	return q.owner
}

// GetCartQueryResponse is the cart with the totals a checkout would produce now.
// An owner without a stored cart gets an empty cart and a zero quote.
type GetCartQueryResponse struct {
	Cart  *cart.Cart
	Quote services.Quote
}
