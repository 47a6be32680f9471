package queries

import (
	"context"

	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
)

type GetCartQueryHandler struct {
	carts     ports.CartStore
	assembler services.CheckoutAssembler
}

func NewGetCartQueryHandler(carts ports.CartStore, assembler services.CheckoutAssembler) GetCartQueryHandler {
	return GetCartQueryHandler{carts: carts, assembler: assembler}
}

func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	c, err := h.carts.Get(ctx, query.Owner())
	if err != nil {
		return GetCartQueryResponse{}, err
	}

	return GetCartQueryResponse{Cart: c, Quote: h.assembler.Quote(c)}, nil
}
