package services

import (
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// ShippingFeePolicy decides the shipping fee for a set of order items.
// Implementations must return zero for an empty set and may return a non-zero
// fee only when items is non-empty.
type ShippingFeePolicy interface {
	FeeFor(restaurantID kernel.UUID, items []order.Item) kernel.Money
}

// FlatShippingFee charges the same fee on every non-empty checkout.
type FlatShippingFee struct {
	fee kernel.Money
}

func NewFlatShippingFee(fee kernel.Money) FlatShippingFee {
	return FlatShippingFee{fee: fee}
}

func (p FlatShippingFee) FeeFor(_ kernel.UUID, items []order.Item) kernel.Money {
	if len(items) == 0 {
		return kernel.ZeroMoney()
	}
	return p.fee
}
