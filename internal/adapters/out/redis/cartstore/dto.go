package cartstore

import (
	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
)

type cartDTO struct {
	Lines []lineDTO `json:"lines"`
}

type lineDTO struct {
	ItemID         string `json:"itemId"`
	Name           string `json:"name"`
	UnitPrice      int64  `json:"unitPrice"`
	Quantity       int    `json:"quantity"`
	Notes          string `json:"notes,omitempty"`
	RestaurantID   string `json:"restaurantId"`
	RestaurantName string `json:"restaurantName"`
}

func fromDomain(c *cart.Cart) cartDTO {
	lines := make([]lineDTO, 0, len(c.Lines()))
	for _, l := range c.Lines() {
		lines = append(lines, lineDTO{
			ItemID:         l.ItemID().String(),
			Name:           l.Name(),
			UnitPrice:      l.UnitPrice().Amount(),
			Quantity:       l.Quantity(),
			Notes:          l.Notes(),
			RestaurantID:   l.RestaurantID().String(),
			RestaurantName: l.RestaurantName(),
		})
	}
	return cartDTO{Lines: lines}
}

func toDomain(owner cart.Owner, dto cartDTO) (*cart.Cart, error) {
	lines := make([]cart.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		itemID, err := kernel.UUIDFromString(l.ItemID)
		if err != nil {
			return nil, err
		}
		restaurantID, err := kernel.UUIDFromString(l.RestaurantID)
		if err != nil {
			return nil, err
		}
		price, err := kernel.NewMoney(l.UnitPrice)
		if err != nil {
			return nil, err
		}

		line, err := cart.RestoreLine(itemID, l.Name, price, l.Quantity, l.Notes, restaurantID, l.RestaurantName)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return cart.RestoreCart(owner, lines)
}
