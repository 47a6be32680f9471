package http

import (
	"time"

	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/review"
	"foodorder/internal/core/domain/services"
)

type AddCartItemRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

// UpdateCartItemRequest carries exactly one of Delta and Notes.
type UpdateCartItemRequest struct {
	Delta *int    `json:"delta"`
	Notes *string `json:"notes"`
}

type PlaceOrderRequest struct {
	AddressID    string `json:"addressId"`
	DeliveryNote string `json:"deliveryNote"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

type SubmitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type CartLineResponse struct {
	ItemID    string `json:"itemId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
	LineTotal int64  `json:"lineTotal"`
}

type CartResponse struct {
	RestaurantID   *string            `json:"restaurantId"`
	RestaurantName string             `json:"restaurantName,omitempty"`
	Lines          []CartLineResponse `json:"lines"`
	ItemCount      int                `json:"itemCount"`
	Subtotal       int64              `json:"subtotal"`
	ShippingFee    int64              `json:"shippingFee"`
	Total          int64              `json:"total"`
}

type OrderItemResponse struct {
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unitPrice"`
	Quantity   int    `json:"quantity"`
	Note       string `json:"note,omitempty"`
	Total      int64  `json:"total"`
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type OrderResponse struct {
	ID             string              `json:"id"`
	CustomerID     string              `json:"customerId"`
	RestaurantID   string              `json:"restaurantId"`
	AddressID      string              `json:"addressId"`
	DriverID       *string             `json:"driverId"`
	Status         string              `json:"status"`
	StatusLabel    string              `json:"statusLabel"`
	DeliveryNote   string              `json:"deliveryNote,omitempty"`
	Items          []OrderItemResponse `json:"items"`
	Subtotal       int64               `json:"subtotal"`
	ShippingFee    int64               `json:"shippingFee"`
	Total          int64               `json:"total"`
	PlacedAt       time.Time           `json:"placedAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
	DeliveredAt    *time.Time          `json:"deliveredAt,omitempty"`
	AllowedActions []string            `json:"allowedActions,omitempty"`
	Review         *ReviewResponse     `json:"review,omitempty"`
}

type OrderSummaryResponse struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customerId"`
	RestaurantID string    `json:"restaurantId"`
	DriverID     *string   `json:"driverId"`
	Status       string    `json:"status"`
	StatusLabel  string    `json:"statusLabel"`
	Total        int64     `json:"total"`
	PlacedAt     time.Time `json:"placedAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toCartResponse(c *cart.Cart, quote services.Quote) CartResponse {
	resp := CartResponse{
		Lines:       make([]CartLineResponse, 0, len(c.Lines())),
		ItemCount:   quote.ItemCount,
		Subtotal:    quote.Subtotal.Amount(),
		ShippingFee: quote.ShippingFee.Amount(),
		Total:       quote.Total.Amount(),
	}
	if rid, ok := c.RestaurantID(); ok {
		resp.RestaurantID = idString(&rid)
		resp.RestaurantName = c.RestaurantName()
	}
	for _, l := range c.Lines() {
		resp.Lines = append(resp.Lines, CartLineResponse{
			ItemID:    l.ItemID().String(),
			Name:      l.Name(),
			UnitPrice: l.UnitPrice().Amount(),
			Quantity:  l.Quantity(),
			Notes:     l.Notes(),
			LineTotal: l.Total().Amount(),
		})
	}
	return resp
}

// toOrderResponse renders o for viewer. Allowed actions are filled in by callers that
// know them.
func toOrderResponse(o *order.Order, viewer kernel.Role) OrderResponse {
	resp := OrderResponse{
		ID:           o.ID().String(),
		CustomerID:   o.CustomerID().String(),
		RestaurantID: o.RestaurantID().String(),
		AddressID:    o.AddressID().String(),
		DriverID:     idString(o.DriverID()),
		Status:       o.Status().String(),
		StatusLabel:  o.Status().Label(viewer),
		DeliveryNote: o.DeliveryNote(),
		Items:        make([]OrderItemResponse, 0, len(o.Items())),
		Subtotal:     o.Subtotal().Amount(),
		ShippingFee:  o.ShippingFee().Amount(),
		Total:        o.Total().Amount(),
		PlacedAt:     o.PlacedAt(),
		UpdatedAt:    o.UpdatedAt(),
		DeliveredAt:  o.DeliveredAt(),
	}
	for _, it := range o.Items() {
		resp.Items = append(resp.Items, OrderItemResponse{
			MenuItemID: it.MenuItemID().String(),
			Name:       it.Name(),
			UnitPrice:  it.UnitPrice().Amount(),
			Quantity:   it.Quantity(),
			Note:       it.Note(),
			Total:      it.Total().Amount(),
		})
	}
	return resp
}

func toReviewResponse(r *review.Review) *ReviewResponse {
	if r == nil {
		return nil
	}
	return &ReviewResponse{
		ID:        r.ID().String(),
		OrderID:   r.OrderID().String(),
		Rating:    r.Rating(),
		Comment:   r.Comment(),
		CreatedAt: r.CreatedAt(),
	}
}

func toSummaryResponses(summaries []queries.OrderSummary) []OrderSummaryResponse {
	out := make([]OrderSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, OrderSummaryResponse{
			ID:           s.ID.String(),
			CustomerID:   s.CustomerID.String(),
			RestaurantID: s.RestaurantID.String(),
			DriverID:     idString(s.DriverID),
			Status:       s.Status.String(),
			StatusLabel:  s.StatusLabel,
			Total:        s.Total.Amount(),
			PlacedAt:     s.PlacedAt,
			UpdatedAt:    s.UpdatedAt,
		})
	}
	return out
}
