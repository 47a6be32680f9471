package orderrepo

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"

	"github.com/google/uuid"
)

const idempotencyKeyIndex = "idx_orders_customer_idempotency_key"

type OrderDTO struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_orders_customer_idempotency_key,priority:1"`
	RestaurantID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	AddressID      uuid.UUID      `gorm:"type:uuid;not null"`
	DriverID       *uuid.UUID     `gorm:"type:uuid;index"`
	DeliveryNote   string         `gorm:"type:text"`
	Subtotal       int64          `gorm:"not null"`
	ShippingFee    int64          `gorm:"not null"`
	Total          int64          `gorm:"not null"`
	Status         int            `gorm:"type:smallint;not null;index"`
	PlacedAt       time.Time      `gorm:"not null"`
	UpdatedAt      time.Time      `gorm:"not null;autoUpdateTime:false"`
	DeliveredAt    *time.Time
	IdempotencyKey *string        `gorm:"type:varchar(128);uniqueIndex:idx_orders_customer_idempotency_key,priority:2"`
	Items          []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type OrderItemDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"primaryKey;autoIncrement:false"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null"`
	Name       string    `gorm:"not null"`
	UnitPrice  int64     `gorm:"not null"`
	Quantity   int       `gorm:"not null"`
	Note       string    `gorm:"type:text"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := o.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	var key *string
	if k := o.IdempotencyKey(); k != "" {
		key = &k
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, it := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:    o.ID().Bytes(),
			Position:   i,
			MenuItemID: it.MenuItemID().Bytes(),
			Name:       it.Name(),
			UnitPrice:  it.UnitPrice().Amount(),
			Quantity:   it.Quantity(),
			Note:       it.Note(),
		})
	}

	return OrderDTO{
		ID:             o.ID().Bytes(),
		CustomerID:     o.CustomerID().Bytes(),
		RestaurantID:   o.RestaurantID().Bytes(),
		AddressID:      o.AddressID().Bytes(),
		DriverID:       driverID,
		DeliveryNote:   o.DeliveryNote(),
		Subtotal:       o.Subtotal().Amount(),
		ShippingFee:    o.ShippingFee().Amount(),
		Total:          o.Total().Amount(),
		Status:         int(o.Status()),
		PlacedAt:       o.PlacedAt(),
		UpdatedAt:      o.UpdatedAt(),
		DeliveredAt:    o.DeliveredAt(),
		IdempotencyKey: key,
		Items:          items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	r := order.Record{
		DeliveryNote: dto.DeliveryNote,
		Status:       order.Status(dto.Status),
		PlacedAt:     dto.PlacedAt,
		UpdatedAt:    dto.UpdatedAt,
		DeliveredAt:  dto.DeliveredAt,
	}
	if dto.IdempotencyKey != nil {
		r.IdempotencyKey = *dto.IdempotencyKey
	}

	var err error
	if r.ID, err = kernel.UUIDFromBytes(dto.ID[:]); err != nil {
		return nil, err
	}
	if r.CustomerID, err = kernel.UUIDFromBytes(dto.CustomerID[:]); err != nil {
		return nil, err
	}
	if r.RestaurantID, err = kernel.UUIDFromBytes(dto.RestaurantID[:]); err != nil {
		return nil, err
	}
	if r.AddressID, err = kernel.UUIDFromBytes(dto.AddressID[:]); err != nil {
		return nil, err
	}
	if dto.DriverID != nil {
		driverID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		r.DriverID = &driverID
	}

	if r.Subtotal, err = kernel.NewMoney(dto.Subtotal); err != nil {
		return nil, err
	}
	if r.ShippingFee, err = kernel.NewMoney(dto.ShippingFee); err != nil {
		return nil, err
	}
	if r.Total, err = kernel.NewMoney(dto.Total); err != nil {
		return nil, err
	}

	r.Items = make([]order.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		item, itemErr := itemToDomain(it)
		if itemErr != nil {
			return nil, itemErr
		}
		r.Items = append(r.Items, item)
	}

	return order.RestoreOrder(r)
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return order.Item{}, err
	}
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}
	return order.NewItem(menuItemID, dto.Name, price, dto.Quantity, dto.Note)
}
