package postgres

import (
	"foodorder/internal/adapters/out/postgres/orderrepo"
	"foodorder/internal/adapters/out/postgres/reviewrepo"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the orders, order_items and reviews tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}, &reviewrepo.ReviewDTO{})
}
