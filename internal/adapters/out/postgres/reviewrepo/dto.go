package reviewrepo

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/review"

	"github.com/google/uuid"
)

const orderIndex = "idx_reviews_order_id"

type ReviewDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_order_id"`
	CustomerID   uuid.UUID `gorm:"type:uuid;not null"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating       int       `gorm:"type:smallint;not null"`
	Comment      string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false"`
}

func (ReviewDTO) TableName() string {
	return "reviews"
}

func fromDomain(r *review.Review) ReviewDTO {
	return ReviewDTO{
		ID:           r.ID().Bytes(),
		OrderID:      r.OrderID().Bytes(),
		CustomerID:   r.CustomerID().Bytes(),
		RestaurantID: r.RestaurantID().Bytes(),
		Rating:       r.Rating(),
		Comment:      r.Comment(),
		CreatedAt:    r.CreatedAt(),
	}
}

func toDomain(dto ReviewDTO) (*review.Review, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	return review.RestoreReview(id, orderID, customerID, restaurantID, dto.Rating, dto.Comment, dto.CreatedAt)
}
