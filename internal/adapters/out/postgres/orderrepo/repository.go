// Package orderrepo stores order aggregates in Postgres through GORM.
//
// Status changes are written only through conditional updates (UpdateIfUnchanged and
// Claim) whose WHERE clause repeats the state the caller validated against. Under READ
// COMMITTED a concurrent writer's commit makes the clause re-evaluate to no rows, which
// is reported as a lost race rather than an error.
package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodorder/internal/adapters/out/postgres/pgerr"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err, idempotencyKeyIndex) {
			return fmt.Errorf("%w: idempotency key %q", order.ErrDuplicateOrder, aggregate.IdempotencyKey())
		}
		return pgerr.Unavailable("add order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withItems(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, pgerr.Unavailable("get order", err)
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) GetByIdempotencyKey(ctx context.Context, customerID kernel.UUID, key string) (*order.Order, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, errs.NewValueIsRequiredError("idempotencyKey")
	}

	var dto OrderDTO
	err := r.withItems(ctx).
		First(&dto, "customer_id = ? AND idempotency_key = ?", customerID.Bytes(), key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("idempotencyKey", key)
		}
		return nil, pgerr.Unavailable("get order by idempotency key", err)
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) UpdateIfUnchanged(ctx context.Context, aggregate *order.Order, expected order.Snapshot) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	query := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), int(expected.Status))
	if expected.DriverID == nil {
		query = query.Where("driver_id IS NULL")
	} else {
		query = query.Where("driver_id = ?", expected.DriverID.Bytes())
	}

	var driverID, deliveredAt any
	if id := aggregate.DriverID(); id != nil {
		driverID = id.Bytes()
	}
	if at := aggregate.DeliveredAt(); at != nil {
		deliveredAt = *at
	}

	result := query.Updates(map[string]any{
		"status":       int(aggregate.Status()),
		"driver_id":    driverID,
		"delivered_at": deliveredAt,
		"updated_at":   aggregate.UpdatedAt(),
	})
	if result.Error != nil {
		return false, pgerr.Unavailable("update order status", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return true, nil
}

func (r *GormOrderRepository) Claim(ctx context.Context, orderID, driverID kernel.UUID, at time.Time) (bool, error) {
	if err := errors.Join(orderID.Validate(), driverID.Validate()); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND driver_id IS NULL", orderID.Bytes(), int(order.Accepted)).
		Updates(map[string]any{
			"status":     int(order.DriverAssigned),
			"driver_id":  driverID.Bytes(),
			"updated_at": at,
		})
	if result.Error != nil {
		return false, pgerr.Unavailable("claim order", result.Error)
	}

	return result.RowsAffected == 1, nil
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}
