// Package cartstore keeps carts in Redis as one JSON document per customer session.
//
// Every write refreshes the key's TTL, so a cart left alone expires. Update is a
// WATCH/MULTI transaction: when another request writes the same cart between the read
// and the write, the transaction is retried on the fresh state.
package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL        = 72 * time.Hour
	maxUpdateAttempts = 16
)

var ErrTooMuchContention = errors.New("cart kept changing during the update")

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCartStore{client: client, ttl: ttl}
}

// Key returns the Redis key of owner's cart.
func (s *RedisCartStore) Key(owner cart.Owner) string {
	return "cart:" + owner.CustomerID().String() + ":" + owner.DeviceID()
}

func (s *RedisCartStore) Get(ctx context.Context, owner cart.Owner) (*cart.Cart, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	return s.load(ctx, s.client, owner)
}

func (s *RedisCartStore) Update(ctx context.Context, owner cart.Owner, fn func(c *cart.Cart) error) (*cart.Cart, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	key := s.Key(owner)
	var updated *cart.Cart
	var fnErr error

	txf := func(tx *redis.Tx) error {
		c, err := s.load(ctx, tx, owner)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			fnErr = err
			return err
		}

		payload, err := json.Marshal(fromDomain(c))
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if c.IsEmpty() {
				pipe.Del(ctx, key)
				return nil
			}
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		updated = c
		return nil
	}

	for range maxUpdateAttempts {
		fnErr = nil
		err := s.client.Watch(ctx, txf, key)
		switch {
		case err == nil:
			return updated, nil
		case fnErr != nil:
			return nil, fnErr
		case errors.Is(err, redis.TxFailedErr):
			continue
		default:
			var unavailable *errs.PersistenceUnavailableError
			if errors.As(err, &unavailable) {
				return nil, err
			}
			return nil, errs.NewPersistenceUnavailableError("update cart", err)
		}
	}

	return nil, errs.NewPersistenceUnavailableError("update cart", ErrTooMuchContention)
}

func (s *RedisCartStore) Delete(ctx context.Context, owner cart.Owner) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.Key(owner)).Err(); err != nil {
		return errs.NewPersistenceUnavailableError("delete cart", err)
	}
	return nil
}

func (s *RedisCartStore) load(ctx context.Context, cmd getter, owner cart.Owner) (*cart.Cart, error) {
	raw, err := cmd.Get(ctx, s.Key(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.NewCart(owner)
	}
	if err != nil {
		return nil, errs.NewPersistenceUnavailableError("get cart", err)
	}

	var dto cartDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, errs.NewPersistenceUnavailableError("decode cart", err)
	}
	c, err := toDomain(owner, dto)
	if err != nil {
		return nil, errs.NewPersistenceUnavailableError("decode cart", fmt.Errorf("stored cart is corrupt: %w", err))
	}
	return c, nil
}
