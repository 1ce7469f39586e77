package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const defaultIngestLockTTL = 30 * time.Second

// ingestLocker serializes concurrent uploads against the same order.
type ingestLocker interface {
	Acquire(ctx context.Context, orderID uuid.UUID) (release func(), ok bool, err error)
}

// redisStore defines the operations used by the order lock.
type redisStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	LockKey(scope, id string) string
}

// OrderLock implements per-order mutual exclusion via Redis SETNX + TTL.
type OrderLock struct {
	client redisStore
	ttl    time.Duration
}

// NewOrderLock constructs a Redis-backed per-order lock.
func NewOrderLock(client redisStore, ttl time.Duration) (*OrderLock, error) {
	if client == nil {
		return nil, errors.New("redis client required for order lock")
	}
	if ttl <= 0 {
		ttl = defaultIngestLockTTL
	}
	return &OrderLock{client: client, ttl: ttl}, nil
}

// Acquire tries to own the order's lock for the configured TTL. On success the
// returned release func frees the lock if the owner value still matches.
func (l *OrderLock) Acquire(ctx context.Context, orderID uuid.UUID) (func(), bool, error) {
	key := l.client.LockKey("order", orderID.String())
	owner := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, owner, l.ttl)
	if err != nil {
		return nil, false, fmt.Errorf("setnx: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		value, err := l.client.Get(context.WithoutCancel(ctx), key)
		if err != nil || value != owner {
			return
		}
		_ = l.client.Del(context.WithoutCancel(ctx), key)
	}
	return release, true, nil
}

// noopLocker is used when Redis is not configured; uploads then rely on the
// database transaction alone.
type noopLocker struct{}

func (noopLocker) Acquire(context.Context, uuid.UUID) (func(), bool, error) {
	return func() {}, true, nil
}
