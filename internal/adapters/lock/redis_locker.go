// Package lock provides the distributed lock used around voucher number allocation.
package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
	"github.com/SscSPs/voucher_engine/internal/middleware"
)

const keyPrefix = "lock:"

// ErrNotObtained is returned when another holder kept the lock past the wait deadline.
var ErrNotObtained = fmt.Errorf("%w: lock is held by another save", apperrors.ErrSequenceConflict)

// RedisLocker implements portssvc.Locker on top of redislock.
type RedisLocker struct {
	client  *redislock.Client
	backoff time.Duration
}

var _ portssvc.Locker = (*RedisLocker)(nil)

// NewRedisLocker creates a locker on rdb. backoff is the pause between attempts.
func NewRedisLocker(rdb redis.UniversalClient, backoff time.Duration) *RedisLocker {
	if backoff <= 0 {
		backoff = 50 * time.Millisecond
	}
	return &RedisLocker{client: redislock.New(rdb), backoff: backoff}
}

// WithLock retries until the lock is obtained or ctx is done. Without a
// deadline on ctx redislock bounds the wait by ttl.
func (l *RedisLocker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	lock, err := l.client.Obtain(ctx, keyPrefix+key, ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(l.backoff),
	})
	if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, context.DeadlineExceeded) {
		logger.Warn("Could not obtain lock", slog.String("key", key))
		return ErrNotObtained
	}
	if err != nil {
		logger.Error("Error obtaining lock", slog.String("key", key), slog.String("error", err.Error()))
		return fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}
	defer func() {
		// Released even when the request context is already cancelled.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if err := lock.Release(releaseCtx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			logger.Warn("Failed to release lock", slog.String("key", key), slog.String("error", err.Error()))
		}
	}()

	return fn(ctx)
}
