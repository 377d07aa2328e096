package services

import (
	"context"
	"time"
)

// Locker serialises work on a shared key across processes.
type Locker interface {
	// WithLock runs fn while holding key. It fails if the lock cannot be
	// obtained before ctx is done.
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error
}
