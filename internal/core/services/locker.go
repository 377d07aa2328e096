package services

import (
	"context"
	"sync"
	"time"
)

// processLocker serialises number allocation inside one process. It is the
// fallback when no distributed locker is configured.
type processLocker struct{}

var processLocks sync.Map // key -> chan struct{}

func (processLocker) WithLock(ctx context.Context, key string, _ time.Duration, fn func(ctx context.Context) error) error {
	v, _ := processLocks.LoadOrStore(key, make(chan struct{}, 1))
	sem := v.(chan struct{})
	select {
	case sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-sem }()
	return fn(ctx)
}
