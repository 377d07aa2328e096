package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
)

func TestProcessLocker_SerialisesSameKey(t *testing.T) {
	var (
		inside  int32
		overlap bool
		wg      sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = processLocker{}.WithLock(context.Background(), "voucher:daily:test", time.Second, func(context.Context) error {
				if atomic.AddInt32(&inside, 1) > 1 {
					overlap = true
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
		}()
	}
	wg.Wait()
	assert.False(t, overlap)
}

func TestProcessLocker_HonoursContext(t *testing.T) {
	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = processLocker{}.WithLock(context.Background(), "voucher:xref:ctx", time.Second, func(context.Context) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := processLocker{}.WithLock(ctx, "voucher:xref:ctx", time.Second, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNumberLockKeys(t *testing.T) {
	v := domain.Voucher{LedgerID: "L1", FiscalYearID: "F", VoucherDate: time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)}

	assert.Equal(t, []string{"voucher:daily:2026-03-10", "voucher:xref:L1:F"}, numberLockKeys(v, true, false))
	assert.Equal(t, []string{"voucher:daily:2026-03-10"}, numberLockKeys(v, false, true))
	assert.Empty(t, numberLockKeys(v, false, false))
}

func TestWithLocks_AcquiresInOrder(t *testing.T) {
	var order []string
	locker := recordingLocker{order: &order}

	err := withLocks(context.Background(), locker, []string{"a", "b"}, time.Second, func(context.Context) error {
		order = append(order, "run")
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "run"}, order)
}

type recordingLocker struct{ order *[]string }

func (l recordingLocker) WithLock(ctx context.Context, key string, _ time.Duration, fn func(ctx context.Context) error) error {
	*l.order = append(*l.order, key)
	return fn(ctx)
}
