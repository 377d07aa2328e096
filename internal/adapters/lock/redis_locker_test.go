package lock_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/voucher_engine/internal/adapters/lock"
	"github.com/SscSPs/voucher_engine/internal/apperrors"
)

func newLocker(t *testing.T) (*lock.RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return lock.NewRedisLocker(rdb, 5*time.Millisecond), mr
}

func TestRedisLocker_RunsAndReleases(t *testing.T) {
	locker, mr := newLocker(t)
	executed := false

	err := locker.WithLock(context.Background(), "voucher:daily:2026-03-10", time.Second, func(context.Context) error {
		executed = true
		assert.True(t, mr.Exists("lock:voucher:daily:2026-03-10"))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, executed)
	assert.False(t, mr.Exists("lock:voucher:daily:2026-03-10"))
}

func TestRedisLocker_PropagatesError(t *testing.T) {
	locker, mr := newLocker(t)
	want := errors.New("boom")

	err := locker.WithLock(context.Background(), "k", time.Second, func(context.Context) error { return want })

	assert.Equal(t, want, err)
	assert.False(t, mr.Exists("lock:k"))
}

func TestRedisLocker_SerialisesHolders(t *testing.T) {
	locker, _ := newLocker(t)
	var (
		inside  int32
		overlap int32
		wg      sync.WaitGroup
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := locker.WithLock(context.Background(), "voucher:xref:L1:F", 2*time.Second, func(context.Context) error {
				if atomic.AddInt32(&inside, 1) > 1 {
					atomic.StoreInt32(&overlap, 1)
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Zero(t, atomic.LoadInt32(&overlap))
}

func TestRedisLocker_GivesUpWhileHeld(t *testing.T) {
	locker, mr := newLocker(t)
	require.NoError(t, mr.Set("lock:busy", "someone-else"))
	mr.SetTTL("lock:busy", time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	called := false
	err := locker.WithLock(ctx, "busy", time.Second, func(context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, lock.ErrNotObtained)
	assert.ErrorIs(t, err, apperrors.ErrSequenceConflict)
	assert.False(t, called)
}
