// Package distlock serializes work across requests and, when Redis is
// available, across server instances.
package distlock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned by Wait when the lock stays held until the
// context is done.
var ErrNotAcquired = errors.New("distlock: lock not acquired")

// ErrLockLost is returned by Extend when the lock is no longer owned, for
// example after its TTL ran out and another holder took it.
var ErrLockLost = errors.New("distlock: lock lost")

// DistLock is the interface for distributed locking.
// A single instance must not be shared by concurrent holders; create one
// lock per attempt.
type DistLock interface {
	// Acquire tries to acquire the lock. Returns true if successful.
	Acquire(ctx context.Context) (bool, error)
	// Release releases the lock if we still own it.
	Release(ctx context.Context) error
	// Extend resets the lock TTL. Returns ErrLockLost if we no longer own it.
	Extend(ctx context.Context, ttl time.Duration) error
}

// NewLock creates a lock using the best available backend.
// If redisClient is non-nil, uses Redis (cross-host locking).
// Otherwise falls back to a lock local to this process.
func NewLock(redisClient *redis.Client, key string, ttl time.Duration) DistLock {
	if redisClient != nil {
		return NewRedisLock(redisClient, key, ttl)
	}
	return NewLocalLock(key)
}

// Wait polls Acquire every interval until it succeeds or ctx is done.
func Wait(ctx context.Context, lock DistLock, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := lock.Acquire(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Join(ErrNotAcquired, ctx.Err())
		case <-ticker.C:
		}
	}
}

// KeepAlive extends lock to ttl every interval until ctx is done. When an
// extension fails, onLost receives the error and KeepAlive returns; the
// holder must then assume another process may own the lock.
func KeepAlive(ctx context.Context, lock DistLock, ttl, interval time.Duration, onLost func(error)) {
	if interval <= 0 {
		interval = ttl / 3
	}
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := lock.Extend(ctx, ttl); err != nil {
				if ctx.Err() != nil {
					return
				}
				onLost(err)
				return
			}
		}
	}
}

// =============================================================================
// Process-local lock (fallback when Redis is unavailable)
// =============================================================================

var (
	localMu    sync.Mutex
	localLocks = make(map[string]*sync.Mutex)
)

// LocalLock implements DistLock with a named in-process mutex. Locks with
// the same key share one mutex.
type LocalLock struct {
	mu   *sync.Mutex
	held bool
}

func NewLocalLock(key string) *LocalLock {
	localMu.Lock()
	defer localMu.Unlock()

	mu, ok := localLocks[key]
	if !ok {
		mu = &sync.Mutex{}
		localLocks[key] = mu
	}
	return &LocalLock{mu: mu}
}

// Acquire never blocks.
func (l *LocalLock) Acquire(ctx context.Context) (bool, error) {
	if l.held {
		return true, nil
	}
	l.held = l.mu.TryLock()
	return l.held, nil
}

// Extend only checks ownership; local locks do not expire.
func (l *LocalLock) Extend(ctx context.Context, ttl time.Duration) error {
	if !l.held {
		return ErrLockLost
	}
	return nil
}

func (l *LocalLock) Release(ctx context.Context) error {
	if !l.held {
		return nil
	}
	l.held = false
	l.mu.Unlock()
	return nil
}
