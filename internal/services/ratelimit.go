package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	ips    map[string]*visitor
	mu     sync.RWMutex
	r      rate.Limit
	b      int
	logger *slog.Logger
	now    func() time.Time
}

func NewIPRateLimiter(r rate.Limit, b int, logger *slog.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		ips:    make(map[string]*visitor),
		r:      r,
		b:      b,
		logger: logger,
		now:    time.Now,
	}
}

// StartCleanup forgets IPs idle for longer than idle, checking every
// interval until ctx is done.
func (i *IPRateLimiter) StartCleanup(ctx context.Context, interval, idle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := i.evictIdle(idle); n > 0 {
					i.logger.Debug("Cleaned up rate limiter map", "evicted", n)
				}
			}
		}
	}()
}

func (i *IPRateLimiter) evictIdle(idle time.Duration) int {
	cutoff := i.now().Add(-idle)

	i.mu.Lock()
	defer i.mu.Unlock()

	evicted := 0
	for ip, v := range i.ips {
		if v.lastSeen.Before(cutoff) {
			delete(i.ips, ip)
			evicted++
		}
	}
	return evicted
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	v, exists := i.ips[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[ip] = v
	}
	v.lastSeen = i.now()

	return v.limiter
}
