// Package throttle limits requests per client within a fixed window. The
// in-memory store serves a single instance; the Redis store shares counters
// across replicas.
package throttle

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/shashiranjanraj/orderservice/pkg/logger"
	"github.com/shashiranjanraj/orderservice/pkg/metrics"
	"github.com/shashiranjanraj/orderservice/pkg/middleware"
	"github.com/shashiranjanraj/orderservice/pkg/response"
)

// Limiter decides whether one more request for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Store() string
}

// bucket tracks a fixed-window request count for one key.
type bucket struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

func (b *bucket) allow(now time.Time, max int, window time.Duration) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !now.Before(b.resetAt) {
		b.count = 0
		b.resetAt = now.Add(window)
	}
	b.count++
	return b.count <= max
}

func (b *bucket) expired(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !now.Before(b.resetAt)
}

// Memory is a process-local Limiter.
type Memory struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

func NewMemory(max int, window time.Duration) *Memory {
	return &Memory{
		max:     max,
		window:  window,
		now:     time.Now,
		buckets: map[string]*bucket{},
	}
}

func (m *Memory) Store() string { return "memory" }

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	b, ok := m.buckets[key]
	if !ok {
		b = &bucket{}
		m.buckets[key] = b
	}
	m.mu.Unlock()

	return b.allow(m.now(), m.max, m.window), nil
}

// Sweep evicts buckets whose window has passed.
func (m *Memory) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, b := range m.buckets {
		if b.expired(now) {
			delete(m.buckets, key)
			removed++
		}
	}
	return removed
}

// Janitor runs Sweep every interval until ctx is done.
func (m *Memory) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Middleware rejects requests over the limit with 429. Limiter errors let
// the request through.
func Middleware(l Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := l.Allow(r.Context(), middleware.ClientIP(r))
			if err != nil {
				logger.WithCtx(r.Context()).Warn("rate limiter unavailable", "store", l.Store(), "error", err)
				ok = true
			}
			if !ok {
				metrics.RateLimited.WithLabelValues(l.Store()).Inc()
				response.TooManyRequests(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
