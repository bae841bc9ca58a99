package http

import (
	"sync"
	"time"
)

// Buckets whose window closed this long ago are dropped by the sweeper.
const (
	bucketIdleTTL = 1 * time.Hour
	sweepInterval = 30 * time.Minute
)

// Reservation is the outcome of one Reserve call.
type Reservation struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration // until the key's window resets
}

type windowBucket struct {
	used    int
	resetAt time.Time
}

// RateLimiter is a fixed-window limiter: each key may spend capacity
// requests per window, and the count resets when the window closes.
type RateLimiter struct {
	mu       sync.Mutex
	capacity int
	window   time.Duration
	buckets  map[string]*windowBucket
	now      func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity: capacity,
		window:   window,
		buckets:  make(map[string]*windowBucket),
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.done:
			return
		}
	}
}

func (r *RateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-bucketIdleTTL)
	for key, b := range r.buckets {
		if b.resetAt.Before(cutoff) {
			delete(r.buckets, key)
		}
	}
}

// Stop ends the sweeper. It is safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

// Reserve spends one request from key's current window if any are left.
func (r *RateLimiter) Reserve(key string) Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	b, ok := r.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		b = &windowBucket{resetAt: now.Add(r.window)}
		r.buckets[key] = b
	}

	wait := b.resetAt.Sub(now)
	if b.used >= r.capacity {
		return Reservation{RetryAfter: wait}
	}
	b.used++
	return Reservation{Allowed: true, Remaining: r.capacity - b.used, RetryAfter: wait}
}

// Allow reports whether key may make another request now.
func (r *RateLimiter) Allow(key string) bool {
	return r.Reserve(key).Allowed
}
