package services

import (
	"sync"
	"time"
)

// rateWindow tracks requests observed for one caller key since windowStart
type rateWindow struct {
	windowStart time.Time
	count       int
}

// RateLimiter bounds requests per caller key within a recycling window.
// Entries are created lazily on first request and never deleted; the window
// recycles, so the table stays bounded by the number of distinct callers.
type RateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	callers map[string]*rateWindow
	now     func() time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window per caller key
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		window:  window,
		limit:   limit,
		callers: make(map[string]*rateWindow),
		now:     time.Now,
	}
}

// Allow records one request for the caller key and reports whether it is
// within the rate limit. The read-modify-write is done under the lock, so
// concurrent invocations never observe a partial update.
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	w, ok := r.callers[key]
	if !ok || now.Sub(w.windowStart) > r.window {
		r.callers[key] = &rateWindow{windowStart: now, count: 1}
		return true
	}

	w.count++
	return w.count <= r.limit
}

// RetrySeconds is the hint returned with rate-limited responses
func (r *RateLimiter) RetrySeconds() int {
	return int(r.window / time.Second)
}
