// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleTTL is how long an unused client bucket is kept
const idleTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per client key
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	keyFunc func(*http.Request) string
	now     func() time.Time
}

// NewRateLimiter allows perMinute requests per client IP, with bursts of the same size.
// Clients are keyed by peer address unless trustProxy is set, in which case
// GetClientIP reads the forwarding headers.
func NewRateLimiter(perMinute int, trustProxy bool) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	keyFunc := PeerIP
	if trustProxy {
		keyFunc = GetClientIP
	}
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(float64(perMinute) / 60),
		burst:   perMinute,
		keyFunc: keyFunc,
		now:     time.Now,
	}
}

// Allow reports whether a request from key may proceed now
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		rl.sweep(now)
		b = &bucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// sweep drops idle buckets. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for k, b := range rl.buckets {
		if now.Sub(b.lastSeen) > idleTTL {
			delete(rl.buckets, k)
		}
	}
}

// Limit wraps a handler, answering 429 once the client runs out of tokens
func (rl *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := rl.keyFunc(r)
		if !rl.Allow(key) {
			slog.Warn("rate limit exceeded", "path", r.URL.Path, "client", key)
			retry := time.Duration(float64(time.Second) / float64(rl.limit))
			w.Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
			ErrorResponse(w, http.StatusTooManyRequests, "Too many requests. Please slow down.")
			return
		}
		next(w, r)
	}
}
