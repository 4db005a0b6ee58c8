package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/casecraft/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RateLimiter grants each key a fixed budget of requests per window. It is
// in-memory and per-process, which is enough to keep one client from
// burning the inference quota; it is not a distributed limiter.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
}

type bucket struct {
	remaining int
	resetAt   time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window.
// A background sweep drops buckets idle past their window so one-off
// clients do not accumulate.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
	}
	go rl.sweep()
	return rl
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, b := range rl.buckets {
			if now.After(b.resetAt.Add(rl.window)) {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}

// take consumes one request from the key's bucket, reporting whether it was
// allowed and how much budget is left.
func (rl *RateLimiter) take(key string) (allowed bool, remaining int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[key]
	if !ok || now.After(b.resetAt) {
		b = &bucket{remaining: rl.limit, resetAt: now.Add(rl.window)}
		rl.buckets[key] = b
	}

	if b.remaining == 0 {
		return false, 0
	}
	b.remaining--
	return true, b.remaining
}

// Allow reports whether a request under the key fits the budget.
func (rl *RateLimiter) Allow(key string) bool {
	allowed, _ := rl.take(key)
	return allowed
}

// Remaining peeks at the key's leftover budget without consuming it.
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok || time.Now().After(b.resetAt) {
		return rl.limit
	}
	return b.remaining
}

// RateLimit limits by client IP. The AI proxy routes mount this so a single
// client cannot drain the inference budget for everyone.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return RateLimitByKey(limiter, func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// RateLimitByKey limits by an arbitrary key, e.g. a session header.
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := limiter.take(keyFunc(c))
		if !allowed {
			c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(
				dto.ErrCodeRateLimited,
				"Too many requests. Please try again later.",
			))
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Next()
	}
}
