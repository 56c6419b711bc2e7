package api

import (
	"sync"
	"time"
)

// RateLimiter is a token bucket shared by every request. One global bucket
// is enough for a single-process deployment; the knobs come from
// MAX_REQUEST and REFILL_RATE.
type RateLimiter struct {
	tokens     int
	maxToken   int
	refillRate time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
}

func NewRateLimiter(maxToken int, refillRate time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:     maxToken,
		maxToken:   maxToken,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Allow consumes one token if available, refilling first based on the time
// elapsed since the last refill.
func (limiter *RateLimiter) Allow() bool {
	limiter.mutex.Lock()
	defer limiter.mutex.Unlock()

	// Refill tokens earned since the last refill, capped at the bucket size
	elapsed := time.Since(limiter.lastRefill)
	refill := int(elapsed / limiter.refillRate)
	if refill > 0 {
		limiter.tokens += refill
		if limiter.tokens > limiter.maxToken {
			limiter.tokens = limiter.maxToken
		}
		limiter.lastRefill = time.Now()
	}

	if limiter.tokens > 0 {
		limiter.tokens--
		return true
	}

	return false
}
