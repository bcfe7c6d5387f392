// rate_limiter.go - Per-caller rate limiting for the gargantuad daemon's
// /instruction endpoint: each X-Gargantua-Caller identity gets its own
// token bucket, so one caller flooding Fund/Transfer/Burn submissions
// cannot starve another caller's share of dispatch time.
package main

import (
	"sync"
	"time"
)

// RateLimiter implements a simple token bucket rate limiter
type RateLimiter struct {
	mu           sync.Mutex
	tokens       int
	maxTokens    int
	refillRate   int
	lastRefill   time.Time
	refillPeriod time.Duration
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(maxTokens int, refillRate int, refillPeriod time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:       maxTokens,
		maxTokens:    maxTokens,
		refillRate:   refillRate,
		lastRefill:   time.Now(),
		refillPeriod: refillPeriod,
	}
}

// Allow checks if a request is allowed and consumes a token if so
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Refill tokens based on time elapsed
	now := time.Now()
	timeElapsed := now.Sub(rl.lastRefill)
	refillCount := int(timeElapsed / rl.refillPeriod)

	if refillCount > 0 {
		rl.tokens += refillCount * rl.refillRate
		if rl.tokens > rl.maxTokens {
			rl.tokens = rl.maxTokens
		}
		rl.lastRefill = now
	}

	// Check if we have tokens available
	if rl.tokens > 0 {
		rl.tokens--
		return true
	}

	return false
}

// GetTokens returns the current number of available tokens
func (rl *RateLimiter) GetTokens() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.tokens
}

// Reset resets the rate limiter to its initial state
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.tokens = rl.maxTokens
	rl.lastRefill = time.Now()
}

// CallerRateLimiter manages one token bucket per caller identity
// (hex-encoded X-Gargantua-Caller), so the daemon's per-caller quota
// survives across requests without a shared global limiter.
type CallerRateLimiter struct {
	limiters     map[string]*RateLimiter
	mu           sync.RWMutex
	maxTokens    int
	refillRate   int
	refillPeriod time.Duration
}

// NewParticipantRateLimiter creates a new per-caller rate limiter.
func NewParticipantRateLimiter(maxTokens int, refillRate int, refillPeriod time.Duration) *CallerRateLimiter {
	return &CallerRateLimiter{
		limiters:     make(map[string]*RateLimiter),
		maxTokens:    maxTokens,
		refillRate:   refillRate,
		refillPeriod: refillPeriod,
	}
}

// Allow checks if an /instruction submission from the given caller is
// allowed under that caller's own bucket, lazily creating it on first
// use.
func (crl *CallerRateLimiter) Allow(caller string) bool {
	crl.mu.Lock()
	limiter, exists := crl.limiters[caller]
	if !exists {
		limiter = NewRateLimiter(crl.maxTokens, crl.refillRate, crl.refillPeriod)
		crl.limiters[caller] = limiter
	}
	crl.mu.Unlock()

	return limiter.Allow()
}

// GetTokens returns the current number of available tokens for a caller.
func (crl *CallerRateLimiter) GetTokens(caller string) int {
	crl.mu.RLock()
	limiter, exists := crl.limiters[caller]
	crl.mu.RUnlock()

	if !exists {
		return crl.maxTokens
	}

	return limiter.GetTokens()
}

// Reset resets the rate limiter for a specific caller.
func (crl *CallerRateLimiter) Reset(caller string) {
	crl.mu.Lock()
	if limiter, exists := crl.limiters[caller]; exists {
		limiter.Reset()
	}
	crl.mu.Unlock()
}

// ResetAll resets every caller's rate limiter, e.g. after a config reload.
func (crl *CallerRateLimiter) ResetAll() {
	crl.mu.Lock()
	for _, limiter := range crl.limiters {
		limiter.Reset()
	}
	crl.mu.Unlock()
}
