// services/limiter.go
package services

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// PlatformLimiter keeps one token bucket per AI platform
type PlatformLimiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewPlatformLimiter creates a limiter. A non-positive rate disables limiting.
func NewPlatformLimiter(requestsPerSecond float64, burst int) *PlatformLimiter {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}

	return &PlatformLimiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  limit,
		defaultBurst: burst,
	}
}

// Wait blocks until platform may be called or ctx is done
func (l *PlatformLimiter) Wait(ctx context.Context, platform string) error {
	return l.getLimiter(platform).Wait(ctx)
}

// Allow reports whether platform may be called now without waiting
func (l *PlatformLimiter) Allow(platform string) bool {
	return l.getLimiter(platform).Allow()
}

func (l *PlatformLimiter) getLimiter(platform string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[platform]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[platform]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[platform] = limiter
	return limiter
}

// SetPlatformRate overrides the limit of one platform
func (l *PlatformLimiter) SetPlatformRate(platform string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}
	l.limiters[platform] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}
