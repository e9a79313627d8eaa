package middleware

import (
	"sync"
	"time"

	"yamdb/internal/apperr"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL       = time.Hour
	limiterSweepInterval = 10 * time.Minute
)

// RateLimiter keeps one token bucket per client IP. Idle buckets are swept
// while serving requests, there is no background goroutine.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rate      rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow reports whether a request from ip may proceed now.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	now := rl.now()
	if now.Sub(rl.lastSweep) > limiterSweepInterval {
		rl.sweep(now)
	}
	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastAccess = now
	limiter := entry.limiter
	rl.mu.Unlock()

	return limiter.AllowN(now, 1)
}

// sweep drops buckets idle for longer than limiterIdleTTL. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for ip, entry := range rl.limiters {
		if now.Sub(entry.lastAccess) > limiterIdleTTL {
			delete(rl.limiters, ip)
		}
	}
	rl.lastSweep = now
}

// Middleware answers 429 once a client exceeds its bucket.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			AbortWithError(c, apperr.RateLimited())
			return
		}
		c.Next()
	}
}
