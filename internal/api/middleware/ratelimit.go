package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// AdminRateLimiter throttles admin API traffic per client IP, separate
// from the authentication lockout: even a caller with a valid token is
// bounded to `limit` requests per `window`.
type AdminRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*adminLimiterEntry
	limit    rate.Limit
	burst    int
}

type adminLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewAdminRateLimiter allows `limit` requests per `window` with a burst
// of the same size, matching the original 50-per-15-minutes policy.
func NewAdminRateLimiter(limit int, window time.Duration) *AdminRateLimiter {
	if limit <= 0 {
		limit = 50
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &AdminRateLimiter{
		limiters: make(map[string]*adminLimiterEntry),
		limit:    rate.Limit(float64(limit) / window.Seconds()),
		burst:    limit,
	}
}

func (l *AdminRateLimiter) limiterFor(identity string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.limiters[identity]
	if !ok {
		e = &adminLimiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[identity] = e
	}
	e.lastSeen = time.Now()
	return e.limiter
}

// Sweep drops limiter state for identities idle longer than maxIdle.
func (l *AdminRateLimiter) Sweep(maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	cutoff := time.Now().Add(-maxIdle)
	for id, e := range l.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(l.limiters, id)
			removed++
		}
	}
	return removed
}

// Middleware rejects over-limit requests with 429.
func (l *AdminRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
