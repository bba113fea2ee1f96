package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/autofix-digital/template-base/internal/constants"
	"github.com/autofix-digital/template-base/pkg/logger"
)

// rateLimiter is a sliding-window counter per client IP.
type rateLimiter struct {
	mu       sync.Mutex
	hits     map[string][]time.Time
	max      int
	window   time.Duration
	lastSwep time.Time
}

func newRateLimiter(max int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
	}
}

// allow records a hit for ip and reports whether it stays under the
// limit. remaining is the number of requests left in the window.
func (rl *rateLimiter) allow(ip string, now time.Time) (ok bool, remaining int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// drop idle IPs every window so the map cannot grow unbounded
	if now.Sub(rl.lastSwep) > rl.window {
		rl.sweep(now)
		rl.lastSwep = now
	}

	recent := rl.prune(rl.hits[ip], now)
	if len(recent) >= rl.max {
		rl.hits[ip] = recent
		return false, 0
	}

	rl.hits[ip] = append(recent, now)
	return true, rl.max - len(recent) - 1
}

// must hold mu
func (rl *rateLimiter) prune(hits []time.Time, now time.Time) []time.Time {
	live := hits[:0]
	for _, t := range hits {
		if now.Sub(t) <= rl.window {
			live = append(live, t)
		}
	}
	return live
}

// must hold mu
func (rl *rateLimiter) sweep(now time.Time) {
	for ip, hits := range rl.hits {
		if live := rl.prune(hits, now); len(live) > 0 {
			rl.hits[ip] = live
		} else {
			delete(rl.hits, ip)
		}
	}
}

// RateLimit rejects clients that exceed max requests per window with a
// 429 and standard rate limit headers.
func RateLimit(max int, window time.Duration) gin.HandlerFunc {
	limiter := newRateLimiter(max, window)

	return func(c *gin.Context) {
		now := time.Now()
		ip := c.ClientIP()

		ok, remaining := limiter.allow(ip, now)

		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(now.Add(window).Unix(), 10))

		if !ok {
			logger.GetLogger().Warn("Rate limit exceeded",
				zap.String("client_ip", ip),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("max_requests", max),
				zap.Duration("window", window),
			)

			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.JSON(http.StatusTooManyRequests, constants.BuildDomainErrorResponse("RATE_LIMITED", "too many requests, slow down"))
			c.Abort()
			return
		}

		c.Next()
	}
}
