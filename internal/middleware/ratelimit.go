package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"project-assistant/pkg/response"
)

// rateLimiter keeps one token bucket per key. Idle buckets expire.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](limiterCapacity, nil, limiterTTL),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
	}
}

// allow takes a token for key. When none is left it reports how long
// until the next one, without consuming it.
func (rl *rateLimiter) allow(key string) (bool, time.Duration) {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}

	r := limiter.Reserve()
	if delay := r.Delay(); delay > 0 {
		r.Cancel()
		return false, delay
	}
	return true, 0
}

// RateLimit throttles requests per conversation id, falling back to the
// client IP.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.cfg.RateLimitEnabled {
			c.Next()
			return
		}

		key := c.Param("conversation_id")
		if key == "" {
			key = "ip:" + c.ClientIP()
		}
		if ok, wait := m.limiter.allow(key); !ok {
			m.l.Warnf(c.Request.Context(), "middleware.RateLimit: limit exceeded for %s, retry in %s", key, wait)
			response.TooManyRequests(c, wait)
			return
		}
		c.Next()
	}
}
