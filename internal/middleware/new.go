package middleware

import (
	"project-assistant/pkg/log"
)

// Config configures the HTTP middlewares.
type Config struct {
	RateLimitEnabled bool
	// RequestsPerMinute is allowed per conversation, or per client IP on
	// routes without a conversation.
	RequestsPerMinute int
}

// Middleware holds the shared state of the gin middlewares.
type Middleware struct {
	l       log.Logger
	cfg     Config
	limiter *rateLimiter
}

// New creates the middleware set.
func New(l log.Logger, cfg Config) Middleware {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}
	return Middleware{
		l:       l,
		cfg:     cfg,
		limiter: newRateLimiter(cfg.RequestsPerMinute),
	}
}
