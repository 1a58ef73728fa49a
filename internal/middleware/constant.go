package middleware

import "time"

const (
	DefaultRequestsPerMinute = 30

	HeaderRequestID = "X-Request-ID"

	limiterCapacity = 1000
	limiterTTL      = 5 * time.Minute
)
