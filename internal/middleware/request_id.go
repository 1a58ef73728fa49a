package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"project-assistant/pkg/log"
)

// RequestID attaches an id to the request context and echoes it back.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}
