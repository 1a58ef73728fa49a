package http

import (
	"github.com/gin-gonic/gin"

	"project-assistant/internal/middleware"
)

// RegisterRoutes maps the assistant endpoints. Message routes are rate
// limited per conversation.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	conversations := rg.Group("/conversations/:conversation_id")
	{
		conversations.POST("/messages", mw.RateLimit(), h.SendMessage)
		conversations.DELETE("/session", h.CancelSession)
	}

	projects := rg.Group("/projects/:project_id")
	{
		projects.POST("/items", mw.RateLimit(), h.CommitItems)
	}
}
