package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	assistantHTTP "project-assistant/internal/assistant/delivery/http"
	"project-assistant/internal/middleware"
)

// setupAssistantDomain registers the conversation and item routes.
// The use case is built in main since it needs every collaborator.
func (srv HTTPServer) setupAssistantDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	h := assistantHTTP.New(srv.l, srv.assistantUC, srv.maxUploadSize)
	assistantHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Assistant domain registered")
	return nil
}
