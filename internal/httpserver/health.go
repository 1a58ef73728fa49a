package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "project-assistant/pkg/errors"
	"project-assistant/pkg/response"
)

const (
	HealthMessage = "Project assistant is up"
	HealthVersion = "1.0.0"
	ServiceName   = "project-assistant"
)

var errNotReady = pkgErrors.NewHTTPError(http.StatusServiceUnavailable, "No language model provider is configured")

func (srv HTTPServer) status(state string) gin.H {
	return gin.H{
		"status":      state,
		"message":     HealthMessage,
		"version":     HealthVersion,
		"service":     ServiceName,
		"environment": srv.environment,
	}
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, srv.status("healthy"))
}

// readyCheck fails with 503 while the assistant cannot reach any model,
// so a load balancer keeps traffic away from a misconfigured instance.
// @Summary Readiness Check
// @Description Ready once at least one language model provider is configured
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is ready"
// @Failure 503 {object} response.Resp "No provider configured"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	if srv.readiness != nil && !srv.readiness() {
		response.Error(c, errNotReady, srv.status("not_ready"))
		return
	}
	response.OK(c, srv.status("ready"))
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, srv.status("alive"))
}
