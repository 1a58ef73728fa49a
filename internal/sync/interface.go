package sync

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Handler receives item change notifications from the item store.
type Handler interface {
	// HandleMemosWebhook processes incoming webhook payloads from Memos.
	HandleMemosWebhook(c *gin.Context)
}

// SessionInvalidator drops pending sessions whose project changed.
type SessionInvalidator interface {
	InvalidateProject(ctx context.Context, projectID string) int
}
