package sync

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"project-assistant/internal/model"
	"project-assistant/internal/retrieval"
	pkgErrors "project-assistant/pkg/errors"
	pkgResponse "project-assistant/pkg/response"
)

var (
	errUnauthorized = pkgErrors.NewHTTPError(http.StatusUnauthorized, "invalid webhook token")
	errForbidden    = pkgErrors.NewHTTPError(http.StatusForbidden, "source not allowed")
)

// HandleMemosWebhook acknowledges immediately and syncs in the background.
func (h *WebhookHandler) HandleMemosWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.security.ValidateIPAddress(c.ClientIP()); err != nil {
		h.l.Warnf(ctx, "webhook: %v", err)
		pkgResponse.Error(c, errForbidden, nil)
		return
	}
	if err := h.security.ValidateToken(c.GetHeader(HeaderWebhookToken)); err != nil {
		h.l.Warnf(ctx, "webhook: %v", err)
		pkgResponse.Error(c, errUnauthorized, nil)
		return
	}

	var payload MemosWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.l.Errorf(ctx, "webhook: failed to parse payload: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	h.l.Infof(ctx, "webhook: received %s for memo %s", payload.ActivityType, payload.Memo.Name)

	h.spawn(func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		h.process(bgCtx, payload)
	})

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

func (h *WebhookHandler) process(ctx context.Context, p MemosWebhookPayload) {
	id := p.Memo.Name
	if id == "" && p.Memo.UID != "" {
		id = "memos/" + p.Memo.UID
	}
	if id == "" {
		return
	}

	switch p.ActivityType {
	case ActivityMemoCreated, ActivityMemoUpdated:
		h.syncWithRetry(ctx, id)
	case ActivityMemoDeleted:
		// The memo is gone so its project is unknown; stale chunks age out
		// on the next update of the same id.
		h.l.Infof(ctx, "webhook: memo %s deleted", id)
	default:
		h.l.Debugf(ctx, "webhook: ignoring %s", p.ActivityType)
	}
}

// syncWithRetry re-indexes one item with exponential backoff.
func (h *WebhookHandler) syncWithRetry(ctx context.Context, id string) {
	backoff := h.backoff
	invalidated := false

	for i := 0; i < maxSyncRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				h.l.Errorf(ctx, "webhook: sync of %s cancelled: %v", id, ctx.Err())
				return
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		it, err := h.items.GetItemByID(ctx, id)
		if err != nil {
			h.l.Warnf(ctx, "webhook: fetch item failed (retry %d/%d): %v", i+1, maxSyncRetries, err)
			continue
		}

		if !invalidated && it.Type.Hierarchical() && it.ProjectID != "" && h.sessions != nil {
			invalidated = true
			if n := h.sessions.InvalidateProject(ctx, it.ProjectID); n > 0 {
				h.l.Infof(ctx, "webhook: hierarchy of %s changed, dropped %d pending session(s)", it.ProjectID, n)
			}
		}

		if err := h.index(ctx, it); err != nil {
			h.l.Warnf(ctx, "webhook: index failed (retry %d/%d): %v", i+1, maxSyncRetries, err)
			continue
		}

		h.l.Infof(ctx, "webhook: synced item %s", id)
		return
	}

	h.l.Errorf(ctx, "webhook: failed to sync item %s after %d retries", id, maxSyncRetries)
}

func (h *WebhookHandler) index(ctx context.Context, it model.Item) error {
	if h.knowledge == nil {
		return nil
	}
	text := it.Title
	if it.Description != "" {
		text += "\n" + it.Description
	}
	_, err := h.knowledge.Index(ctx, retrieval.Document{
		ID:        it.ID,
		ProjectID: it.ProjectID,
		Source:    fmt.Sprintf("%s:%s", knowledgeSrc, it.Type),
		Text:      text,
	})
	return err
}
