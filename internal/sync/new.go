package sync

import (
	"time"

	"project-assistant/internal/item"
	"project-assistant/internal/retrieval"
	"project-assistant/pkg/log"
)

// WebhookHandler keeps derived state in step with the item store: items
// are re-indexed for knowledge retrieval, and hierarchy changes drop the
// pending sessions of their project. Knowledge may be nil.
type WebhookHandler struct {
	items     item.Store
	knowledge retrieval.Store
	sessions  SessionInvalidator
	security  *SecurityValidator
	l         log.Logger

	backoff time.Duration
	spawn   func(func())
}

func NewWebhookHandler(items item.Store, knowledge retrieval.Store, sessions SessionInvalidator, security SecurityConfig, l log.Logger) *WebhookHandler {
	return &WebhookHandler{
		items:     items,
		knowledge: knowledge,
		sessions:  sessions,
		security:  NewSecurityValidator(security),
		l:         l,
		backoff:   initialBackoff,
		spawn:     func(f func()) { go f() },
	}
}
