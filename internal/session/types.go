package session

import (
	"time"

	"project-assistant/internal/model"
)

// PendingSession holds an uploaded document that is waiting for an
// instruction. There is at most one per conversation.
type PendingSession struct {
	SessionID      string
	ConversationID string
	ProjectID      string
	ParsedText     string
	DetectedType   model.DocumentType
	Summary        string
	File           model.FileMetadata
	CreatedAt      time.Time
	ExpiresAt      time.Time
}

// Config configures the session store.
type Config struct {
	TTL              time.Duration
	MaxConversations int
}

// CreateInput is what a new pending session is built from.
type CreateInput struct {
	ConversationID string
	ProjectID      string
	ParsedText     string
	DetectedType   model.DocumentType
	Summary        string
	File           model.FileMetadata
}
