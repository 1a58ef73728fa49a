package item

import (
	"time"

	"project-assistant/internal/model"
)

// CreateOptions describes one item to persist.
type CreateOptions struct {
	ProjectID          string
	Title              string
	Description        string
	Type               model.ItemType
	Priority           model.Priority
	DueDate            *time.Time
	ParentID           *string
	TargetID           *string
	RequirementSnippet string
	SourceArtifactID   string
}

// UpdateOptions holds the fields to change. Nil fields are left as is.
type UpdateOptions struct {
	Title       *string
	Description *string
	ParentID    *string
	CalendarURL *string
}

// CalendarConfig configures the optional calendar sink.
type CalendarConfig struct {
	CalendarID string
	Timezone   string
	Timeout    time.Duration
}
