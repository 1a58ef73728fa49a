package assistant

import (
	"context"

	"project-assistant/internal/document"
	"project-assistant/internal/orchestrator"
)

// UseCase is what the presentation adapters drive.
type UseCase interface {
	Handle(ctx context.Context, in orchestrator.Input) (orchestrator.Output, error)
	Commit(ctx context.Context, in orchestrator.CommitInput) (document.MaterializeResult, error)
	CancelPending(ctx context.Context, conversationID string) bool
}

var _ UseCase = (*orchestrator.Orchestrator)(nil)
