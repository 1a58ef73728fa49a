package usecase

import (
	"context"
	"time"

	"project-assistant/internal/document"
	"project-assistant/internal/item"
	"project-assistant/pkg/datemath"
	"project-assistant/pkg/llmprovider"
	"project-assistant/pkg/log"
)

// LLM is the subset of llmprovider.Manager the router needs.
type LLM interface {
	GenerateJSON(ctx context.Context, req *llmprovider.Request, v any) (*llmprovider.Response, error)
}

type implUseCase struct {
	l           log.Logger
	llm         LLM
	store       item.Store
	dateMath    *datemath.Parser
	concurrency int
	now         func() time.Time
	newID       func() string
}

var _ document.UseCase = (*implUseCase)(nil)

// New creates a document UseCase. concurrency <= 0 uses DefaultConcurrency.
func New(l log.Logger, llm LLM, store item.Store, dateMath *datemath.Parser, concurrency int) document.UseCase {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &implUseCase{
		l:           l,
		llm:         llm,
		store:       store,
		dateMath:    dateMath,
		concurrency: concurrency,
		now:         time.Now,
		newID:       newArtifactID,
	}
}
