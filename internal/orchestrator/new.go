package orchestrator

import (
	"context"
	"time"

	"project-assistant/internal/classifier"
	"project-assistant/internal/dispatcher"
	"project-assistant/internal/document"
	"project-assistant/internal/item"
	"project-assistant/internal/parser"
	"project-assistant/internal/retrieval"
	"project-assistant/internal/session"
	"project-assistant/pkg/datemath"
	"project-assistant/pkg/llmprovider"
	"project-assistant/pkg/log"
)

// ChatLLM generates free-text chat replies.
type ChatLLM interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Deps are the collaborators of an Orchestrator. Retrieval may be nil.
type Deps struct {
	LLM        ChatLLM
	Classifier classifier.Classifier
	Dispatcher *dispatcher.Dispatcher
	Sessions   *session.Manager
	Documents  document.UseCase
	Retrieval  *retrieval.Builder
	Parser     parser.Parser
	Items      item.Store
	DateMath   *datemath.Parser
}

// Orchestrator turns one input event into a reply or a batch of items.
type Orchestrator struct {
	l          log.Logger
	llm        ChatLLM
	classifier classifier.Classifier
	dispatcher *dispatcher.Dispatcher
	sessions   *session.Manager
	documents  document.UseCase
	retrieval  *retrieval.Builder
	parser     parser.Parser
	items      item.Store
	dateMath   *datemath.Parser
	cfg        Config
	now        func() time.Time
}

// New creates an Orchestrator.
func New(l log.Logger, deps Deps, cfg Config) *Orchestrator {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.RetrievalThreshold <= 0 {
		cfg.RetrievalThreshold = DefaultRetrievalThreshold
	}
	if deps.Parser == nil {
		deps.Parser = parser.Auto{}
	}
	return &Orchestrator{
		l:          l,
		llm:        deps.LLM,
		classifier: deps.Classifier,
		dispatcher: deps.Dispatcher,
		sessions:   deps.Sessions,
		documents:  deps.Documents,
		retrieval:  deps.Retrieval,
		parser:     deps.Parser,
		items:      deps.Items,
		dateMath:   deps.DateMath,
		cfg:        cfg,
		now:        time.Now,
	}
}
