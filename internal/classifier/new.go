package classifier

import (
	"context"

	"project-assistant/internal/prompt"
	"project-assistant/pkg/llmprovider"
	"project-assistant/pkg/log"
)

// Classifier turns one utterance into a Result.
type Classifier interface {
	Classify(ctx context.Context, input string, pc prompt.Context) (Result, error)
}

// LLM is the subset of llmprovider.Manager the classifier needs.
type LLM interface {
	GenerateJSON(ctx context.Context, req *llmprovider.Request, v any) (*llmprovider.Response, error)
}

// IntentClassifier classifies user intent using an LLM
type IntentClassifier struct {
	llm LLM
	l   log.Logger
}

var _ Classifier = (*IntentClassifier)(nil)

// New creates a new IntentClassifier
func New(llm LLM, l log.Logger) *IntentClassifier {
	return &IntentClassifier{
		llm: llm,
		l:   l,
	}
}
