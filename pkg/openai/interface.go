package openai

import "context"

// IOpenAI defines the interface for OpenAI-compatible API clients.
// Implementations are safe for concurrent use.
type IOpenAI interface {
	// ChatCompletion calls POST /chat/completions
	ChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// CreateResponse calls POST /responses (single-output reasoning shape)
	CreateResponse(ctx context.Context, req *ResponsesRequest) (*ResponsesResponse, error)

	// Model returns the model being used
	Model() string
}

// New creates a new client with the given configuration
func New(cfg Config) (IOpenAI, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newOpenAIImpl(cfg), nil
}
