package gemini

import "context"

// IGemini is the generateContent surface the llmprovider Gemini adapter
// needs. Responses are returned raw so finish reasons and safety blocks
// stay visible. Safe for concurrent use.
type IGemini interface {
	GenerateContent(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
	Model() string
}

// New validates cfg, filling defaults, and returns a client.
func New(cfg Config) (IGemini, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newGeminiImpl(cfg), nil
}
