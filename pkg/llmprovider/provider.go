package llmprovider

import "context"

// Provider defines the interface for LLM providers. Implementations return
// a Response whose Normalized field already went through normalize().
type Provider interface {
	// GenerateContent sends a generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "qwen", "gemini")
	Name() string

	// Model returns the model being used
	Model() string
}

// Request represents a normalized LLM generation request
type Request struct {
	SystemPrompt string
	Messages     []Message
	Temperature  float64
	MaxTokens    int
	// JSONMode asks backends that support it for a bare JSON object.
	JSONMode bool
}

// Message represents a conversation message
type Message struct {
	Role string // "user", "assistant"
	Text string
}

// FinishReason is the normalized reason generation stopped.
type FinishReason string

const (
	FinishComplete  FinishReason = "complete"
	FinishTruncated FinishReason = "truncated"
	FinishRefused   FinishReason = "refused"
	FinishFiltered  FinishReason = "filtered"
	FinishUnknown   FinishReason = "unknown"
)

// Shape names the backend response family, for diagnostics only.
type Shape string

const (
	ShapeChat         Shape = "chat"
	ShapeReasoning    Shape = "reasoning"
	ShapeContentArray Shape = "content_array"
	ShapeCandidates   Shape = "candidates"
)

// NormalizedResponse is the single shape every backend is reduced to.
type NormalizedResponse struct {
	Text         string
	FinishReason FinishReason
	RawShape     Shape
}

// Response represents a normalized LLM generation response
type Response struct {
	Normalized   NormalizedResponse
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserMessage is a shorthand for a single user turn.
func UserMessage(text string) Message {
	return Message{Role: "user", Text: text}
}
