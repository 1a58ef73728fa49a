package llmprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"project-assistant/pkg/anthropic"
	"project-assistant/pkg/gemini"
	"project-assistant/pkg/openai"
)

// statusCoder is implemented by every vendor APIError.
type statusCoder interface {
	HTTPStatus() int
}

// classifyCallError maps a vendor client error onto the error taxonomy.
func classifyCallError(provider string, err error) error {
	var sc statusCoder
	if errors.As(err, &sc) {
		return &ProviderError{Provider: provider, StatusCode: sc.HTTPStatus(), Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &ProviderError{Provider: provider, Err: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
	}

	if errors.Is(err, context.Canceled) {
		return &ProviderError{Provider: provider, Err: err}
	}

	return &ProviderError{Provider: provider, Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
}

func finishResponse(provider, model string, c rawCandidate, usage *Usage) (*Response, error) {
	norm, err := normalize(c)
	if err != nil {
		return nil, &ProviderError{Provider: provider, Err: err}
	}
	if usage == nil {
		usage = &Usage{}
	}
	return &Response{
		Normalized:   norm,
		ProviderName: provider,
		ModelName:    model,
		Usage:        usage,
	}, nil
}

// ChatAdapter serves OpenAI-compatible chat completion backends
// (OpenAI, Qwen, DeepSeek): the choices-array shape.
type ChatAdapter struct {
	name   string
	client openai.IOpenAI
}

// NewChatAdapter creates a new chat-completions adapter
func NewChatAdapter(name string, client openai.IOpenAI) *ChatAdapter {
	return &ChatAdapter{name: name, client: client}
}

// GenerateContent implements Provider interface
func (a *ChatAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	chatReq := &openai.ChatRequest{
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages:    make([]openai.Message, 0, len(req.Messages)+1),
	}
	if req.SystemPrompt != "" {
		chatReq.Messages = append(chatReq.Messages, openai.Message{Role: "system", Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		chatReq.Messages = append(chatReq.Messages, openai.Message{Role: m.Role, Content: m.Text})
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ResponseFormat{Type: "json_object"}
	}

	resp, err := a.client.ChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, classifyCallError(a.name, err)
	}

	c := rawCandidate{Shape: ShapeChat}
	if len(resp.Choices) > 0 {
		choice := resp.Choices[0]
		c.Primary = choice.Message.Content
		c.Alternates = []string{choice.Text, choice.Message.ReasoningContent}
		c.Refusal = choice.Message.Refusal
		c.FinishRaw = choice.FinishReason
	}

	return finishResponse(a.name, a.client.Model(), c, &Usage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	})
}

// Name returns provider name
func (a *ChatAdapter) Name() string { return a.name }

// Model returns model name
func (a *ChatAdapter) Model() string { return a.client.Model() }

// ResponsesAdapter serves the single-output reasoning shape of the
// OpenAI Responses API.
type ResponsesAdapter struct {
	name   string
	client openai.IOpenAI
}

// NewResponsesAdapter creates a new Responses API adapter
func NewResponsesAdapter(name string, client openai.IOpenAI) *ResponsesAdapter {
	return &ResponsesAdapter{name: name, client: client}
}

// GenerateContent implements Provider interface
func (a *ResponsesAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.CreateResponse(ctx, &openai.ResponsesRequest{
		Instructions:    req.SystemPrompt,
		Input:           joinTurns(req.Messages),
		Temperature:     req.Temperature,
		MaxOutputTokens: req.MaxTokens,
	})
	if err != nil {
		return nil, classifyCallError(a.name, err)
	}

	var texts, summaries []string
	var refusal string
	for _, item := range resp.Output {
		switch item.Type {
		case "message":
			for _, part := range item.Content {
				switch part.Type {
				case "output_text":
					texts = append(texts, part.Text)
				case "refusal":
					refusal = part.Refusal
				}
			}
		case "reasoning":
			for _, s := range item.Summary {
				summaries = append(summaries, s.Text)
			}
		}
	}

	finish := resp.Status
	if resp.Status == "incomplete" && resp.IncompleteDetails != nil {
		finish = resp.IncompleteDetails.Reason
	}

	c := rawCandidate{
		Shape:      ShapeReasoning,
		Primary:    resp.OutputText,
		Alternates: []string{strings.Join(texts, ""), strings.Join(summaries, "\n")},
		Refusal:    refusal,
		FinishRaw:  finish,
	}

	return finishResponse(a.name, a.client.Model(), c, &Usage{
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	})
}

// Name returns provider name
func (a *ResponsesAdapter) Name() string { return a.name }

// Model returns model name
func (a *ResponsesAdapter) Model() string { return a.client.Model() }

// AnthropicAdapter serves the content-array shape of the Messages API.
type AnthropicAdapter struct {
	client anthropic.IAnthropic
}

// NewAnthropicAdapter creates a new Anthropic adapter
func NewAnthropicAdapter(client anthropic.IAnthropic) *AnthropicAdapter {
	return &AnthropicAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *AnthropicAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	msgReq := &anthropic.MessageRequest{
		System:      req.SystemPrompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Messages:    make([]anthropic.Message, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		msgReq.Messages = append(msgReq.Messages, anthropic.Message{Role: m.Role, Content: m.Text})
	}

	resp, err := a.client.CreateMessage(ctx, msgReq)
	if err != nil {
		return nil, classifyCallError(a.Name(), err)
	}

	c := rawCandidate{Shape: ShapeContentArray, FinishRaw: resp.StopReason}
	var rest, thinking []string
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			if c.Primary == "" {
				c.Primary = block.Text
			} else {
				rest = append(rest, block.Text)
			}
		case "thinking":
			thinking = append(thinking, block.Thinking)
		}
	}
	c.Alternates = []string{strings.Join(rest, "\n"), strings.Join(thinking, "\n")}

	return finishResponse(a.Name(), a.client.Model(), c, &Usage{
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
		TotalTokens:  resp.Usage.InputTokens + resp.Usage.OutputTokens,
	})
}

// Name returns provider name
func (a *AnthropicAdapter) Name() string { return "anthropic" }

// Model returns model name
func (a *AnthropicAdapter) Model() string { return a.client.Model() }

// GeminiAdapter serves the candidates shape of the Gemini API.
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	genReq := &gemini.GenerateRequest{
		Contents: make([]gemini.Content, 0, len(req.Messages)),
	}
	if req.SystemPrompt != "" {
		genReq.SystemInstruction = &gemini.Content{Parts: []gemini.Part{{Text: req.SystemPrompt}}}
	}
	for _, m := range req.Messages {
		role := m.Role
		if role == "assistant" {
			role = "model"
		}
		genReq.Contents = append(genReq.Contents, gemini.Content{Role: role, Parts: []gemini.Part{{Text: m.Text}}})
	}
	if req.Temperature > 0 || req.MaxTokens > 0 || req.JSONMode {
		genReq.GenerationConfig = &gemini.GenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		}
		if req.JSONMode {
			genReq.GenerationConfig.ResponseMimeType = "application/json"
		}
	}

	resp, err := a.client.GenerateContent(ctx, genReq)
	if err != nil {
		return nil, classifyCallError(a.Name(), err)
	}

	c := rawCandidate{Shape: ShapeCandidates}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		c.FinishRaw = "content_filter"
	} else if len(resp.Candidates) > 0 {
		cand := resp.Candidates[0]
		c.FinishRaw = cand.FinishReason
		var rest, thoughts []string
		for _, p := range cand.Content.Parts {
			switch {
			case p.Thought:
				thoughts = append(thoughts, p.Text)
			case c.Primary == "":
				c.Primary = p.Text
			default:
				rest = append(rest, p.Text)
			}
		}
		c.Alternates = []string{strings.Join(rest, ""), strings.Join(thoughts, "\n")}
	}

	return finishResponse(a.Name(), a.client.Model(), c, &Usage{
		InputTokens:  resp.UsageMetadata.PromptTokenCount,
		OutputTokens: resp.UsageMetadata.CandidatesTokenCount,
		TotalTokens:  resp.UsageMetadata.TotalTokenCount,
	})
}

// Name returns provider name
func (a *GeminiAdapter) Name() string { return "gemini" }

// Model returns model name
func (a *GeminiAdapter) Model() string { return a.client.Model() }

// joinTurns flattens a message list into a single input string for
// backends that take one input field.
func joinTurns(msgs []Message) string {
	if len(msgs) == 1 {
		return msgs[0].Text
	}
	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Text)
	}
	return b.String()
}
