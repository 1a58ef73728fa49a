package llmprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"project-assistant/pkg/log"
)

// Manager orchestrates provider selection, fallback, and retry logic
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

// Config defines configuration for the Provider Manager
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration
	MaxRetryDelay   time.Duration
	MaxTotalTimeout time.Duration // Global timeout for entire fallback chain
}

// NewManager creates a new Provider Manager with the given providers, config, and logger.
// An empty provider list is valid; every call then fails with ErrConfig.
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	if config == nil {
		config = &Config{RetryAttempts: 1}
	}
	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

// Configured reports whether at least one provider is available.
func (m *Manager) Configured() bool {
	return len(m.providers) > 0
}

// GenerateContent iterates through providers in priority order. Only
// network errors are retried or fall through to the next provider; every
// other error class is terminal for the call.
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrConfig
	}

	var cancel context.CancelFunc
	if m.config.MaxTotalTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error

	for _, provider := range m.providers {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: global timeout exceeded after trying %d provider(s): %w",
				ErrNetwork, len(m.providers), ctx.Err())
		default:
		}

		resp, err := m.generateWithRetry(ctx, provider, req)
		if err == nil {
			m.logSuccess(ctx, provider, resp)
			return resp, nil
		}

		m.logFailure(ctx, provider, err)
		lastErr = err

		if !IsRetryable(err) {
			return nil, err
		}
		if !m.config.FallbackEnabled {
			break
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

// GenerateText is a shorthand for a single system + user turn.
func (m *Manager) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (*Response, error) {
	return m.GenerateContent(ctx, &Request{
		SystemPrompt: systemPrompt,
		Messages:     []Message{UserMessage(userPrompt)},
	})
}

// GenerateJSON runs req in JSON mode, recovers the JSON object from the
// normalized text and decodes it into v. req itself is left unchanged.
func (m *Manager) GenerateJSON(ctx context.Context, req *Request, v any) (*Response, error) {
	jsonReq := *req
	jsonReq.JSONMode = true
	resp, err := m.GenerateContent(ctx, &jsonReq)
	if err != nil {
		return nil, err
	}

	raw, err := ExtractJSON(resp.Normalized.Text)
	if err != nil {
		return resp, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return resp, &ParseError{Raw: truncateRaw(raw), Err: err}
	}
	return resp, nil
}

// generateWithRetry retries network errors with bounded exponential backoff.
func (m *Manager) generateWithRetry(ctx context.Context, provider Provider, req *Request) (*Response, error) {
	attempts := m.config.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(m.backoff(attempt)):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %w", ErrNetwork, ctx.Err())
			}
		}

		resp, err := provider.GenerateContent(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return nil, err
		}
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil {
			break
		}
		m.logger.Debug(ctx, "llmprovider.generateWithRetry: retrying",
			"provider", provider.Name(),
			"attempt", attempt+1,
			"error", err.Error(),
		)
	}

	return nil, lastErr
}

// backoff returns RetryDelay * 2^(attempt-1), capped at MaxRetryDelay.
func (m *Manager) backoff(attempt int) time.Duration {
	delay := m.config.RetryDelay << (attempt - 1)
	if delay <= 0 {
		return m.config.MaxRetryDelay
	}
	if m.config.MaxRetryDelay > 0 && delay > m.config.MaxRetryDelay {
		return m.config.MaxRetryDelay
	}
	return delay
}

// logSuccess logs successful LLM generation with metrics
func (m *Manager) logSuccess(ctx context.Context, provider Provider, resp *Response) {
	var in, out int
	if resp.Usage != nil {
		in, out = resp.Usage.InputTokens, resp.Usage.OutputTokens
	}
	m.logger.Info(ctx, "LLM generation successful",
		"provider", provider.Name(),
		"model", provider.Model(),
		"shape", string(resp.Normalized.RawShape),
		"finish_reason", string(resp.Normalized.FinishReason),
		"input_tokens", in,
		"output_tokens", out,
	)
}

// logFailure logs failed LLM generation attempts. The raw status, when
// present, travels inside ProviderError.
func (m *Manager) logFailure(ctx context.Context, provider Provider, err error) {
	status := 0
	var pe *ProviderError
	if errors.As(err, &pe) {
		status = pe.StatusCode
	}
	m.logger.Warn(ctx, "LLM generation failed",
		"provider", provider.Name(),
		"model", provider.Model(),
		"status", status,
		"error", err.Error(),
	)
}
