package llmprovider

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"project-assistant/config"
	"project-assistant/pkg/anthropic"
	"project-assistant/pkg/gemini"
	"project-assistant/pkg/log"
	"project-assistant/pkg/openai"
)

// InitializeProviders creates Provider instances from config.LLMConfig.
// Returns providers sorted by priority (ascending) with disabled providers
// and providers without credentials filtered out. When nothing usable is
// left the error wraps ErrConfig.
func InitializeProviders(ctx context.Context, cfg *config.LLMConfig, logger log.Logger) ([]Provider, error) {
	if cfg == nil || len(cfg.Providers) == 0 {
		return nil, fmt.Errorf("%w: no providers in llm.providers", ErrConfig)
	}

	var enabledProviders []config.ProviderConfig
	for _, p := range cfg.Providers {
		if p.Enabled {
			enabledProviders = append(enabledProviders, p)
		}
	}

	sort.Slice(enabledProviders, func(i, j int) bool {
		return enabledProviders[i].Priority < enabledProviders[j].Priority
	})

	var providers []Provider
	var initErrors []string

	for _, p := range enabledProviders {
		provider, err := createProvider(p)
		if err != nil {
			errMsg := fmt.Sprintf("failed to initialize provider %s (priority %d): %v", p.Name, p.Priority, err)
			initErrors = append(initErrors, errMsg)
			logger.Warn(ctx, "llmprovider.InitializeProviders: "+errMsg)
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: no provider has usable credentials: %s", ErrConfig, strings.Join(initErrors, "; "))
	}

	if len(initErrors) > 0 {
		logger.Warnf(ctx, "llmprovider.InitializeProviders: %d provider(s) failed to initialize, continuing with %d",
			len(initErrors), len(providers))
	}

	return providers, nil
}

// ManagerConfig converts the string durations of config.LLMConfig.
func ManagerConfig(cfg config.LLMConfig) *Config {
	return &Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      parseDuration(cfg.RetryDelay, time.Second),
		MaxRetryDelay:   parseDuration(cfg.MaxRetryDelay, 8*time.Second),
		MaxTotalTimeout: parseDuration(cfg.MaxTotalTimeout, 60*time.Second),
	}
}

// createProvider creates a concrete provider instance based on the provider config
func createProvider(cfg config.ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("provider %s: API key is required", cfg.Name)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("provider %s: model is required", cfg.Name)
	}

	httpClient := &http.Client{Timeout: parseDuration(cfg.Timeout, 30*time.Second)}

	var provider Provider
	switch cfg.Name {
	case "openai", "qwen", "alibaba", "deepseek":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = defaultChatBaseURL(cfg.Name)
		}
		client, err := openai.New(openai.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			BaseURL:    baseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s client: %w", cfg.Name, err)
		}
		provider = NewChatAdapter(cfg.Name, client)

	case "openai-responses":
		client, err := openai.New(openai.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		provider = NewResponsesAdapter(cfg.Name, client)

	case "anthropic", "claude":
		client, err := anthropic.New(anthropic.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create anthropic client: %w", err)
		}
		provider = NewAnthropicAdapter(client)

	case "gemini":
		client, err := gemini.New(gemini.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			APIURL:     cfg.BaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		provider = NewGeminiAdapter(client)

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Name)
	}

	if cfg.MaxTokens > 0 {
		provider = &budgetedProvider{Provider: provider, maxTokens: cfg.MaxTokens}
	}
	return provider, nil
}

func defaultChatBaseURL(name string) string {
	switch name {
	case "qwen", "alibaba":
		return openai.QwenBaseURL
	case "deepseek":
		return openai.DeepSeekBaseURL
	default:
		return openai.DefaultBaseURL
	}
}

// budgetedProvider applies a per-provider output budget to requests that
// do not set one.
type budgetedProvider struct {
	Provider
	maxTokens int
}

func (b *budgetedProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if req.MaxTokens == 0 {
		r := *req
		r.MaxTokens = b.maxTokens
		req = &r
	}
	return b.Provider.GenerateContent(ctx, req)
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
