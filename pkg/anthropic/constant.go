package anthropic

import "time"

const (
	// DefaultModel is the default Claude model
	DefaultModel = "claude-3-5-haiku-latest"

	// DefaultBaseURL is the default Anthropic API endpoint
	DefaultBaseURL = "https://api.anthropic.com/v1"

	// APIVersion is sent as the anthropic-version header
	APIVersion = "2023-06-01"

	// DefaultMaxTokens is required by the Messages API
	DefaultMaxTokens = 4096

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 60 * time.Second

	maxResponseBytes = 4 << 20
)
