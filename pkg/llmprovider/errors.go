package llmprovider

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig indicates no provider has usable credentials. Returned
	// before any network call is attempted.
	ErrConfig = errors.New("llm provider not configured")

	// ErrNetwork covers transport failures, non-2xx statuses and empty bodies.
	// It is the only error class that is retried.
	ErrNetwork = errors.New("llm network error")

	// ErrMalformedResponse indicates the response carried no usable text or
	// no parseable JSON object.
	ErrMalformedResponse = errors.New("malformed llm response")

	// ErrTruncated indicates generation stopped at the output token limit.
	ErrTruncated = errors.New("llm response truncated")

	// ErrRefused indicates the model explicitly refused the request.
	ErrRefused = errors.New("llm refused request")

	// ErrFiltered indicates the response was blocked by a content filter.
	ErrFiltered = errors.New("llm response filtered")

	// ErrAllProvidersFailed indicates all providers failed to generate content
	ErrAllProvidersFailed = errors.New("all providers failed")
)

// ProviderError wraps provider-specific errors. StatusCode is the raw HTTP
// status when one was received, zero otherwise.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider %s (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ParseError is returned by ExtractJSON and GenerateJSON when no JSON
// object could be recovered. It unwraps to ErrMalformedResponse.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse llm output: %v (raw: %s)", e.Err, e.Raw)
	}
	return fmt.Sprintf("parse llm output: no JSON object found (raw: %s)", e.Raw)
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedResponse, e.Err}
	}
	return []error{ErrMalformedResponse}
}

// IsRetryable reports whether err may succeed on another attempt.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrNetwork)
}
