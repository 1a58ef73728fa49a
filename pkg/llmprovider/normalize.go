package llmprovider

import (
	"strings"
)

// rawCandidate is what each adapter pulls out of its backend-specific body
// before the shared rules run.
type rawCandidate struct {
	Primary    string
	Alternates []string
	Refusal    string
	FinishRaw  string
	Shape      Shape
}

var (
	truncatedReasons = map[string]bool{
		"length":            true,
		"max_tokens":        true,
		"max_output_tokens": true,
		"model_length":      true,
	}
	filteredReasons = map[string]bool{
		"content_filter":     true,
		"safety":             true,
		"recitation":         true,
		"blocklist":          true,
		"prohibited_content": true,
		"spii":               true,
	}
	refusedReasons = map[string]bool{
		"refusal": true,
	}
	completeReasons = map[string]bool{
		"stop":          true,
		"end_turn":      true,
		"stop_sequence": true,
		"completed":     true,
		"eos":           true,
		"tool_calls":    true,
		"tool_use":      true,
	}
)

// classifyFinish maps a raw finish/stop reason to a FinishReason.
func classifyFinish(raw string) FinishReason {
	r := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case r == "":
		return FinishUnknown
	case truncatedReasons[r]:
		return FinishTruncated
	case filteredReasons[r]:
		return FinishFiltered
	case refusedReasons[r]:
		return FinishRefused
	case completeReasons[r]:
		return FinishComplete
	default:
		return FinishUnknown
	}
}

// normalize applies the recovery rules in order: primary field, alternate
// fields, refusal markers, finish reason. It never retries.
func normalize(c rawCandidate) (NormalizedResponse, error) {
	out := NormalizedResponse{RawShape: c.Shape}

	out.Text = strings.TrimSpace(c.Primary)
	if out.Text == "" {
		for _, alt := range c.Alternates {
			if t := strings.TrimSpace(alt); t != "" {
				out.Text = t
				break
			}
		}
	}

	finish := classifyFinish(c.FinishRaw)

	if strings.TrimSpace(c.Refusal) != "" || finish == FinishRefused {
		out.FinishReason = FinishRefused
		return out, ErrRefused
	}

	switch finish {
	case FinishTruncated:
		out.FinishReason = FinishTruncated
		return out, ErrTruncated
	case FinishFiltered:
		out.FinishReason = FinishFiltered
		return out, ErrFiltered
	}

	out.FinishReason = finish
	if out.Text == "" {
		return out, ErrMalformedResponse
	}
	return out, nil
}
