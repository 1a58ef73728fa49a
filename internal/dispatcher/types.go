package dispatcher

import "project-assistant/internal/classifier"

// Mode is how much autonomy a classification is granted.
type Mode string

const (
	ModeAutoExecute Mode = "auto_execute"
	ModeConfirm     Mode = "confirm"
	ModeClarify     Mode = "clarify"
)

// Thresholds are the lower bounds of Confirm and AutoExecute.
// confidence >= Auto is AutoExecute, Confirm <= confidence < Auto is
// Confirm, anything lower is Clarify.
type Thresholds struct {
	Confirm float64
	Auto    float64
}

// DefaultThresholds are 0.60 / 0.85.
var DefaultThresholds = Thresholds{Confirm: 0.60, Auto: 0.85}

// Config holds the default thresholds and optional per-intent overrides.
type Config struct {
	Default   Thresholds
	PerIntent map[classifier.Intent]Thresholds
}

// Option is one choice offered to the user.
type Option struct {
	Label  string            `json:"label"`
	Intent classifier.Intent `json:"intent"`
}

// Decision is the outcome of Dispatch. It carries no side effects; acting
// on ReadyForAction is the caller's job.
type Decision struct {
	Mode                Mode
	Intent              classifier.Intent
	Confidence          float64
	Message             string
	ReadyForAction      bool
	ClarificationNeeded bool
	Greeting            bool
	Options             []Option
	ExtractedInfo       classifier.ExtractedInfo
}
