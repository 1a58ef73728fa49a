package classifier

// Intent represents the user's intention
type Intent string

const (
	IntentChat           Intent = "chat"
	IntentCreateTask     Intent = "create_task"
	IntentRecordDecision Intent = "record_decision"
	IntentMarkPending    Intent = "mark_pending"
	IntentChangeRequest  Intent = "change_request"
	IntentAmbiguous      Intent = "ambiguous"
)

// Valid reports whether i is a known intent.
func (i Intent) Valid() bool {
	switch i {
	case IntentChat, IntentCreateTask, IntentRecordDecision, IntentMarkPending, IntentChangeRequest, IntentAmbiguous:
		return true
	}
	return false
}

// ExtractedInfo carries the intent-specific fields. Only the fields that
// belong to Result.Intent are expected to be set.
type ExtractedInfo struct {
	// create_task, shared
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Assignee    string `json:"assignee,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Priority    string `json:"priority,omitempty"`

	// record_decision
	Decision  string `json:"decision,omitempty"`
	Rationale string `json:"rationale,omitempty"`

	// mark_pending
	BlockedBy string `json:"blocked_by,omitempty"`

	// change_request
	Change string `json:"change,omitempty"`
	Impact string `json:"impact,omitempty"`

	// chat
	Topic string `json:"topic,omitempty"`
}

// Result is the classification of one utterance. Confidence is in [0,1].
type Result struct {
	Intent        Intent        `json:"intent"`
	Confidence    float64       `json:"confidence"`
	ExtractedInfo ExtractedInfo `json:"extracted_info"`
	Reasoning     string        `json:"reasoning"`
}

// ParseErrorResult is returned whenever the model output cannot be used.
func ParseErrorResult() Result {
	return Result{Intent: IntentAmbiguous, Confidence: 0, Reasoning: ReasonParseError}
}

// rawResult mirrors the model's JSON before validation.
type rawResult struct {
	Intent        string        `json:"intent"`
	Confidence    *float64      `json:"confidence"`
	ExtractedInfo ExtractedInfo `json:"extracted_info"`
	Reasoning     string        `json:"reasoning"`
}
