package retrieval

import "time"

// Snippet is one piece of project knowledge returned by the store.
type Snippet struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Text   string  `json:"text"`
	Score  float64 `json:"score"`
}

// QueryOptions scopes a knowledge lookup.
type QueryOptions struct {
	Text      string
	ProjectID string
	Threshold float64
	Limit     int
}

// Document is a parsed upload to make searchable.
type Document struct {
	ID        string
	ProjectID string
	Source    string
	Text      string
}

// Config controls the context builder.
type Config struct {
	Enabled  bool
	TopK     int
	MaxChars int
	Timeout  time.Duration
}
