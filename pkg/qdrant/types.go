package qdrant

// Distance metrics accepted by Qdrant.
const (
	DistanceCosine = "Cosine"
	DistanceDot    = "Dot"
)

// CreateCollectionRequest defines the schema for creating a collection.
type CreateCollectionRequest struct {
	Name    string       `json:"-"`
	Vectors VectorConfig `json:"vectors"`
}

// VectorConfig defines vector dimension and distance metric.
type VectorConfig struct {
	Size     int    `json:"size"`
	Distance string `json:"distance"`
}

// Point is a vector with its payload. Qdrant only accepts uuid or
// unsigned integer ids.
type Point struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// UpsertPointsRequest is the request to insert or update points.
type UpsertPointsRequest struct {
	Points []Point `json:"points"`
}

// Filter is the subset of the Qdrant filter grammar the app uses.
type Filter struct {
	Must []Condition `json:"must,omitempty"`
}

// Condition matches a payload key against a keyword value.
type Condition struct {
	Key   string `json:"key"`
	Match Match  `json:"match"`
}

// Match is an exact keyword match.
type Match struct {
	Value string `json:"value"`
}

// MatchKeyword builds a filter requiring payload[key] == value.
func MatchKeyword(key, value string) *Filter {
	return &Filter{Must: []Condition{{Key: key, Match: Match{Value: value}}}}
}

// SearchRequest is the request for vector search.
type SearchRequest struct {
	Vector         []float32 `json:"vector"`
	Limit          int       `json:"limit"`
	WithPayload    bool      `json:"with_payload"`
	ScoreThreshold *float64  `json:"score_threshold,omitempty"`
	Filter         *Filter   `json:"filter,omitempty"`
}

// SearchResponse contains search results.
type SearchResponse struct {
	Result []ScoredPoint `json:"result"`
}

// ScoredPoint is a search result with its similarity score. ID is a
// string for uuid points and a number for integer points.
type ScoredPoint struct {
	ID      any            `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload"`
}

// APIError is a non-2xx answer from Qdrant.
type APIError struct {
	StatusCode int
	Body       string
}
