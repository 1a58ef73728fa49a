package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"project-assistant/pkg/response"
)

func TestDateMarshalJSON(t *testing.T) {
	taipei := time.FixedZone("UTC+8", 8*3600)

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"utc", time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC), `"2024-05-01"`},
		{"keeps its own zone", time.Date(2024, 5, 2, 0, 30, 0, 0, taipei), `"2024-05-02"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(response.Date(tt.in))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(b) != tt.want {
				t.Errorf("got %s, want %s", b, tt.want)
			}
		})
	}
}

func TestNewDate(t *testing.T) {
	if response.NewDate(nil) != nil {
		t.Error("expected nil for nil time")
	}
	if response.NewDate(&time.Time{}) != nil {
		t.Error("expected nil for zero time")
	}

	due := time.Date(2026, 10, 23, 0, 0, 0, 0, time.UTC)
	b, err := json.Marshal(struct {
		Due *response.Date `json:"due,omitempty"`
	}{Due: response.NewDate(&due)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `{"due":"2026-10-23"}` {
		t.Errorf("got %s", b)
	}
}
