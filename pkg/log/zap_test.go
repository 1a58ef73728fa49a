package log

import (
	"context"
	"testing"
)

func TestIsKeyValues(t *testing.T) {
	tests := []struct {
		name string
		arg  []any
		want bool
	}{
		{"plain message", []any{"hello"}, false},
		{"message and error", []any{"failed: ", "boom"}, false},
		{"message with pairs", []any{"done", "provider", "qwen", "tokens", 12}, true},
		{"non string key", []any{"done", 1, "x"}, false},
		{"non string message", []any{42, "k", "v"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, got := isKeyValues(tt.arg)
			if got != tt.want {
				t.Errorf("isKeyValues(%v) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

func TestContextFields(t *testing.T) {
	ctx := WithConversationID(context.Background(), "conv-1")
	ctx = WithRequestID(ctx, "req-1")

	fields := contextFields(ctx)
	if len(fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(fields))
	}
	if ConversationID(ctx) != "conv-1" {
		t.Errorf("expected conv-1, got %q", ConversationID(ctx))
	}
	if ConversationID(context.Background()) != "" {
		t.Errorf("expected empty conversation id")
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNop()
	ctx := WithConversationID(context.Background(), "c")
	l.Info(ctx, "message", "k", "v")
	l.Warnf(ctx, "value %d", 1)
	l.Error(ctx, "err: ", "x")
}

func TestParseLevel(t *testing.T) {
	if parseLevel("WARN").String() != "warn" {
		t.Errorf("expected warn level")
	}
	if parseLevel("bogus").String() != "info" {
		t.Errorf("expected info fallback")
	}
}
