package anthropic_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"project-assistant/pkg/anthropic"
)

func TestCreateMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" || r.Header.Get("anthropic-version") != anthropic.APIVersion {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var req anthropic.MessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.MaxTokens != anthropic.DefaultMaxTokens {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Messages[0].Content == "overload" {
			w.WriteHeader(529)
			w.Write([]byte(`{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`))
			return
		}
		w.Write([]byte(`{
			"id": "msg_1",
			"model": "claude-test",
			"role": "assistant",
			"content": [{"type": "thinking", "thinking": "hmm"}, {"type": "text", "text": "hello"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 4, "output_tokens": 1}
		}`))
	}))
	defer ts.Close()

	client, err := anthropic.New(anthropic.Config{APIKey: "test-key", BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("Success Flow", func(t *testing.T) {
		resp, err := client.CreateMessage(context.Background(), &anthropic.MessageRequest{
			System:   "be brief",
			Messages: []anthropic.Message{{Role: "user", Content: "hi"}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Content) != 2 || resp.Content[1].Text != "hello" {
			t.Errorf("unexpected content: %+v", resp.Content)
		}
		if resp.StopReason != "end_turn" {
			t.Errorf("expected end_turn, got %s", resp.StopReason)
		}
	})

	t.Run("Overloaded", func(t *testing.T) {
		_, err := client.CreateMessage(context.Background(), &anthropic.MessageRequest{
			Messages: []anthropic.Message{{Role: "user", Content: "overload"}},
		})
		var apiErr *anthropic.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.StatusCode != 529 || apiErr.Type != "overloaded_error" {
			t.Errorf("unexpected api error: %+v", apiErr)
		}
	})
}
