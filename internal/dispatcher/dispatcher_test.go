package dispatcher

import (
	"testing"

	"project-assistant/internal/classifier"
)

func TestModeFor_Boundaries(t *testing.T) {
	tests := []struct {
		confidence float64
		want       Mode
	}{
		{0, ModeClarify},
		{0.59, ModeClarify},
		{0.60, ModeConfirm},
		{0.84, ModeConfirm},
		{0.85, ModeAutoExecute},
		{1, ModeAutoExecute},
	}
	for _, tt := range tests {
		if got := ModeFor(tt.confidence, DefaultThresholds); got != tt.want {
			t.Errorf("ModeFor(%.2f) = %s, want %s", tt.confidence, got, tt.want)
		}
	}
}

func TestDispatch_Boundaries(t *testing.T) {
	d := New(Config{})
	tests := []struct {
		confidence float64
		want       Mode
	}{
		{0.59, ModeClarify},
		{0.60, ModeConfirm},
		{0.84, ModeConfirm},
		{0.85, ModeAutoExecute},
	}
	for _, tt := range tests {
		r := classifier.Result{Intent: classifier.IntentCreateTask, Confidence: tt.confidence}
		if got := d.Dispatch(r).Mode; got != tt.want {
			t.Errorf("Dispatch(%.2f).Mode = %s, want %s", tt.confidence, got, tt.want)
		}
	}
}

func TestDispatch_AutoExecute(t *testing.T) {
	d := New(Config{})
	dec := d.Dispatch(classifier.Result{
		Intent:        classifier.IntentCreateTask,
		Confidence:    0.92,
		ExtractedInfo: classifier.ExtractedInfo{Title: "修正登入錯誤"},
	})

	if !dec.ReadyForAction || dec.ClarificationNeeded {
		t.Errorf("expected ready for action without clarification, got %+v", dec)
	}
	if dec.Message != "好的，已準備建立任務「修正登入錯誤」。" {
		t.Errorf("unexpected message %q", dec.Message)
	}
	if dec.ExtractedInfo.Title != "修正登入錯誤" {
		t.Errorf("expected extracted info to be carried")
	}
}

func TestDispatch_Greeting(t *testing.T) {
	d := New(Config{})
	d.pick = func(n int) int { return n - 1 }

	dec := d.Dispatch(classifier.Result{
		Intent:        classifier.IntentChat,
		Confidence:    0.97,
		ExtractedInfo: classifier.ExtractedInfo{Topic: "greeting"},
	})
	if dec.Mode != ModeAutoExecute || !dec.Greeting {
		t.Fatalf("expected auto-executed greeting, got %+v", dec)
	}
	if dec.Message != Greetings[len(Greetings)-1] {
		t.Errorf("expected a message from the greeting set, got %q", dec.Message)
	}
	if dec.ReadyForAction {
		t.Errorf("chat must not be flagged for action")
	}

	plain := d.Dispatch(classifier.Result{Intent: classifier.IntentChat, Confidence: 0.9, ExtractedInfo: classifier.ExtractedInfo{Topic: "project status"}})
	if plain.Greeting || plain.Message != "" {
		t.Errorf("non-greeting chat should leave the reply to the chat path, got %+v", plain)
	}
}

func TestDispatch_Confirm(t *testing.T) {
	d := New(Config{})
	dec := d.Dispatch(classifier.Result{
		Intent:        classifier.IntentRecordDecision,
		Confidence:    0.7,
		ExtractedInfo: classifier.ExtractedInfo{Decision: "採用 PostgreSQL"},
	})

	if !dec.ClarificationNeeded || dec.ReadyForAction {
		t.Errorf("expected clarification without action, got %+v", dec)
	}
	if len(dec.Options) != 2 || dec.Options[0].Intent != classifier.IntentRecordDecision || dec.Options[1].Intent != classifier.IntentChat {
		t.Errorf("expected primary interpretation plus general conversation, got %+v", dec.Options)
	}
	if dec.Message != "你是想要記錄決議「採用 PostgreSQL」嗎？" {
		t.Errorf("unexpected message %q", dec.Message)
	}
}

func TestDispatch_Clarify(t *testing.T) {
	d := New(Config{})
	for _, r := range []classifier.Result{
		{Intent: classifier.IntentCreateTask, Confidence: 0.4},
		classifier.ParseErrorResult(),
		{Intent: classifier.IntentAmbiguous, Confidence: 0.9},
	} {
		dec := d.Dispatch(r)
		if !dec.ClarificationNeeded {
			t.Errorf("expected clarification for %+v", r)
		}
		if dec.Mode != ModeClarify || dec.ReadyForAction {
			t.Errorf("expected clarify mode without action for %+v, got %s", r, dec.Mode)
		}
		if len(dec.Options) != 3 {
			t.Fatalf("expected the fixed three options, got %+v", dec.Options)
		}
		want := []classifier.Intent{classifier.IntentCreateTask, classifier.IntentMarkPending, classifier.IntentChat}
		for i, o := range dec.Options {
			if o.Intent != want[i] {
				t.Errorf("option %d = %s, want %s", i, o.Intent, want[i])
			}
		}
	}
}

func TestDispatch_PerIntentThresholds(t *testing.T) {
	d := New(Config{
		PerIntent: map[classifier.Intent]Thresholds{
			classifier.IntentChangeRequest: {Confirm: 0.7, Auto: 0.95},
		},
	})

	cr := d.Dispatch(classifier.Result{Intent: classifier.IntentChangeRequest, Confidence: 0.9})
	if cr.Mode != ModeConfirm {
		t.Errorf("expected override to require confirmation at 0.9, got %s", cr.Mode)
	}
	low := d.Dispatch(classifier.Result{Intent: classifier.IntentChangeRequest, Confidence: 0.65})
	if low.Mode != ModeClarify {
		t.Errorf("expected override to clarify at 0.65, got %s", low.Mode)
	}
	task := d.Dispatch(classifier.Result{Intent: classifier.IntentCreateTask, Confidence: 0.9})
	if task.Mode != ModeAutoExecute {
		t.Errorf("expected default thresholds for other intents, got %s", task.Mode)
	}
}
