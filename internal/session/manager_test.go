package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"project-assistant/internal/model"
	"project-assistant/pkg/log"
)

func newTestManager(ttl time.Duration) *Manager {
	return New(Config{TTL: ttl, MaxConversations: 10}, log.NewNop())
}

func TestCreateAndActive(t *testing.T) {
	m := newTestManager(time.Minute)
	ctx := context.Background()

	s := m.Create(ctx, CreateInput{
		ConversationID: "c1",
		ProjectID:      "p1",
		ParsedText:     "minutes",
		DetectedType:   model.DocMeetingNotes,
		File:           model.FileMetadata{Name: "meeting_notes.pdf"},
	})
	if s.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if !s.ExpiresAt.After(s.CreatedAt) {
		t.Errorf("expected ExpiresAt after CreatedAt")
	}

	got, ok := m.Active(ctx, "c1", "p1")
	if !ok {
		t.Fatal("expected active session")
	}
	if got.SessionID != s.SessionID || got.DetectedType != model.DocMeetingNotes {
		t.Errorf("unexpected session %+v", got)
	}

	if _, ok := m.Active(ctx, "c2", "p1"); ok {
		t.Error("sessions must be scoped to their conversation")
	}
}

func TestCreate_Supersedes(t *testing.T) {
	m := newTestManager(time.Minute)
	ctx := context.Background()

	first := m.Create(ctx, CreateInput{ConversationID: "c1", ProjectID: "p1", File: model.FileMetadata{Name: "a.pdf"}})
	second := m.Create(ctx, CreateInput{ConversationID: "c1", ProjectID: "p1", File: model.FileMetadata{Name: "b.pdf"}})

	got, ok := m.Active(ctx, "c1", "p1")
	if !ok {
		t.Fatal("expected active session")
	}
	if got.SessionID == first.SessionID || got.SessionID != second.SessionID {
		t.Errorf("expected the newer upload to supersede the older one")
	}
	if m.Len() != 1 {
		t.Errorf("expected exactly one session per conversation, got %d", m.Len())
	}
}

func TestActive_ProjectChangeInvalidates(t *testing.T) {
	m := newTestManager(time.Minute)
	ctx := context.Background()

	m.Create(ctx, CreateInput{ConversationID: "c1", ProjectID: "p1"})

	if _, ok := m.Active(ctx, "c1", "p2"); ok {
		t.Fatal("expected no session under another project")
	}
	if _, ok := m.Active(ctx, "c1", "p1"); ok {
		t.Error("expected the session to be invalidated, not hidden")
	}
}

func TestClear(t *testing.T) {
	m := newTestManager(time.Minute)
	ctx := context.Background()

	m.Create(ctx, CreateInput{ConversationID: "c1", ProjectID: "p1"})
	if !m.Clear(ctx, "c1") {
		t.Error("expected Clear to report an existing session")
	}
	if m.Clear(ctx, "c1") {
		t.Error("expected second Clear to report nothing")
	}
	if _, ok := m.Active(ctx, "c1", "p1"); ok {
		t.Error("expected session to be gone")
	}
}

func TestConsume(t *testing.T) {
	m := newTestManager(time.Minute)
	ctx := context.Background()

	created := m.Create(ctx, CreateInput{ConversationID: "c1", ProjectID: "p1"})
	got, ok := m.Consume(ctx, "c1", "p1")
	if !ok || got.SessionID != created.SessionID {
		t.Fatalf("expected to consume session %s, got %+v", created.SessionID, got)
	}
	if _, ok := m.Consume(ctx, "c1", "p1"); ok {
		t.Error("expected session to be consumed once")
	}
}

func TestExpiry(t *testing.T) {
	m := newTestManager(30 * time.Millisecond)
	ctx := context.Background()

	m.Create(ctx, CreateInput{ConversationID: "c1", ProjectID: "p1"})
	time.Sleep(80 * time.Millisecond)

	if _, ok := m.Active(ctx, "c1", "p1"); ok {
		t.Error("expected session to expire after TTL")
	}
}

func TestInvalidateProject(t *testing.T) {
	m := newTestManager(time.Minute)
	ctx := context.Background()

	m.Create(ctx, CreateInput{ConversationID: "c1", ProjectID: "p1"})
	m.Create(ctx, CreateInput{ConversationID: "c2", ProjectID: "p1"})
	m.Create(ctx, CreateInput{ConversationID: "c3", ProjectID: "p2"})

	if n := m.InvalidateProject(ctx, "p1"); n != 2 {
		t.Errorf("expected 2 sessions dropped, got %d", n)
	}
	if _, ok := m.Active(ctx, "c3", "p2"); !ok {
		t.Error("expected other projects to be untouched")
	}
}

func TestLock_SerializesConversation(t *testing.T) {
	m := newTestManager(time.Minute)

	var mu sync.Mutex
	inside, maxInside := 0, 0
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := m.Lock("c1")
			defer unlock()

			mu.Lock()
			inside++
			if inside > maxInside {
				maxInside = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Errorf("expected a single writer per conversation, saw %d", maxInside)
	}
	if len(m.locks.locks) != 0 {
		t.Errorf("expected lock entries to be released, got %d", len(m.locks.locks))
	}
}
