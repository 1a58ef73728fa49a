package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"project-assistant/pkg/log"
)

// Manager stores pending sessions keyed by conversation id. Sessions
// expire after the TTL, are replaced by a newer upload, and are dropped
// when the conversation moves to another project.
type Manager struct {
	store *expirable.LRU[string, PendingSession]
	locks *keyedMutex
	ttl   time.Duration
	now   func() time.Time
	l     log.Logger
}

// New creates a session Manager.
func New(cfg Config, l log.Logger) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.MaxConversations <= 0 {
		cfg.MaxConversations = DefaultMaxConversations
	}
	return &Manager{
		store: expirable.NewLRU[string, PendingSession](cfg.MaxConversations, nil, cfg.TTL),
		locks: newKeyedMutex(),
		ttl:   cfg.TTL,
		now:   time.Now,
		l:     l,
	}
}

// Lock serializes all work on one conversation. Callers hold it for the
// whole input event so a conversation has a single writer.
func (m *Manager) Lock(conversationID string) func() {
	return m.locks.Lock(conversationID)
}

// Create stores a new pending session, superseding any existing one.
func (m *Manager) Create(ctx context.Context, in CreateInput) PendingSession {
	if old, ok := m.store.Peek(in.ConversationID); ok {
		m.l.Infof(ctx, "%s: superseding session %s (%s)", LogPrefixCreate, old.SessionID, old.File.Name)
	}

	now := m.now()
	s := PendingSession{
		SessionID:      uuid.NewString(),
		ConversationID: in.ConversationID,
		ProjectID:      in.ProjectID,
		ParsedText:     in.ParsedText,
		DetectedType:   in.DetectedType,
		Summary:        in.Summary,
		File:           in.File,
		CreatedAt:      now,
		ExpiresAt:      now.Add(m.ttl),
	}
	m.store.Add(in.ConversationID, s)

	m.l.Infof(ctx, "%s: session %s created for %s (type=%s, %d chars)",
		LogPrefixCreate, s.SessionID, s.File.Name, s.DetectedType, len([]rune(s.ParsedText)))
	return s
}

// Active returns the live session of a conversation. A session created
// under a different project is invalidated and not returned.
func (m *Manager) Active(ctx context.Context, conversationID, projectID string) (PendingSession, bool) {
	s, ok := m.store.Get(conversationID)
	if !ok {
		return PendingSession{}, false
	}
	if s.ProjectID != projectID {
		m.store.Remove(conversationID)
		m.l.Infof(ctx, "%s: session %s dropped, project changed %s -> %s",
			LogPrefixActive, s.SessionID, s.ProjectID, projectID)
		return PendingSession{}, false
	}
	return s, true
}

// Consume returns the live session and removes it, so a batch is emitted
// at most once per upload.
func (m *Manager) Consume(ctx context.Context, conversationID, projectID string) (PendingSession, bool) {
	s, ok := m.Active(ctx, conversationID, projectID)
	if !ok {
		return PendingSession{}, false
	}
	m.store.Remove(conversationID)
	return s, true
}

// Clear removes the session of a conversation, reporting whether one existed.
func (m *Manager) Clear(ctx context.Context, conversationID string) bool {
	return m.store.Remove(conversationID)
}

// InvalidateProject drops every session created under projectID.
func (m *Manager) InvalidateProject(ctx context.Context, projectID string) int {
	n := 0
	for _, key := range m.store.Keys() {
		if s, ok := m.store.Peek(key); ok && s.ProjectID == projectID {
			if m.store.Remove(key) {
				n++
			}
		}
	}
	if n > 0 {
		m.l.Infof(ctx, "%s: dropped %d session(s) of project %s", LogPrefixInvalidate, n, projectID)
	}
	return n
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	return m.store.Len()
}
