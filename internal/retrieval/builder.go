package retrieval

import (
	"context"
	"fmt"
	"strings"

	"project-assistant/pkg/log"
)

// Builder turns a query into a bounded, labeled context block. Lookup
// failures never reach the caller.
type Builder struct {
	store Store
	cfg   Config
	l     log.Logger
}

// NewBuilder creates a Builder. A nil store disables retrieval.
func NewBuilder(store Store, cfg Config, l log.Logger) *Builder {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = DefaultMaxChars
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Builder{store: store, cfg: cfg, l: l}
}

// Retrieve returns at most TopK snippets above threshold, each cut to
// MaxChars runes. Errors and timeouts are logged and yield nil.
func (b *Builder) Retrieve(ctx context.Context, query, projectID string, threshold float64) []Snippet {
	if b == nil || b.store == nil || !b.cfg.Enabled || strings.TrimSpace(query) == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	snippets, err := b.store.Query(ctx, QueryOptions{
		Text:      query,
		ProjectID: projectID,
		Threshold: threshold,
		Limit:     b.cfg.TopK,
	})
	if err != nil {
		b.l.Warnf(ctx, "%s: lookup skipped: %v", LogPrefixRetrieve, err)
		return nil
	}

	out := make([]Snippet, 0, min(len(snippets), b.cfg.TopK))
	for _, s := range snippets {
		if len(out) == b.cfg.TopK {
			break
		}
		if s.Score < threshold || strings.TrimSpace(s.Text) == "" {
			continue
		}
		s.Text = truncateRunes(strings.TrimSpace(s.Text), b.cfg.MaxChars)
		out = append(out, s)
	}

	b.l.Debugf(ctx, "%s: %d snippet(s) for project %s", LogPrefixRetrieve, len(out), projectID)
	return out
}

// Index makes a parsed document searchable. Failures are logged only.
func (b *Builder) Index(ctx context.Context, doc Document) {
	if b == nil || b.store == nil || !b.cfg.Enabled || strings.TrimSpace(doc.Text) == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	n, err := b.store.Index(ctx, doc)
	if err != nil {
		b.l.Warnf(ctx, "%s: %s not indexed: %v", LogPrefixIndex, doc.Source, err)
		return
	}
	b.l.Infof(ctx, "%s: %s indexed as %d chunk(s)", LogPrefixIndex, doc.Source, n)
}

// ContextBlock formats snippets for the chat system prompt. Empty input
// gives an empty block.
func ContextBlock(snippets []Snippet) string {
	if len(snippets) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(contextHeader)
	sb.WriteString("\n")
	for i, s := range snippets {
		source := s.Source
		if source == "" {
			source = s.ID
		}
		fmt.Fprintf(&sb, "[%d] (%s, %.0f%%)\n%s\n", i+1, source, s.Score*100, s.Text)
	}
	return sb.String()
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + truncateSuffix
}
