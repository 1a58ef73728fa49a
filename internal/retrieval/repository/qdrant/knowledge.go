package qdrant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"project-assistant/internal/retrieval"
	pkgQdrant "project-assistant/pkg/qdrant"
	"project-assistant/pkg/voyage"
)

// Query embeds the text and searches within the project.
func (r *implRepository) Query(ctx context.Context, opt retrieval.QueryOptions) ([]retrieval.Snippet, error) {
	vectors, err := r.embedder.Embed(ctx, []string{opt.Text}, voyage.InputQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	req := pkgQdrant.SearchRequest{
		Vector:      vectors[0],
		Limit:       opt.Limit,
		WithPayload: true,
	}
	if opt.Threshold > 0 {
		threshold := opt.Threshold
		req.ScoreThreshold = &threshold
	}
	if opt.ProjectID != "" {
		req.Filter = pkgQdrant.MatchKeyword(payloadProjectID, opt.ProjectID)
	}

	resp, err := r.client.SearchPoints(ctx, r.collection, req)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	out := make([]retrieval.Snippet, 0, len(resp.Result))
	for _, p := range resp.Result {
		text, ok := p.Payload[payloadText].(string)
		if !ok {
			r.l.Warnf(ctx, "qdrant knowledge: point %v has no text payload", p.ID)
			continue
		}
		source, _ := p.Payload[payloadSource].(string)
		out = append(out, retrieval.Snippet{
			ID:     fmt.Sprint(p.ID),
			Source: source,
			Text:   text,
			Score:  p.Score,
		})
	}
	return out, nil
}

// Index splits the document into overlapping chunks and upserts them.
func (r *implRepository) Index(ctx context.Context, doc retrieval.Document) (int, error) {
	chunks := chunk(doc.Text, chunkRunes, chunkOverlap, maxChunks)
	if len(chunks) == 0 {
		return 0, nil
	}

	vectors, err := r.embedder.Embed(ctx, chunks, voyage.InputDocument)
	if err != nil {
		return 0, fmt.Errorf("failed to embed document: %w", err)
	}

	ns := uuid.MustParse(pointNamespace)
	points := make([]pkgQdrant.Point, len(chunks))
	for i, c := range chunks {
		points[i] = pkgQdrant.Point{
			ID:     uuid.NewSHA1(ns, []byte(fmt.Sprintf("%s#%d", doc.ID, i))).String(),
			Vector: vectors[i],
			Payload: map[string]any{
				payloadProjectID: doc.ProjectID,
				payloadDocID:     doc.ID,
				payloadSource:    doc.Source,
				payloadText:      c,
				payloadChunk:     i,
			},
		}
	}

	if err := r.client.UpsertPoints(ctx, r.collection, pkgQdrant.UpsertPointsRequest{Points: points}); err != nil {
		return 0, fmt.Errorf("failed to upsert points: %w", err)
	}
	return len(points), nil
}

// chunk cuts text into windows of size runes overlapping by overlap,
// preferring to break on a newline in the second half of the window.
func chunk(text string, size, overlap, limit int) []string {
	runes := []rune(strings.TrimSpace(text))
	var out []string
	for start := 0; start < len(runes) && len(out) < limit; {
		end := min(start+size, len(runes))
		if end < len(runes) {
			for i := end - 1; i > start+size/2; i-- {
				if runes[i] == '\n' {
					end = i + 1
					break
				}
			}
		}
		if piece := strings.TrimSpace(string(runes[start:end])); piece != "" {
			out = append(out, piece)
		}
		if end == len(runes) {
			break
		}
		start = max(end-overlap, start+1)
	}
	return out
}
