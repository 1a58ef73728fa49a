package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"project-assistant/internal/document"
	"project-assistant/internal/model"
	"project-assistant/internal/prompt"
)

// normalize turns raw model items into candidates and returns the number
// of items it dropped. Items without a title are dropped, as are repeats
// of an earlier (type, title) pair.
func (uc *implUseCase) normalize(ctx context.Context, raws []rawItem, id prompt.TemplateID, nodes []model.HierarchyNode, now time.Time) ([]model.CandidateItem, int) {
	paths := document.NodePaths(nodes)
	seen := make(map[string]bool, len(raws))
	items := make([]model.CandidateItem, 0, len(raws))
	dropped := 0

	for _, r := range raws {
		title := model.TruncateTitle(r.Title)
		if title == "" {
			dropped++
			continue
		}

		c := model.CandidateItem{
			Title:              title,
			Description:        strings.TrimSpace(r.Description),
			Type:               normalizeType(r.Type, id),
			Priority:           model.ParsePriority(r.Priority),
			RequirementSnippet: strings.TrimSpace(r.RequirementSnippet),
			Confidence:         clamp01(r.Confidence),
		}

		key := string(c.Type) + "\x00" + strings.ToLower(c.Title)
		if seen[key] {
			dropped++
			continue
		}
		seen[key] = true

		if due := strings.TrimSpace(r.DueDate); due != "" {
			if t, err := uc.dateMath.Parse(due, now); err == nil {
				c.DueDate = &t
			} else {
				uc.l.Debugf(ctx, "document.normalize: ignoring due date %q on %q: %v", due, title, err)
			}
		}

		if id.Hierarchical() {
			c.ParentTitle = model.TruncateTitle(r.ParentTitle)
		} else if r.TargetNodeID != nil {
			if path, ok := paths[strings.TrimSpace(*r.TargetNodeID)]; ok {
				target := strings.TrimSpace(*r.TargetNodeID)
				c.TargetNodeID = &target
				c.TargetPath = path
			}
		}

		items = append(items, c)
	}
	return items, dropped
}

func normalizeType(s string, id prompt.TemplateID) model.ItemType {
	t := model.ItemType(strings.ToLower(strings.TrimSpace(s)))
	if t.Valid() {
		return t
	}
	if d, ok := defaultItemType[id]; ok {
		return d
	}
	return model.ItemTask
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

func headRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
