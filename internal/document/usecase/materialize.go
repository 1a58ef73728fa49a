package usecase

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"project-assistant/internal/document"
	"project-assistant/internal/item"
	"project-assistant/internal/model"
)

// Materialize creates the batch in waves. Wave 0 holds items without a
// parent title. Every later wave holds items whose parent sits in the
// previous wave, so a parent is always created, and its id known, before
// any child is submitted. Items naming a parent outside the batch go in
// wave 1 and are created unlinked. Within a wave creations run
// concurrently, bounded by the configured limit.
func (uc *implUseCase) Materialize(ctx context.Context, input document.MaterializeInput) document.MaterializeResult {
	ctx, cancel := context.WithTimeout(ctx, materializeTimeout)
	defer cancel()

	items := input.Items
	waves := planWaves(items)

	created := make([]*model.Item, len(items))
	errs := make([]error, len(items))
	ids := map[string]string{}
	var res document.MaterializeResult

	for w, wave := range waves {
		g := errgroup.Group{}
		g.SetLimit(uc.concurrency)

		for _, i := range wave {
			c := items[i]
			opt := item.CreateOptions{
				ProjectID:          input.ProjectID,
				Title:              c.Title,
				Description:        c.Description,
				Type:               c.Type,
				Priority:           c.Priority,
				DueDate:            c.DueDate,
				TargetID:           c.TargetNodeID,
				RequirementSnippet: c.RequirementSnippet,
				SourceArtifactID:   input.SourceArtifactID,
			}
			if parent := titleKey(c.ParentTitle); parent != "" && parent != titleKey(c.Title) {
				if id, ok := ids[parent]; ok {
					opt.ParentID = &id
				} else {
					res.Unlinked++
					uc.l.Warnf(ctx, "%s: parent %q of %q not created, creating unlinked", LogPrefixMaterialize, c.ParentTitle, c.Title)
				}
			}

			g.Go(func() error {
				it, err := uc.store.CreateItem(ctx, opt)
				if err != nil {
					errs[i] = err
					return nil
				}
				created[i] = &it
				return nil
			})
		}
		_ = g.Wait()

		// Batch order decides which duplicate title a child links to.
		for _, i := range wave {
			if created[i] == nil {
				continue
			}
			if k := titleKey(items[i].Title); ids[k] == "" {
				ids[k] = created[i].ID
			}
		}
		uc.l.Debugf(ctx, "%s: wave %d done (%d items)", LogPrefixMaterialize, w, len(wave))
	}

	for i := range items {
		switch {
		case created[i] != nil:
			res.Created = append(res.Created, *created[i])
		case errs[i] != nil:
			uc.l.Warnf(ctx, "%s: creating %q failed: %v", LogPrefixMaterialize, items[i].Title, errs[i])
			res.Failures = append(res.Failures, document.Failure{Index: i, Title: items[i].Title, Err: errs[i]})
		}
	}

	uc.l.Infof(ctx, "%s: artifact %s created %d of %d items (%d failed, %d unlinked)",
		LogPrefixMaterialize, input.SourceArtifactID, len(res.Created), len(items), len(res.Failures), res.Unlinked)
	return res
}

// planWaves groups item indexes by the depth of their parent chain inside
// the batch. Cycles are broken where they are first detected.
func planWaves(items []model.CandidateItem) [][]int {
	first := make(map[string]int, len(items))
	for i, c := range items {
		if k := titleKey(c.Title); k != "" {
			if _, ok := first[k]; !ok {
				first[k] = i
			}
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(items))
	depth := make([]int, len(items))

	var visit func(i int) int
	visit = func(i int) int {
		switch state[i] {
		case done:
			return depth[i]
		case visiting:
			return 0
		}
		state[i] = visiting

		d := 0
		parent := titleKey(items[i].ParentTitle)
		if parent != "" && parent != titleKey(items[i].Title) {
			if p, ok := first[parent]; ok {
				d = visit(p) + 1
			} else {
				d = 1
			}
		}

		depth[i] = d
		state[i] = done
		return d
	}

	var waves [][]int
	for i := range items {
		d := visit(i)
		for len(waves) <= d {
			waves = append(waves, nil)
		}
		waves[d] = append(waves[d], i)
	}
	return waves
}

func titleKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
