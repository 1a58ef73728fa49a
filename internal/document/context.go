package document

import (
	"strings"
	"time"

	"project-assistant/internal/model"
	"project-assistant/internal/prompt"
)

// PathSeparator joins titles of a node's ancestors.
const PathSeparator = " > "

// NodePaths maps node ids to their root-first title path. Parents missing
// from the snapshot end the path; cycles are cut at the first repeat.
func NodePaths(nodes []model.HierarchyNode) map[string]string {
	byID := make(map[string]model.HierarchyNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	paths := make(map[string]string, len(nodes))
	for _, n := range nodes {
		var titles []string
		seen := map[string]bool{}
		cur, ok := n, true
		for ok && !seen[cur.ID] {
			seen[cur.ID] = true
			titles = append(titles, cur.Title)
			if cur.ParentID == nil {
				break
			}
			cur, ok = byID[*cur.ParentID]
		}
		for i, j := 0, len(titles)-1; i < j; i, j = i+1, j-1 {
			titles[i], titles[j] = titles[j], titles[i]
		}
		paths[n.ID] = strings.Join(titles, PathSeparator)
	}
	return paths
}

// PromptContext renders the project for prompt templates.
func PromptContext(pc model.ProjectContext, now time.Time) prompt.Context {
	paths := NodePaths(pc.Hierarchy)
	nodes := make([]prompt.NodeOption, 0, len(pc.Hierarchy))
	for _, n := range pc.Hierarchy {
		nodes = append(nodes, prompt.NodeOption{ID: n.ID, Path: paths[n.ID]})
	}
	return prompt.Context{
		Now:         now,
		ProjectName: pc.Name,
		Team:        pc.Team,
		Nodes:       nodes,
	}
}
