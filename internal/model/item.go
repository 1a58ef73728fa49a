package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// ItemType is the kind of work item a candidate describes.
type ItemType string

const (
	ItemTask          ItemType = "task"
	ItemDecision      ItemType = "decision"
	ItemPending       ItemType = "pending"
	ItemChangeRequest ItemType = "change_request"
	ItemFeatureModule ItemType = "feature_module"
	ItemWorkPackage   ItemType = "work_package"
)

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTask, ItemDecision, ItemPending, ItemChangeRequest, ItemFeatureModule, ItemWorkPackage:
		return true
	}
	return false
}

// Hierarchical reports whether items of this type can parent other items.
func (t ItemType) Hierarchical() bool {
	return t == ItemFeatureModule || t == ItemWorkPackage
}

// Priority of a work item.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// MaxTitleRunes bounds CandidateItem.Title for display.
const MaxTitleRunes = 50

const titleEllipsis = "…"

var priorityAliases = map[string]Priority{
	"high": PriorityHigh, "urgent": PriorityHigh, "critical": PriorityHigh,
	"p0": PriorityHigh, "p1": PriorityHigh, "高": PriorityHigh, "緊急": PriorityHigh,
	"medium": PriorityMedium, "normal": PriorityMedium, "p2": PriorityMedium, "中": PriorityMedium,
	"low": PriorityLow, "minor": PriorityLow, "p3": PriorityLow, "低": PriorityLow,
}

// ParsePriority maps common spellings onto a Priority. Anything unknown is medium.
func ParsePriority(s string) Priority {
	if p, ok := priorityAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p
	}
	return PriorityMedium
}

// TruncateTitle collapses whitespace and bounds s to MaxTitleRunes, the
// ellipsis included.
func TruncateTitle(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= MaxTitleRunes {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:MaxTitleRunes-1])) + titleEllipsis
}

// CandidateItem is a proposed, not yet persisted work item.
type CandidateItem struct {
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Type               ItemType   `json:"type"`
	Priority           Priority   `json:"priority"`
	DueDate            *time.Time `json:"due_date,omitempty"`
	TargetNodeID       *string    `json:"target_node_id"`
	TargetPath         string     `json:"target_path,omitempty"`
	RequirementSnippet string     `json:"requirement_snippet,omitempty"`
	Confidence         float64    `json:"confidence"`
	// ParentTitle is only set on hierarchical payloads. Empty means root.
	ParentTitle string `json:"parent_title,omitempty"`
}

// Item is a work item as returned by the item store.
type Item struct {
	ID          string
	Title       string
	Description string
	Type        ItemType
	Priority    Priority
	DueDate     *time.Time
	ParentID    *string
	TargetID    *string
	URL         string
	CalendarURL string
	ProjectID   string
	CreatedAt   time.Time
}

// NodeKind is the kind of an external hierarchy node.
type NodeKind string

const (
	NodeFeatureModule NodeKind = "feature_module"
	NodeWorkPackage   NodeKind = "work_package"
)

// HierarchyNode is a read-only snapshot of an externally owned node.
type HierarchyNode struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	ParentID *string  `json:"parent_id,omitempty"`
	Kind     NodeKind `json:"kind"`
}
