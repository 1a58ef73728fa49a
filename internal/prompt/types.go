package prompt

import (
	"time"

	"project-assistant/internal/model"
)

// TemplateID identifies a document extraction template.
type TemplateID string

const (
	TemplateFeatureModules TemplateID = "feature_modules"
	TemplateWBS            TemplateID = "wbs"
	TemplateMeetingNotes   TemplateID = "meeting_notes"
	TemplateDecisions      TemplateID = "decisions"
	TemplateChangeRequests TemplateID = "change_requests"
	TemplatePending        TemplateID = "pending_items"
	TemplateTasks          TemplateID = "tasks"
	TemplateGeneric        TemplateID = "generic"
)

// Hierarchical reports whether the template emits parent_title links.
func (t TemplateID) Hierarchical() bool {
	return t == TemplateFeatureModules || t == TemplateWBS
}

// Context is what the registry embeds into prompts.
type Context struct {
	Now         time.Time
	ProjectName string
	Team        []string
	// Nodes lists hierarchy nodes a candidate may target.
	Nodes []NodeOption
}

// NodeOption is a hierarchy node rendered for the model.
type NodeOption struct {
	ID   string
	Path string
}

// Rule maps a keyword set to a template. A rule matches when any keyword
// is a substring of the lowercased haystack.
type Rule struct {
	Template TemplateID
	Keywords []string
}

// FollowUpCategory is the category a follow-up instruction routes to.
type FollowUpCategory string

const (
	FollowUpFeatureModules FollowUpCategory = "feature_modules"
	FollowUpSmartAnalysis  FollowUpCategory = "smart_analysis"
	FollowUpChat           FollowUpCategory = "chat"
)

// FollowUpRule maps keywords to a follow-up category.
type FollowUpRule struct {
	Category FollowUpCategory
	Keywords []string
}

// TypeRule maps keywords to a detected document type.
type TypeRule struct {
	Type     model.DocumentType
	Keywords []string
}
