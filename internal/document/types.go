package document

import (
	"time"

	"project-assistant/internal/model"
	"project-assistant/internal/prompt"
)

// DetectInput is an uploaded document awaiting type detection.
type DetectInput struct {
	FileName string
	Text     string
}

// Detection is the detected category of a document.
type Detection struct {
	Type       model.DocumentType
	Confidence float64
	Summary    string
	// Fallback is set when the keyword heuristic decided the type.
	Fallback bool
}

// AnalyzeInput is the document and instruction to extract from.
type AnalyzeInput struct {
	FileName     string
	Text         string
	DetectedType model.DocumentType
	Instruction  string
	Project      model.ProjectContext
	Now          time.Time
}

// Analysis is one extracted batch.
type Analysis struct {
	Category         prompt.FollowUpCategory
	Template         prompt.TemplateID
	SourceArtifactID string
	Items            []model.CandidateItem
	// Dropped counts model items discarded during normalization.
	Dropped int
}

// Hierarchical reports whether the batch carries parent links.
func (a Analysis) Hierarchical() bool {
	return a.Template.Hierarchical()
}

// MaterializeInput is a batch to persist.
type MaterializeInput struct {
	ProjectID        string
	SourceArtifactID string
	Items            []model.CandidateItem
}

// Failure is one candidate the store rejected.
type Failure struct {
	Index int
	Title string
	Err   error
}

// MaterializeResult reports what was persisted. Created keeps batch order.
type MaterializeResult struct {
	Created  []model.Item
	Failures []Failure
	// Unlinked counts items whose parent title matched nothing created.
	Unlinked int
}
