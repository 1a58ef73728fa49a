package orchestrator

import (
	"io"
	"time"

	"project-assistant/internal/classifier"
	"project-assistant/internal/dispatcher"
	"project-assistant/internal/model"
	"project-assistant/internal/retrieval"
)

// Branch names the path an input event took.
type Branch string

const (
	BranchPendingSession Branch = "pending_session"
	BranchFollowUp       Branch = "follow_up"
	BranchDirect         Branch = "direct"
	BranchChat           Branch = "chat"
)

// ErrorKind tells clients which provider failure a reply explains.
type ErrorKind string

const (
	ErrorKindNone       ErrorKind = ""
	ErrorKindConfig     ErrorKind = "config"
	ErrorKindNetwork    ErrorKind = "network"
	ErrorKindTruncated  ErrorKind = "truncated"
	ErrorKindRefused    ErrorKind = "refused"
	ErrorKindFiltered   ErrorKind = "filtered"
	ErrorKindNoItems    ErrorKind = "no_items"
	ErrorKindStoreWrite ErrorKind = "store_write"
)

// FileUpload is an uploaded document. Reader is consumed by Handle.
type FileUpload struct {
	Name     string
	Size     int64
	MimeType string
	Reader   io.Reader
}

// Input is one user event.
type Input struct {
	ConversationID string
	Text           string
	File           *FileUpload
	Project        model.ProjectContext
}

// Output is the reply to one event. Chat replies carry Citations;
// document batches carry CandidateItems and SourceArtifactID.
type Output struct {
	Branch    Branch
	ReplyText string
	ErrorKind ErrorKind

	Citations []retrieval.Snippet

	CandidateItems   []model.CandidateItem
	SourceArtifactID string
	Created          []model.Item
	Failures         int
	Unlinked         int

	SessionID          string
	DocumentType       model.DocumentType
	SuggestedFollowUps []string

	Intent     classifier.Intent
	Confidence float64
	Mode       dispatcher.Mode
	Options    []dispatcher.Option
}

// CommitInput hands confirmed candidates to the item store.
type CommitInput struct {
	ConversationID   string
	ProjectID        string
	SourceArtifactID string
	Items            []model.CandidateItem
}

// Config tunes the orchestrator.
type Config struct {
	// SmartAnalysisEnabled turns on the keyword heuristic that sends
	// document-shaped messages straight to extraction.
	SmartAnalysisEnabled bool
	RetrievalThreshold   float64
	Location             *time.Location
}
