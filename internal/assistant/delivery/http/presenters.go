package http

import (
	"io"
	"strings"

	"project-assistant/internal/dispatcher"
	"project-assistant/internal/document"
	"project-assistant/internal/model"
	"project-assistant/internal/orchestrator"
	"project-assistant/internal/retrieval"
	"project-assistant/pkg/response"
)

// --- Request DTOs ---

type sendMessageReq struct {
	ConversationID string `form:"-"`
	Text           string `form:"text"         binding:"max=20000"`
	ProjectID      string `form:"project_id"   binding:"max=128"`
	ProjectName    string `form:"project_name" binding:"max=255"`
	// Team is a comma separated list of member names.
	Team string `form:"team"`
}

func (r sendMessageReq) validate() error {
	if strings.TrimSpace(r.ConversationID) == "" {
		return errMissingConversation
	}
	return nil
}

func (r sendMessageReq) toInput(file *orchestrator.FileUpload) orchestrator.Input {
	var team []string
	for _, m := range strings.Split(r.Team, ",") {
		if m = strings.TrimSpace(m); m != "" {
			team = append(team, m)
		}
	}
	return orchestrator.Input{
		ConversationID: r.ConversationID,
		Text:           r.Text,
		File:           file,
		Project: model.ProjectContext{
			ID:   r.ProjectID,
			Name: r.ProjectName,
			Team: team,
		},
	}
}

// uploadedFile is an opened multipart file.
type uploadedFile struct {
	name     string
	size     int64
	mimeType string
	body     io.ReadCloser
}

func (f *uploadedFile) toFileUpload() *orchestrator.FileUpload {
	if f == nil {
		return nil
	}
	return &orchestrator.FileUpload{Name: f.name, Size: f.size, MimeType: f.mimeType, Reader: f.body}
}

// ---

type commitReq struct {
	ProjectID        string                `json:"-"`
	ConversationID   string                `json:"conversation_id"`
	SourceArtifactID string                `json:"source_artifact_id"`
	Items            []model.CandidateItem `json:"items" binding:"required,min=1,max=200"`
}

func (r commitReq) validate() error { return nil }

func (r commitReq) toInput() orchestrator.CommitInput {
	return orchestrator.CommitInput{
		ConversationID:   r.ConversationID,
		ProjectID:        r.ProjectID,
		SourceArtifactID: r.SourceArtifactID,
		Items:            r.Items,
	}
}

// --- Response DTOs ---

type citationResp struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Text   string  `json:"text"`
	Score  float64 `json:"score"`
}

type candidateResp struct {
	Title              string         `json:"title"`
	Description        string         `json:"description,omitempty"`
	Type               string         `json:"type"`
	Priority           string         `json:"priority"`
	DueDate            *response.Date `json:"due_date,omitempty"`
	TargetNodeID       *string        `json:"target_node_id"`
	TargetPath         string         `json:"target_path,omitempty"`
	RequirementSnippet string         `json:"requirement_snippet,omitempty"`
	Confidence         float64        `json:"confidence"`
	ParentTitle        string         `json:"parent_title,omitempty"`
}

type itemResp struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Type        string         `json:"type"`
	Priority    string         `json:"priority,omitempty"`
	DueDate     *response.Date `json:"due_date,omitempty"`
	ParentID    *string        `json:"parent_id,omitempty"`
	URL         string         `json:"url,omitempty"`
	CalendarURL string         `json:"calendar_url,omitempty"`
}

type sessionResp struct {
	ID                 string   `json:"id"`
	DocumentType       string   `json:"document_type"`
	SuggestedFollowUps []string `json:"suggested_follow_ups"`
}

type optionResp struct {
	Label  string `json:"label"`
	Intent string `json:"intent"`
}

type classificationResp struct {
	Intent     string       `json:"intent"`
	Confidence float64      `json:"confidence"`
	Mode       string       `json:"mode"`
	Options    []optionResp `json:"options,omitempty"`
}

type messageResp struct {
	Branch           string              `json:"branch"`
	Reply            string              `json:"reply"`
	ErrorKind        string              `json:"error_kind,omitempty"`
	Citations        []citationResp      `json:"citations,omitempty"`
	Candidates       []candidateResp     `json:"candidates,omitempty"`
	SourceArtifactID string              `json:"source_artifact_id,omitempty"`
	Created          []itemResp          `json:"created,omitempty"`
	Failures         int                 `json:"failures,omitempty"`
	Unlinked         int                 `json:"unlinked,omitempty"`
	Session          *sessionResp        `json:"session,omitempty"`
	Classification   *classificationResp `json:"classification,omitempty"`
}

type commitResp struct {
	Created  []itemResp    `json:"created"`
	Failures []failureResp `json:"failures,omitempty"`
	Unlinked int           `json:"unlinked,omitempty"`
}

type failureResp struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Error string `json:"error"`
}

func (h *handler) newMessageResp(out orchestrator.Output) messageResp {
	resp := messageResp{
		Branch:           string(out.Branch),
		Reply:            out.ReplyText,
		ErrorKind:        string(out.ErrorKind),
		Citations:        newCitations(out.Citations),
		Candidates:       newCandidates(out.CandidateItems),
		SourceArtifactID: out.SourceArtifactID,
		Created:          newItems(out.Created),
		Failures:         out.Failures,
		Unlinked:         out.Unlinked,
	}
	if out.SessionID != "" {
		resp.Session = &sessionResp{
			ID:                 out.SessionID,
			DocumentType:       string(out.DocumentType),
			SuggestedFollowUps: out.SuggestedFollowUps,
		}
	}
	if out.Intent != "" {
		resp.Classification = &classificationResp{
			Intent:     string(out.Intent),
			Confidence: out.Confidence,
			Mode:       string(out.Mode),
			Options:    newOptions(out.Options),
		}
	}
	return resp
}

func (h *handler) newCommitResp(res document.MaterializeResult) commitResp {
	resp := commitResp{Created: newItems(res.Created), Unlinked: res.Unlinked}
	if resp.Created == nil {
		resp.Created = []itemResp{}
	}
	for _, f := range res.Failures {
		resp.Failures = append(resp.Failures, failureResp{Index: f.Index, Title: f.Title, Error: f.Err.Error()})
	}
	return resp
}

func newCitations(in []retrieval.Snippet) []citationResp {
	var out []citationResp
	for _, s := range in {
		out = append(out, citationResp{ID: s.ID, Source: s.Source, Text: s.Text, Score: s.Score})
	}
	return out
}

func newCandidates(in []model.CandidateItem) []candidateResp {
	var out []candidateResp
	for _, c := range in {
		out = append(out, candidateResp{
			Title:              c.Title,
			Description:        c.Description,
			Type:               string(c.Type),
			Priority:           string(c.Priority),
			DueDate:            response.NewDate(c.DueDate),
			TargetNodeID:       c.TargetNodeID,
			TargetPath:         c.TargetPath,
			RequirementSnippet: c.RequirementSnippet,
			Confidence:         c.Confidence,
			ParentTitle:        c.ParentTitle,
		})
	}
	return out
}

func newItems(in []model.Item) []itemResp {
	var out []itemResp
	for _, it := range in {
		out = append(out, itemResp{
			ID:          it.ID,
			Title:       it.Title,
			Type:        string(it.Type),
			Priority:    string(it.Priority),
			DueDate:     response.NewDate(it.DueDate),
			ParentID:    it.ParentID,
			URL:         it.URL,
			CalendarURL: it.CalendarURL,
		})
	}
	return out
}

func newOptions(in []dispatcher.Option) []optionResp {
	var out []optionResp
	for _, o := range in {
		out = append(out, optionResp{Label: o.Label, Intent: string(o.Intent)})
	}
	return out
}
