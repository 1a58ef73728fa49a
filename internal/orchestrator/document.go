package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"project-assistant/internal/document"
	"project-assistant/internal/model"
	"project-assistant/internal/parser"
	"project-assistant/internal/prompt"
	"project-assistant/internal/retrieval"
	"project-assistant/internal/session"
	"project-assistant/pkg/log"
)

type directInput struct {
	FileName     string
	Text         string
	DetectedType model.DocumentType
	Instruction  string
}

// handleUpload parses the file, detects its type and parks it in a
// pending session until the user says what to do with it.
func (o *Orchestrator) handleUpload(ctx context.Context, in Input, project model.ProjectContext) Output {
	doc, parsed := o.parse(ctx, in.File)
	det := o.documents.DetectType(ctx, document.DetectInput{FileName: in.File.Name, Text: doc.Text})

	sess := o.sessions.Create(ctx, session.CreateInput{
		ConversationID: in.ConversationID,
		ProjectID:      project.ID,
		ParsedText:     doc.Text,
		DetectedType:   det.Type,
		Summary:        det.Summary,
		File: model.FileMetadata{
			Name:       in.File.Name,
			Size:       in.File.Size,
			MimeType:   in.File.MimeType,
			ParserType: string(doc.Format),
		},
	})
	o.index(ctx, sess.SessionID, project.ID, in.File.Name, doc.Text)

	var reply []string
	reply = append(reply, fmt.Sprintf(msgUploaded, in.File.Name, documentTypeLabels[string(det.Type)]))
	if det.Summary != "" {
		reply = append(reply, fmt.Sprintf(msgUploadSummary, det.Summary))
	}
	if !parsed {
		reply = append(reply, msgParseFailed)
	}
	reply = append(reply, msgAskInstruction)

	o.l.Infof(ctx, "%s: %s pending as %s (session %s)", LogPrefixUpload, in.File.Name, det.Type, sess.SessionID)
	return Output{
		Branch:             BranchPendingSession,
		ReplyText:          strings.Join(reply, "\n"),
		SessionID:          sess.SessionID,
		DocumentType:       det.Type,
		SuggestedFollowUps: prompt.SuggestedFollowUps(det.Type),
	}
}

// handleFileWithInstruction extracts from a file that arrived with its
// instruction. Any pending document is discarded.
func (o *Orchestrator) handleFileWithInstruction(ctx context.Context, in Input, text string, project model.ProjectContext, now time.Time) Output {
	if o.sessions.Clear(ctx, in.ConversationID) {
		o.l.Infof(ctx, "%s: pending session superseded by %s", LogPrefixDirect, in.File.Name)
	}
	doc, _ := o.parse(ctx, in.File)
	o.index(ctx, uuid.NewString(), project.ID, in.File.Name, doc.Text)

	return o.handleDirect(ctx, directInput{
		FileName:     in.File.Name,
		Text:         doc.Text,
		DetectedType: prompt.DetectTypeByKeywords(in.File.Name, doc.Text),
		Instruction:  text,
	}, project, now)
}

func (o *Orchestrator) handleDirect(ctx context.Context, in directInput, project model.ProjectContext, now time.Time) Output {
	a, err := o.documents.AnalyzeDirect(ctx, document.AnalyzeInput{
		FileName:     in.FileName,
		Text:         in.Text,
		DetectedType: in.DetectedType,
		Instruction:  in.Instruction,
		Project:      project,
		Now:          now,
	})
	if err != nil {
		return o.analysisFailed(ctx, BranchDirect, err)
	}
	return o.emit(ctx, BranchDirect, a, project, msgSourceMessage)
}

// handleFollowUp applies an instruction to the pending document. The
// session is kept when the instruction is chat or extraction fails, so the
// user can try again; it is consumed once a batch is emitted.
func (o *Orchestrator) handleFollowUp(ctx context.Context, sess session.PendingSession, text string, project model.ProjectContext, now time.Time) Output {
	a, err := o.documents.AnalyzeFollowUp(ctx, document.AnalyzeInput{
		FileName:     sess.File.Name,
		Text:         sess.ParsedText,
		DetectedType: sess.DetectedType,
		Instruction:  text,
		Project:      project,
		Now:          now,
	})
	if err != nil {
		return o.analysisFailed(ctx, BranchFollowUp, err)
	}

	if a.Category == prompt.FollowUpChat {
		o.l.Infof(ctx, "%s: instruction is chat, session %s kept", LogPrefixFollowUp, sess.SessionID)
		return o.handleChat(ctx, text, pendingContext(sess), project, now)
	}

	o.sessions.Consume(ctx, sess.ConversationID, sess.ProjectID)
	return o.emit(ctx, BranchFollowUp, a, project, msgSourceDocument)
}

// emit returns a batch. Hierarchical batches are created right away,
// since children can only be linked once their parents exist. Flat
// batches wait for the user to confirm them through Commit.
func (o *Orchestrator) emit(ctx context.Context, branch Branch, a document.Analysis, project model.ProjectContext, source string) Output {
	out := Output{
		Branch:           branch,
		CandidateItems:   a.Items,
		SourceArtifactID: a.SourceArtifactID,
	}
	if !a.Hierarchical() {
		out.ReplyText = fmt.Sprintf(msgCandidates, source, len(a.Items))
		return out
	}

	res := o.documents.Materialize(ctx, document.MaterializeInput{
		ProjectID:        project.ID,
		SourceArtifactID: a.SourceArtifactID,
		Items:            a.Items,
	})
	out.Created = res.Created
	out.Failures = len(res.Failures)
	out.Unlinked = res.Unlinked
	out.ReplyText = createdReply(res)
	if len(res.Created) == 0 && len(res.Failures) > 0 {
		out.ErrorKind = ErrorKindStoreWrite
	}
	return out
}

// Commit persists candidates the user confirmed.
func (o *Orchestrator) Commit(ctx context.Context, in CommitInput) (document.MaterializeResult, error) {
	if len(in.Items) == 0 {
		return document.MaterializeResult{}, ErrNothingToCommit
	}
	if in.ConversationID != "" {
		ctx = log.WithConversationID(ctx, in.ConversationID)
		unlock := o.sessions.Lock(in.ConversationID)
		defer unlock()
	}
	if in.SourceArtifactID == "" {
		in.SourceArtifactID = uuid.NewString()
	}

	items := make([]model.CandidateItem, 0, len(in.Items))
	for _, c := range in.Items {
		c.Title = model.TruncateTitle(c.Title)
		if c.Title == "" || !c.Type.Valid() {
			o.l.Warnf(ctx, "%s: skipping invalid candidate %q (%s)", LogPrefixCommit, c.Title, c.Type)
			continue
		}
		c.Priority = model.ParsePriority(string(c.Priority))
		items = append(items, c)
	}
	if len(items) == 0 {
		return document.MaterializeResult{}, ErrNothingToCommit
	}

	return o.documents.Materialize(ctx, document.MaterializeInput{
		ProjectID:        in.ProjectID,
		SourceArtifactID: in.SourceArtifactID,
		Items:            items,
	}), nil
}

func (o *Orchestrator) analysisFailed(ctx context.Context, branch Branch, err error) Output {
	if errors.Is(err, document.ErrNoItems) {
		return Output{Branch: branch, ReplyText: msgNoItems, ErrorKind: ErrorKindNoItems}
	}
	reply, kind := errorReply(err)
	o.l.Warnf(ctx, "%s: %s analysis failed (%s): %v", LogPrefixHandle, branch, kind, err)
	return Output{Branch: branch, ReplyText: reply, ErrorKind: kind}
}

// parse reads the upload. A failure yields an empty document, so the
// flow continues with only the file name to go on.
func (o *Orchestrator) parse(ctx context.Context, f *FileUpload) (parser.Document, bool) {
	if f.Reader == nil {
		return parser.Document{Name: f.Name}, false
	}
	doc, err := o.parser.Parse(f.Name, f.Reader)
	if err != nil {
		o.l.Warnf(ctx, "%s: %s could not be parsed: %v", LogPrefixUpload, f.Name, err)
		return parser.Document{Name: f.Name, Format: doc.Format}, false
	}
	return doc, true
}

func (o *Orchestrator) index(ctx context.Context, id, projectID, source, text string) {
	o.retrieval.Index(ctx, retrieval.Document{
		ID:        id,
		ProjectID: projectID,
		Source:    source,
		Text:      text,
	})
}

func createdReply(res document.MaterializeResult) string {
	var parts []string
	if len(res.Failures) > 0 {
		parts = append(parts, fmt.Sprintf(msgCreatedFailures, len(res.Created), len(res.Failures)))
	} else {
		parts = append(parts, fmt.Sprintf(msgCreated, len(res.Created)))
	}
	if res.Unlinked > 0 {
		parts = append(parts, fmt.Sprintf(msgUnlinked, res.Unlinked))
	}
	return strings.Join(parts, "\n")
}

func pendingContext(sess session.PendingSession) string {
	if strings.TrimSpace(sess.ParsedText) == "" {
		return ""
	}
	excerpt := []rune(sess.ParsedText)
	if len(excerpt) > pendingExcerptRunes {
		excerpt = excerpt[:pendingExcerptRunes]
	}
	return fmt.Sprintf(msgPendingContext, sess.File.Name, documentTypeLabels[string(sess.DetectedType)]) + "\n" + string(excerpt)
}
