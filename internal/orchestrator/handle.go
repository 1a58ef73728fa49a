package orchestrator

import (
	"context"
	"strings"

	"project-assistant/internal/model"
	"project-assistant/internal/prompt"
	"project-assistant/pkg/log"
)

// Handle processes one input event. The branches are exclusive and
// checked in order:
//
//	file, no text         -> new pending session (supersedes any old one)
//	file and text         -> direct extraction over the file
//	active session, text  -> follow-up on the pending document
//	document-shaped text  -> direct extraction over the text
//	anything else         -> classification and chat
//
// Provider failures become explanatory replies with ErrorKind set; the
// returned error is reserved for invalid input.
func (o *Orchestrator) Handle(ctx context.Context, in Input) (Output, error) {
	if strings.TrimSpace(in.ConversationID) == "" {
		return Output{}, ErrMissingConversation
	}
	text := strings.TrimSpace(in.Text)
	if in.File == nil && text == "" {
		return Output{}, ErrEmptyInput
	}

	ctx = log.WithConversationID(ctx, in.ConversationID)
	unlock := o.sessions.Lock(in.ConversationID)
	defer unlock()

	project := o.loadHierarchy(ctx, in.Project)
	now := o.now().In(o.cfg.Location)

	if in.File != nil {
		if text == "" {
			return o.handleUpload(ctx, in, project), nil
		}
		return o.handleFileWithInstruction(ctx, in, text, project, now), nil
	}

	if sess, ok := o.sessions.Active(ctx, in.ConversationID, project.ID); ok {
		return o.handleFollowUp(ctx, sess, text, project, now), nil
	}

	// Keyword heuristic, not a classifier: it favours precision and can
	// be switched off in config.
	if o.cfg.SmartAnalysisEnabled && prompt.LooksLikeDocumentRequest(text) {
		o.l.Infof(ctx, "%s: message looks like a document, extracting directly", LogPrefixHandle)
		return o.handleDirect(ctx, directInput{Text: text, Instruction: text}, project, now), nil
	}

	return o.handleChat(ctx, text, "", project, now), nil
}

// CancelPending drops the pending document of a conversation.
func (o *Orchestrator) CancelPending(ctx context.Context, conversationID string) bool {
	ctx = log.WithConversationID(ctx, conversationID)
	unlock := o.sessions.Lock(conversationID)
	defer unlock()
	return o.sessions.Clear(ctx, conversationID)
}

// loadHierarchy fills in the project's hierarchy from the item store when
// the caller did not provide one. Failures leave it empty.
func (o *Orchestrator) loadHierarchy(ctx context.Context, project model.ProjectContext) model.ProjectContext {
	if len(project.Hierarchy) > 0 || project.ID == "" || o.items == nil {
		return project
	}
	nodes, err := o.items.Hierarchy(ctx, project.ID)
	if err != nil {
		o.l.Warnf(ctx, "%s: hierarchy of project %s unavailable: %v", LogPrefixHandle, project.ID, err)
		return project
	}
	project.Hierarchy = nodes
	return project
}
