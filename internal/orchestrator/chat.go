package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"project-assistant/internal/classifier"
	"project-assistant/internal/dispatcher"
	"project-assistant/internal/document"
	"project-assistant/internal/model"
	"project-assistant/internal/prompt"
	"project-assistant/internal/retrieval"
	"project-assistant/pkg/llmprovider"
)

var intentItemTypes = map[classifier.Intent]model.ItemType{
	classifier.IntentCreateTask:     model.ItemTask,
	classifier.IntentRecordDecision: model.ItemDecision,
	classifier.IntentMarkPending:    model.ItemPending,
	classifier.IntentChangeRequest:  model.ItemChangeRequest,
}

// handleChat classifies text and acts on the dispatcher's decision.
// extraContext, when set, is added to the chat system prompt.
func (o *Orchestrator) handleChat(ctx context.Context, text, extraContext string, project model.ProjectContext, now time.Time) Output {
	pc := document.PromptContext(project, now)

	result, err := o.classifier.Classify(ctx, text, pc)
	if err != nil {
		reply, kind := errorReply(err)
		o.l.Warnf(ctx, "%s: classification failed (%s): %v", LogPrefixChat, kind, err)
		return Output{Branch: BranchChat, ReplyText: reply, ErrorKind: kind, Intent: result.Intent}
	}

	dec := o.dispatcher.Dispatch(result)
	out := Output{
		Branch:     BranchChat,
		Intent:     dec.Intent,
		Confidence: dec.Confidence,
		Mode:       dec.Mode,
		Options:    dec.Options,
	}
	o.l.Infof(ctx, "%s: intent=%s confidence=%.2f mode=%s", LogPrefixChat, dec.Intent, dec.Confidence, dec.Mode)

	switch {
	case dec.Greeting:
		out.ReplyText = dec.Message

	case dec.ClarificationNeeded:
		out.ReplyText = dec.Message
		if _, ok := intentItemTypes[dec.Intent]; ok && dec.Mode == dispatcher.ModeConfirm {
			out.CandidateItems = []model.CandidateItem{o.candidateFromInfo(ctx, dec, text, now)}
		}

	case dec.ReadyForAction:
		return o.autoExecute(ctx, out, dec, text, project, now)

	default:
		return o.chatReply(ctx, out, text, extraContext, pc, project)
	}
	return out
}

// autoExecute persists the single item a confident classification asked for.
func (o *Orchestrator) autoExecute(ctx context.Context, out Output, dec dispatcher.Decision, text string, project model.ProjectContext, now time.Time) Output {
	c := o.candidateFromInfo(ctx, dec, text, now)
	out.CandidateItems = []model.CandidateItem{c}
	out.SourceArtifactID = uuid.NewString()

	res := o.documents.Materialize(ctx, document.MaterializeInput{
		ProjectID:        project.ID,
		SourceArtifactID: out.SourceArtifactID,
		Items:            out.CandidateItems,
	})
	if len(res.Created) == 0 {
		out.ReplyText = msgAutoFailed
		out.ErrorKind = ErrorKindStoreWrite
		return out
	}

	out.Created = res.Created
	out.ReplyText = dec.Message
	if url := res.Created[0].URL; url != "" {
		out.ReplyText += "\n" + fmt.Sprintf(msgAutoCreated, url)
	}
	return out
}

// chatReply answers conversationally, grounded in retrieved snippets.
func (o *Orchestrator) chatReply(ctx context.Context, out Output, text, extraContext string, pc prompt.Context, project model.ProjectContext) Output {
	snippets := o.retrieval.Retrieve(ctx, text, project.ID, o.cfg.RetrievalThreshold)

	var system strings.Builder
	system.WriteString(prompt.ChatSystemPrompt(pc))
	system.WriteString(timeContext(pc.Now))
	if extraContext != "" {
		system.WriteString("\n\n")
		system.WriteString(extraContext)
	}
	if block := retrieval.ContextBlock(snippets); block != "" {
		system.WriteString("\n\n")
		system.WriteString(block)
	}

	resp, err := o.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemPrompt: system.String(),
		Messages:     []llmprovider.Message{llmprovider.UserMessage(text)},
		Temperature:  chatTemperature,
		MaxTokens:    chatMaxTokens,
	})
	if err != nil {
		reply, kind := errorReply(err)
		o.l.Warnf(ctx, "%s: chat reply failed (%s): %v", LogPrefixChat, kind, err)
		out.ReplyText = reply
		out.ErrorKind = kind
		return out
	}

	out.ReplyText = strings.TrimSpace(resp.Normalized.Text)
	out.Citations = snippets
	return out
}

// candidateFromInfo turns the classifier's extracted fields into one item.
func (o *Orchestrator) candidateFromInfo(ctx context.Context, dec dispatcher.Decision, text string, now time.Time) model.CandidateItem {
	info := dec.ExtractedInfo

	title := firstNonEmpty(info.Title, info.Decision, info.Change, info.BlockedBy)
	if title == "" {
		title, _, _ = strings.Cut(text, "\n")
	}

	var desc []string
	for _, f := range []struct{ label, value string }{
		{"", info.Description},
		{"理由", info.Rationale},
		{"卡在", info.BlockedBy},
		{"影響", info.Impact},
		{"負責人", info.Assignee},
	} {
		v := strings.TrimSpace(f.value)
		switch {
		case v == "" || v == title:
		case f.label == "":
			desc = append(desc, v)
		default:
			desc = append(desc, f.label+"："+v)
		}
	}

	c := model.CandidateItem{
		Title:              model.TruncateTitle(title),
		Description:        strings.Join(desc, "\n"),
		Type:               intentItemTypes[dec.Intent],
		Priority:           model.ParsePriority(info.Priority),
		RequirementSnippet: text,
		Confidence:         dec.Confidence,
	}
	if c.Type == "" {
		c.Type = model.ItemTask
	}
	if info.DueDate != "" && o.dateMath != nil {
		if due, err := o.dateMath.Parse(info.DueDate, now); err == nil {
			c.DueDate = &due
		} else {
			o.l.Debugf(ctx, "%s: ignoring due date %q: %v", LogPrefixChat, info.DueDate, err)
		}
	}
	return c
}

// errorReply explains a provider failure to the user.
func errorReply(err error) (string, ErrorKind) {
	switch {
	case errors.Is(err, llmprovider.ErrConfig):
		return msgNotConfigured, ErrorKindConfig
	case errors.Is(err, llmprovider.ErrTruncated):
		return msgTruncated, ErrorKindTruncated
	case errors.Is(err, llmprovider.ErrRefused):
		return msgRefused, ErrorKindRefused
	case errors.Is(err, llmprovider.ErrFiltered):
		return msgFiltered, ErrorKindFiltered
	default:
		return msgNetwork, ErrorKindNetwork
	}
}

// timeContext tells the model what today, this week and tomorrow are.
func timeContext(now time.Time) string {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	weekStart := now.AddDate(0, 0, -(weekday - 1))
	weekEnd := weekStart.AddDate(0, 0, 6)
	return fmt.Sprintf(timeContextTemplate,
		now.Format(dateLayout), now.Weekday().String(),
		weekStart.Format(dateLayout), weekEnd.Format(dateLayout),
		now.AddDate(0, 0, 1).Format(dateLayout))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
