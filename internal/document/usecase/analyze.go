package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"project-assistant/internal/document"
	"project-assistant/internal/model"
	"project-assistant/internal/prompt"
	"project-assistant/pkg/llmprovider"
)

type rawBatch struct {
	Items []rawItem `json:"items"`
}

type rawItem struct {
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	Type               string  `json:"type"`
	Priority           string  `json:"priority"`
	DueDate            string  `json:"due_date"`
	TargetNodeID       *string `json:"target_node_id"`
	RequirementSnippet string  `json:"requirement_snippet"`
	Confidence         float64 `json:"confidence"`
	ParentTitle        string  `json:"parent_title"`
}

func (uc *implUseCase) AnalyzeFollowUp(ctx context.Context, input document.AnalyzeInput) (document.Analysis, error) {
	if strings.TrimSpace(input.Instruction) == "" {
		return document.Analysis{}, document.ErrEmptyInstruction
	}

	category := prompt.MatchFollowUp(input.Instruction)
	uc.l.Infof(ctx, "%s: instruction routed to %s", LogPrefixFollowUp, category)

	var id prompt.TemplateID
	switch category {
	case prompt.FollowUpFeatureModules:
		id = prompt.TemplateFeatureModules
	case prompt.FollowUpSmartAnalysis:
		id = selectTemplate(input)
	default:
		return document.Analysis{Category: prompt.FollowUpChat}, nil
	}

	a, err := uc.extract(ctx, id, input, LogPrefixFollowUp)
	a.Category = category
	return a, err
}

func (uc *implUseCase) AnalyzeDirect(ctx context.Context, input document.AnalyzeInput) (document.Analysis, error) {
	id := selectTemplate(input)
	a, err := uc.extract(ctx, id, input, LogPrefixDirect)
	a.Category = prompt.FollowUpSmartAnalysis
	return a, err
}

// selectTemplate applies the keyword rules and, when they find nothing,
// the template that fits the detected document type.
func selectTemplate(input document.AnalyzeInput) prompt.TemplateID {
	id := prompt.MatchDocumentRule(input.Instruction, input.Text)
	if id != prompt.TemplateGeneric {
		return id
	}
	switch input.DetectedType {
	case model.DocFeatureList:
		return prompt.TemplateFeatureModules
	case model.DocWBS:
		return prompt.TemplateWBS
	case model.DocMeetingNotes:
		return prompt.TemplateMeetingNotes
	}
	return prompt.TemplateGeneric
}

func (uc *implUseCase) extract(ctx context.Context, id prompt.TemplateID, input document.AnalyzeInput, prefix string) (document.Analysis, error) {
	now := input.Now
	if now.IsZero() {
		now = uc.now()
	}
	a := document.Analysis{Template: id}

	var batch rawBatch
	_, err := uc.llm.GenerateJSON(ctx, &llmprovider.Request{
		SystemPrompt: prompt.ExtractionPrompt(id, document.PromptContext(input.Project, now)),
		Messages:     []llmprovider.Message{llmprovider.UserMessage(extractionInput(input))},
		Temperature:  extractTemperature,
		MaxTokens:    extractMaxTokens,
	}, &batch)
	if err != nil {
		uc.l.Errorf(ctx, "%s: extraction with template %s failed: %v", prefix, id, err)
		return a, fmt.Errorf("extract %s: %w", id, err)
	}

	a.Items, a.Dropped = uc.normalize(ctx, batch.Items, id, input.Project.Hierarchy, now)
	if len(a.Items) == 0 {
		uc.l.Warnf(ctx, "%s: template %s produced no usable items (dropped %d)", prefix, id, a.Dropped)
		return a, document.ErrNoItems
	}

	a.SourceArtifactID = uc.newID()
	uc.l.Infof(ctx, "%s: template %s produced %d items (dropped %d), artifact %s",
		prefix, id, len(a.Items), a.Dropped, a.SourceArtifactID)
	return a, nil
}

func extractionInput(input document.AnalyzeInput) string {
	var b strings.Builder
	if input.Instruction != "" {
		fmt.Fprintf(&b, "Instruction: %s\n", strings.TrimSpace(input.Instruction))
	}
	if input.FileName != "" {
		fmt.Fprintf(&b, "File: %s\n", input.FileName)
	}
	b.WriteString("\n")
	if strings.TrimSpace(input.Text) == "" {
		b.WriteString("(The document text could not be read. Only the file name is known.)")
	} else {
		b.WriteString(input.Text)
	}
	return b.String()
}

func newArtifactID() string {
	return uuid.NewString()
}
