package usecase

import (
	"context"
	"fmt"
	"strings"

	"project-assistant/internal/document"
	"project-assistant/internal/model"
	"project-assistant/internal/prompt"
	"project-assistant/pkg/llmprovider"
)

type rawDetection struct {
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
	Summary    string  `json:"summary"`
}

func (uc *implUseCase) DetectType(ctx context.Context, input document.DetectInput) document.Detection {
	fallback := document.Detection{
		Type:     prompt.DetectTypeByKeywords(input.FileName, input.Text),
		Fallback: true,
	}
	if strings.TrimSpace(input.Text) == "" {
		uc.l.Infof(ctx, "%s: empty text for %q, using keywords: %s", LogPrefixDetect, input.FileName, fallback.Type)
		return fallback
	}

	var raw rawDetection
	_, err := uc.llm.GenerateJSON(ctx, &llmprovider.Request{
		SystemPrompt: prompt.DetectTypePrompt(),
		Messages: []llmprovider.Message{llmprovider.UserMessage(
			fmt.Sprintf("File: %s\n\n%s", input.FileName, headRunes(input.Text, detectSampleRunes)),
		)},
		Temperature: detectTemperature,
		MaxTokens:   detectMaxTokens,
	}, &raw)
	if err != nil {
		uc.l.Warnf(ctx, "%s: model detection failed, using keywords: %v", LogPrefixDetect, err)
		return fallback
	}

	t := matchDocumentType(raw.Type)
	if !t.Valid() {
		uc.l.Warnf(ctx, "%s: unknown type %q, using keywords", LogPrefixDetect, raw.Type)
		return fallback
	}

	uc.l.Infof(ctx, "%s: %q detected as %s (confidence: %.2f)", LogPrefixDetect, input.FileName, t, raw.Confidence)
	return document.Detection{
		Type:       t,
		Confidence: clamp01(raw.Confidence),
		Summary:    strings.TrimSpace(raw.Summary),
	}
}

// matchDocumentType accepts the model's label case-insensitively.
func matchDocumentType(s string) model.DocumentType {
	s = strings.TrimSpace(s)
	for _, t := range []model.DocumentType{model.DocFeatureList, model.DocWBS, model.DocMeetingNotes, model.DocOther} {
		if strings.EqualFold(s, string(t)) {
			return t
		}
	}
	return model.DocumentType(s)
}
