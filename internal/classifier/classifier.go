package classifier

import (
	"context"
	"errors"
	"strings"

	"project-assistant/internal/prompt"
	"project-assistant/pkg/llmprovider"
)

// Classify determines the intent of input. Unparseable or invalid model
// output yields ParseErrorResult with a nil error. Other provider failures
// (config, network, truncated, refused, filtered) also yield
// ParseErrorResult but return the error so the caller can explain it.
func (c *IntentClassifier) Classify(ctx context.Context, input string, pc prompt.Context) (Result, error) {
	system, fewShot := prompt.BuildClassificationPrompt(pc)

	var raw rawResult
	_, err := c.llm.GenerateJSON(ctx, &llmprovider.Request{
		SystemPrompt: system + "\n\n" + fewShot,
		Messages:     []llmprovider.Message{llmprovider.UserMessage(input)},
		Temperature:  ClassifierTemperature,
		MaxTokens:    ClassifierMaxTokens,
	}, &raw)
	if err != nil {
		if errors.Is(err, llmprovider.ErrMalformedResponse) {
			c.l.Warnf(ctx, "%s: unusable model output, downgrading to ambiguous: %v", LogPrefixClassify, err)
			return ParseErrorResult(), nil
		}
		c.l.Errorf(ctx, "%s: LLM call failed: %v", LogPrefixClassify, err)
		return ParseErrorResult(), err
	}

	result, ok := validate(raw)
	if !ok {
		c.l.Warnf(ctx, "%s: invalid classification intent=%q confidence=%v", LogPrefixClassify, raw.Intent, raw.Confidence)
		return ParseErrorResult(), nil
	}

	c.l.Infof(ctx, "%s: classified as %s (confidence: %.2f)", LogPrefixClassify, result.Intent, result.Confidence)
	return result, nil
}

func validate(raw rawResult) (Result, bool) {
	intent := Intent(strings.ToLower(strings.TrimSpace(raw.Intent)))
	if !intent.Valid() {
		return Result{}, false
	}
	if raw.Confidence == nil || *raw.Confidence < 0 || *raw.Confidence > 1 {
		return Result{}, false
	}
	return Result{
		Intent:        intent,
		Confidence:    *raw.Confidence,
		ExtractedInfo: raw.ExtractedInfo,
		Reasoning:     raw.Reasoning,
	}, true
}
