package prompt

import (
	"fmt"
	"strings"

	"project-assistant/internal/model"
)

// BuildClassificationPrompt returns the system prompt and the few-shot
// block for intent classification. It is pure: the same Context always
// yields the same prompts.
func BuildClassificationPrompt(pc Context) (string, string) {
	team := "(none listed)"
	if len(pc.Team) > 0 {
		team = strings.Join(pc.Team, ", ")
	}
	system := fmt.Sprintf(classificationSystemTemplate,
		pc.Now.Format(dateLayout), pc.Now.Weekday().String(), projectName(pc), team)
	return system, classificationFewShot
}

// SelectDocumentPrompt picks an extraction template by scanning
// DocumentRules over the instruction plus the first 500 runes of content.
// This is keyword heuristics, not semantic classification.
func SelectDocumentPrompt(instruction, contentSample string, pc Context) (TemplateID, string) {
	id := MatchDocumentRule(instruction, contentSample)
	return id, ExtractionPrompt(id, pc)
}

// MatchDocumentRule returns the template of the first matching rule, or
// TemplateGeneric.
func MatchDocumentRule(instruction, contentSample string) TemplateID {
	haystack := strings.ToLower(instruction + "\n" + prefixRunes(contentSample, contentSampleRunes))
	for _, r := range DocumentRules {
		if containsAny(haystack, r.Keywords) {
			return r.Template
		}
	}
	return TemplateGeneric
}

// ExtractionPrompt renders the system prompt for a template.
func ExtractionPrompt(id TemplateID, pc Context) string {
	instr, ok := templateInstructions[id]
	if !ok {
		instr = templateInstructions[TemplateGeneric]
	}

	var b strings.Builder
	fmt.Fprintf(&b, extractionHeader, projectName(pc), pc.Now.Format(dateLayout))
	b.WriteString("\n\n")
	b.WriteString(instr)
	b.WriteString("\n\n")
	b.WriteString(extractionOutputContract)

	if !id.Hierarchical() && len(pc.Nodes) > 0 {
		b.WriteString("\n\n")
		b.WriteString(nodeListHeader)
		for _, n := range pc.Nodes {
			fmt.Fprintf(&b, "\n- %s | %s", n.ID, n.Path)
		}
	}
	return b.String()
}

// MatchFollowUp routes an instruction given while a document is pending.
func MatchFollowUp(instruction string) FollowUpCategory {
	haystack := strings.ToLower(instruction)
	for _, r := range FollowUpRules {
		if containsAny(haystack, r.Keywords) {
			return r.Category
		}
	}
	return FollowUpChat
}

// DetectTypePrompt returns the system prompt for document type detection.
func DetectTypePrompt() string {
	return detectTypeSystem
}

// DetectTypeByKeywords is the fallback when the model cannot classify
// the document. The filename is checked with the content.
func DetectTypeByKeywords(filename, content string) model.DocumentType {
	haystack := strings.ToLower(filename + "\n" + prefixRunes(content, contentSampleRunes))
	for _, r := range TypeRules {
		if containsAny(haystack, r.Keywords) {
			return r.Type
		}
	}
	return model.DocOther
}

// ChatSystemPrompt returns the base system prompt for conversational replies.
func ChatSystemPrompt(pc Context) string {
	return fmt.Sprintf(chatSystemTemplate, projectName(pc), pc.Now.Format(dateLayout))
}

// SuggestedFollowUps lists instructions offered after an upload.
func SuggestedFollowUps(t model.DocumentType) []string {
	switch t {
	case model.DocFeatureList:
		return []string{"建立功能模組 (create feature modules)", "分析任務 (extract tasks)", "整理決議與待確認事項 (decisions and pending items)"}
	case model.DocWBS:
		return []string{"建立功能模組 (create feature modules)", "建立工作包 (create work packages)", "分析任務 (extract tasks)"}
	case model.DocMeetingNotes:
		return []string{"整理會議決議與待辦 (extract decisions and action items)", "分析任務 (extract tasks)", "整理待確認事項 (extract pending items)"}
	default:
		return []string{"智慧分析 (smart analysis)", "分析任務 (extract tasks)", "建立功能模組 (create feature modules)"}
	}
}

// LooksLikeDocumentRequest is the smart-analysis heuristic that routes a
// plain message straight to document extraction. It trades recall for
// precision and is not validated against labelled data: it requires either
// an explicit analysis phrase on multi-line text, or document markers
// together with at least three list lines.
func LooksLikeDocumentRequest(text string) bool {
	lower := strings.ToLower(text)
	lines := nonEmptyLines(text)

	if containsAny(lower, smartAnalysisKeywords) && len(lines) >= 2 {
		return true
	}
	if containsAny(lower, contentShapeMarkers) && countListLines(lines) >= 3 {
		return true
	}
	return false
}

func projectName(pc Context) string {
	if pc.ProjectName == "" {
		return "(unnamed project)"
	}
	return pc.ProjectName
}

func containsAny(haystack string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(haystack, k) {
			return true
		}
	}
	return false
}

func prefixRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func countListLines(lines []string) int {
	n := 0
	for _, l := range lines {
		if isListLine(l) {
			n++
		}
	}
	return n
}

func isListLine(l string) bool {
	switch {
	case strings.HasPrefix(l, "- "), strings.HasPrefix(l, "* "), strings.HasPrefix(l, "• "):
		return true
	}
	// "1." / "1)" / "1、"
	i := 0
	for i < len(l) && l[i] >= '0' && l[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(l) {
		return false
	}
	rest := l[i:]
	return strings.HasPrefix(rest, ".") || strings.HasPrefix(rest, ")") || strings.HasPrefix(rest, "、")
}
