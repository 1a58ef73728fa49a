package telegram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"project-assistant/internal/document"
	"project-assistant/internal/model"
	"project-assistant/internal/orchestrator"
	pkgTelegram "project-assistant/pkg/telegram"
)

func formatOutput(out orchestrator.Output) string {
	var b strings.Builder
	b.WriteString(out.ReplyText)

	if len(out.CandidateItems) > 0 {
		b.WriteString("\n")
		for i, c := range out.CandidateItems {
			fmt.Fprintf(&b, "\n%d. %s [%s/%s]", i+1, c.Title, c.Type, c.Priority)
			if c.TargetPath != "" {
				fmt.Fprintf(&b, " → %s", c.TargetPath)
			}
		}
		if len(out.Created) == 0 {
			b.WriteString("\n\n" + msgConfirmHint)
		}
	}

	writeItems(&b, out.Created)

	if len(out.SuggestedFollowUps) > 0 {
		b.WriteString("\n\n" + msgSuggestions)
		for _, s := range out.SuggestedFollowUps {
			b.WriteString("\n• " + s)
		}
	}

	return clip(b.String())
}

func formatCommit(res document.MaterializeResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, msgConfirmed, len(res.Created))
	if len(res.Failures) > 0 {
		fmt.Fprintf(&b, msgConfirmFailures, len(res.Failures))
	}
	writeItems(&b, res.Created)
	return clip(b.String())
}

func writeItems(b *strings.Builder, items []model.Item) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n")
	for i, it := range items {
		fmt.Fprintf(b, "\n%d. %s", i+1, it.Title)
		if it.URL != "" {
			fmt.Fprintf(b, "\n   📝 %s", it.URL)
		}
		if it.CalendarURL != "" {
			fmt.Fprintf(b, "\n   📅 %s", it.CalendarURL)
		}
	}
}

// clip keeps a reply within the sendMessage limit.
func clip(s string) string {
	if utf8.RuneCountInString(s) <= pkgTelegram.MaxMessageRunes {
		return s
	}
	r := []rune(s)
	return string(r[:pkgTelegram.MaxMessageRunes-1]) + "…"
}
