package parser

import (
	"fmt"
	"strings"
)

// outline collects headings and paragraphs in document order.
type outline struct {
	secs []Section
	buf  strings.Builder
}

func (o *outline) heading(text string, level int) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	o.flush()
	o.secs = append(o.secs, Section{Heading: text, Level: level})
}

func (o *outline) page(n int, text string) {
	o.flush()
	o.secs = append(o.secs, Section{Page: n, Text: strings.TrimSpace(text)})
}

func (o *outline) text(t string) {
	t = strings.TrimSpace(t)
	if t == "" {
		return
	}
	if o.buf.Len() > 0 {
		o.buf.WriteString("\n\n")
	}
	o.buf.WriteString(t)
}

func (o *outline) flush() {
	t := o.buf.String()
	o.buf.Reset()
	if t == "" {
		return
	}
	if len(o.secs) == 0 {
		o.secs = append(o.secs, Section{})
	}
	last := &o.secs[len(o.secs)-1]
	if last.Text != "" {
		last.Text += "\n\n"
	}
	last.Text += t
}

func (o *outline) sections() []Section {
	o.flush()
	return o.secs
}

// render keeps heading depth as markdown markers so prompts can see the
// document structure.
func (o *outline) render() string {
	var sb strings.Builder
	for _, s := range o.sections() {
		if s.Heading != "" {
			if sb.Len() > 0 {
				sb.WriteString("\n\n")
			}
			fmt.Fprintf(&sb, "%s %s", strings.Repeat("#", max(s.Level, 1)), s.Heading)
		}
		if s.Text != "" {
			if sb.Len() > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}
