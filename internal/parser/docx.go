package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/fumiama/go-docx"
)

type docxParser struct{}

func (docxParser) parse(r io.Reader) (*outline, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc, err := docx.Parse(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, err
	}

	o := &outline{}
	for _, it := range doc.Document.Body.Items {
		switch el := it.(type) {
		case *docx.Paragraph:
			text := paragraphText(el)
			if level := docxHeadingLevel(el); level > 0 {
				o.heading(text, level)
				continue
			}
			o.text(text)
		case *docx.Table:
			o.text(tableText(el))
		}
	}
	return o, nil
}

func docxHeadingLevel(p *docx.Paragraph) int {
	if p.Properties == nil || p.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(p.Properties.Style.Val, " ", ""))
	if rest, ok := strings.CutPrefix(style, "heading"); ok && len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
		return int(rest[0] - '0')
	}
	if style == "title" {
		return 1
	}
	return 0
}

func paragraphText(p *docx.Paragraph) string {
	var sb strings.Builder
	for _, child := range p.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				sb.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// tableText flattens a table one row per line, cells separated by " | ".
func tableText(t *docx.Table) string {
	var sb strings.Builder
	for _, row := range t.TableRows {
		cells := make([]string, 0, len(row.TableCells))
		for _, cell := range row.TableCells {
			var parts []string
			for _, p := range cell.Paragraphs {
				if s := paragraphText(p); s != "" {
					parts = append(parts, s)
				}
			}
			cells = append(cells, strings.Join(parts, " "))
		}
		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString("\n")
	}
	return sb.String()
}
