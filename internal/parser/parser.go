package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Parser turns an uploaded file into text.
type Parser interface {
	Parse(name string, r io.Reader) (Document, error)
}

// MaxTextRunes caps Document.Text so one upload cannot flood a prompt.
const MaxTextRunes = 120_000

var extensions = map[string]Format{
	".pdf":      FormatPDF,
	".docx":     FormatDOCX,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".csv":      FormatCSV,
	".txt":      FormatText,
}

type formatParser interface {
	parse(r io.Reader) (*outline, error)
}

// ForFile returns the parser for a filename's extension.
func ForFile(name string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(name))
	format, ok := extensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return &fileParser{format: format, impl: implFor(format)}, nil
}

// IsSupported reports whether ForFile accepts name.
func IsSupported(name string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

func implFor(f Format) formatParser {
	switch f {
	case FormatPDF:
		return pdfParser{}
	case FormatDOCX:
		return docxParser{}
	case FormatMarkdown:
		return markdownParser{}
	case FormatHTML:
		return htmlParser{}
	case FormatCSV:
		return csvParser{}
	default:
		return textParser{}
	}
}

type fileParser struct {
	format Format
	impl   formatParser
}

func (p *fileParser) Parse(name string, r io.Reader) (Document, error) {
	o, err := p.impl.parse(r)
	if err != nil {
		return Document{}, fmt.Errorf("parse %s: %w", p.format, err)
	}

	doc := Document{
		Name:     name,
		Format:   p.format,
		Sections: o.sections(),
	}
	doc.Text = capRunes(o.render(), MaxTextRunes)
	if strings.TrimSpace(doc.Text) == "" {
		return doc, ErrEmptyDocument
	}
	return doc, nil
}

// Auto picks the parser from the filename on every call.
type Auto struct{}

// Parse implements Parser.
func (Auto) Parse(name string, r io.Reader) (Document, error) {
	p, err := ForFile(name)
	if err != nil {
		return Document{Name: name}, err
	}
	return p.Parse(name, r)
}

func capRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
