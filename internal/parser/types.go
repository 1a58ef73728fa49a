package parser

// Format names the parser that produced a Document.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatCSV      Format = "csv"
	FormatText     Format = "text"
)

// Document is the plain-text rendition of an upload.
type Document struct {
	Name     string
	Format   Format
	Text     string
	Sections []Section
}

// Section is a heading with the text under it. Level 0 is text before
// the first heading; pages use Page instead of a heading level.
type Section struct {
	Heading string
	Level   int
	Page    int
	Text    string
}
