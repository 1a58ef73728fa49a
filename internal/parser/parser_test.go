package parser

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
)

func TestForFile(t *testing.T) {
	tcs := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{name: "meeting_notes.pdf", want: FormatPDF},
		{name: "WBS.DOCX", want: FormatDOCX},
		{name: "features.md", want: FormatMarkdown},
		{name: "page.htm", want: FormatHTML},
		{name: "wbs.csv", want: FormatCSV},
		{name: "notes.txt", want: FormatText},
		{name: "image.png", wantErr: true},
		{name: "noext", wantErr: true},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			p, err := ForFile(tc.name)
			if tc.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
				}
				if IsSupported(tc.name) {
					t.Error("IsSupported disagrees with ForFile")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := p.(*fileParser).format; got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestParseText(t *testing.T) {
	doc, err := Auto{}.Parse("notes.txt", strings.NewReader("第一段\n第二行\n\n\n第二段\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "第一段\n第二行\n\n第二段" {
		t.Errorf("unexpected text %q", doc.Text)
	}
	if doc.Format != FormatText || doc.Name != "notes.txt" {
		t.Errorf("unexpected metadata %+v", doc)
	}
}

func TestParseMarkdown(t *testing.T) {
	src := "# 會員系統\n\n說明文字 **重點**\n\n## 登入\n\n- SSO 登入\n- 忘記密碼\n  - 寄送重設信\n\n```\ncode\n```\n"
	doc, err := Auto{}.Parse("features.md", strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"# 會員系統", "說明文字 重點", "## 登入", "- SSO 登入", "  - 寄送重設信", "code"} {
		if !strings.Contains(doc.Text, want) {
			t.Errorf("expected %q in:\n%s", want, doc.Text)
		}
	}
	if len(doc.Sections) != 2 || doc.Sections[1].Heading != "登入" || doc.Sections[1].Level != 2 {
		t.Errorf("unexpected sections %+v", doc.Sections)
	}
}

func TestParseHTML(t *testing.T) {
	src := `<html><head><title>T</title><style>p{}</style></head><body>
<nav>menu</nav><h1>Meeting</h1><p>Attendees:  Amy,
Bob</p><ul><li>Decide DB</li></ul><script>x()</script></body></html>`
	doc, err := Auto{}.Parse("page.html", strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "# Meeting\n\nAttendees: Amy, Bob\n\n- Decide DB"
	if doc.Text != want {
		t.Errorf("got %q, want %q", doc.Text, want)
	}
}

func TestParseCSV(t *testing.T) {
	src := "編號,工作項目,負責人\n1.1,需求訪談,Amy\n1.2,系統設計,\n"
	doc, err := Auto{}.Parse("wbs.csv", strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"## Rows 2-3", "- 編號: 1.1, 工作項目: 需求訪談, 負責人: Amy", "- 編號: 1.2, 工作項目: 系統設計"} {
		if !strings.Contains(doc.Text, want) {
			t.Errorf("expected %q in:\n%s", want, doc.Text)
		}
	}
}

func TestParseDOCX(t *testing.T) {
	w := docx.New().WithDefaultTheme()
	h := w.AddParagraph()
	h.AddText("會議紀錄")
	h.Style("Heading1")
	w.AddParagraph().AddText("決議：採用 PostgreSQL")

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("failed to build docx: %v", err)
	}

	doc, err := Auto{}.Parse("minutes.docx", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"會議紀錄", "決議：採用 PostgreSQL"} {
		if !strings.Contains(doc.Text, want) {
			t.Errorf("expected %q in %q", want, doc.Text)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tcs := []struct {
		name  string
		input string
		want  error
	}{
		{name: "broken.pdf", input: "not a pdf"},
		{name: "broken.docx", input: "not a zip"},
		{name: "empty.txt", input: "   \n\n", want: ErrEmptyDocument},
		{name: "photo.jpg", input: "x", want: ErrUnsupportedFormat},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Auto{}.Parse(tc.name, strings.NewReader(tc.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCapRunes(t *testing.T) {
	s := strings.Repeat("字", 10)
	if got := capRunes(s, 4); got != "字字字字" {
		t.Errorf("unexpected %q", got)
	}
	if got := capRunes("abc", 4); got != "abc" {
		t.Errorf("unexpected %q", got)
	}
}
