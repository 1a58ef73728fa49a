package memos

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"project-assistant/internal/item"
	"project-assistant/internal/model"
)

const (
	metaProject  = "project"
	metaType     = "type"
	metaPriority = "priority"
	metaDue      = "due"
	metaParent   = "parent"
	metaTarget   = "target"
	metaSource   = "source"
	metaCalendar = "calendar"
	dueLayout    = "2006-01-02"
)

var (
	metaLineRe = regexp.MustCompile(`^- (project|type|priority|due|parent|target|source|calendar): (.+)$`)
	tagUnsafe  = regexp.MustCompile(`[^A-Za-z0-9_\-]+`)
)

// itemBody holds everything stored in a memo's markdown.
type itemBody struct {
	Title       string
	Description string
	Snippet     string
	Meta        map[string]string
	Tags        []string
}

// projectTag is the tag that scopes memos to a project. It is lossy, so
// the raw id is kept in the project meta line as well.
func projectTag(projectID string) string {
	return "project/" + tagUnsafe.ReplaceAllString(projectID, "_")
}

func newBody(opt item.CreateOptions) itemBody {
	b := itemBody{
		Title:       opt.Title,
		Description: opt.Description,
		Snippet:     opt.RequirementSnippet,
		Meta: map[string]string{
			metaProject:  opt.ProjectID,
			metaType:     string(opt.Type),
			metaPriority: string(opt.Priority),
		},
		Tags: []string{projectTag(opt.ProjectID), "type/" + string(opt.Type)},
	}
	if opt.DueDate != nil {
		b.Meta[metaDue] = opt.DueDate.Format(dueLayout)
	}
	if opt.ParentID != nil {
		b.Meta[metaParent] = *opt.ParentID
	}
	if opt.TargetID != nil {
		b.Meta[metaTarget] = *opt.TargetID
	}
	if opt.SourceArtifactID != "" {
		b.Meta[metaSource] = opt.SourceArtifactID
	}
	return b
}

var metaOrder = []string{metaProject, metaType, metaPriority, metaDue, metaParent, metaTarget, metaSource, metaCalendar}

// render writes the memo markdown: title, description, snippet quote,
// meta list and tag line, each block separated by a blank line. Only the
// trailing blocks are read back as snippet, meta and tags, and description
// lines starting with '>' or '\' are escaped, so parseBody(b.render())
// returns b whatever the description contains.
func (b itemBody) render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n", b.Title)
	if d := strings.TrimSpace(b.Description); d != "" {
		sb.WriteString("\n")
		for _, line := range strings.Split(d, "\n") {
			sb.WriteString(escapeLine(line) + "\n")
		}
	}
	if s := strings.TrimSpace(b.Snippet); s != "" {
		sb.WriteString("\n")
		for _, line := range strings.Split(s, "\n") {
			fmt.Fprintf(&sb, "> %s\n", line)
		}
	}
	sb.WriteString("\n")
	for _, k := range metaOrder {
		if v := b.Meta[k]; v != "" {
			fmt.Fprintf(&sb, "- %s: %s\n", k, v)
		}
	}
	if len(b.Tags) > 0 {
		sb.WriteString("\n")
		for i, t := range b.Tags {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString("#" + t)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func escapeLine(line string) string {
	if strings.HasPrefix(line, ">") || strings.HasPrefix(line, `\`) {
		return `\` + line
	}
	return line
}

func unescapeLine(line string) string {
	if strings.HasPrefix(line, `\>`) || strings.HasPrefix(line, `\\`) {
		return line[1:]
	}
	return line
}

// parseBody reads the blocks render writes, from the end: an optional tag
// line, then the meta list, then the snippet quote. Whatever lies between
// the title and those blocks is description, taken verbatim.
func parseBody(content string) itemBody {
	b := itemBody{Meta: map[string]string{}}

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}

	start := 0
	for start < len(lines) && lines[start] == "" {
		start++
	}
	if start < len(lines) && strings.HasPrefix(lines[start], "## ") {
		b.Title = strings.TrimSpace(strings.TrimPrefix(lines[start], "## "))
		start++
	}

	end := len(lines)
	// lastBlock returns the non-blank run ending at end, after skipping
	// trailing blank lines. It is empty once only the title remains.
	lastBlock := func() (int, []string) {
		for end > start && lines[end-1] == "" {
			end--
		}
		from := end
		for from > start && lines[from-1] != "" {
			from--
		}
		return from, lines[from:end]
	}

	if from, block := lastBlock(); len(block) == 1 && isTagLine(block[0]) {
		for _, f := range strings.Fields(block[0]) {
			b.Tags = append(b.Tags, strings.TrimPrefix(f, "#"))
		}
		end = from
	}
	if from, block := lastBlock(); len(block) > 0 && all(block, metaLineRe.MatchString) {
		for _, line := range block {
			m := metaLineRe.FindStringSubmatch(line)
			b.Meta[m[1]] = strings.TrimSpace(m[2])
		}
		end = from
	}
	if from, block := lastBlock(); len(block) > 0 && all(block, isQuoteLine) {
		snippet := make([]string, len(block))
		for i, line := range block {
			snippet[i] = strings.TrimPrefix(strings.TrimPrefix(line, ">"), " ")
		}
		b.Snippet = strings.Join(snippet, "\n")
		end = from
	}

	for end > start && lines[end-1] == "" {
		end--
	}
	desc := make([]string, 0, end-start)
	for _, line := range lines[start:end] {
		desc = append(desc, unescapeLine(line))
	}
	b.Description = strings.TrimSpace(strings.Join(desc, "\n"))
	return b
}

func isQuoteLine(line string) bool { return strings.HasPrefix(line, ">") }

func all(lines []string, ok func(string) bool) bool {
	for _, l := range lines {
		if !ok(l) {
			return false
		}
	}
	return true
}

func (b itemBody) toItem(name, memoURL string) model.Item {
	it := model.Item{
		ID:          name,
		Title:       b.Title,
		Description: b.Description,
		Type:        model.ItemType(b.Meta[metaType]),
		Priority:    model.Priority(b.Meta[metaPriority]),
		URL:         memoURL,
		CalendarURL: b.Meta[metaCalendar],
	}
	if v := b.Meta[metaDue]; v != "" {
		if due, err := time.Parse(dueLayout, v); err == nil {
			it.DueDate = &due
		}
	}
	if v := b.Meta[metaParent]; v != "" {
		it.ParentID = &v
	}
	if v := b.Meta[metaTarget]; v != "" {
		it.TargetID = &v
	}
	it.ProjectID = b.Meta[metaProject]
	if it.ProjectID == "" {
		// Memos written before the project meta line existed.
		for _, t := range b.Tags {
			if p, ok := strings.CutPrefix(t, "project/"); ok {
				it.ProjectID = p
			}
		}
	}
	return it
}

// isTagLine matches "#project/p1 #type/task" but not markdown headings.
func isTagLine(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if len(f) < 2 || f[0] != '#' || f[1] == '#' {
			return false
		}
	}
	return true
}
