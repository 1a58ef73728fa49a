package llmprovider

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.+?)\\s*```")

const parseErrorRawLimit = 200

// ExtractJSON recovers a JSON object from model output. Fallback chain:
// whole text, contents of a code fence, first balanced {...} block.
func ExtractJSON(text string) (string, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", &ParseError{Raw: ""}
	}

	if json.Valid([]byte(s)) && (strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")) {
		return s, nil
	}

	if m := fenceRe.FindStringSubmatch(s); len(m) > 1 {
		inner := strings.TrimSpace(m[1])
		if json.Valid([]byte(inner)) {
			return inner, nil
		}
		if obj, ok := firstBalancedObject(inner); ok {
			return obj, nil
		}
	}

	if obj, ok := firstBalancedObject(s); ok {
		return obj, nil
	}

	return "", &ParseError{Raw: truncateRaw(s)}
}

// firstBalancedObject scans for the first {...} block that is valid JSON.
// Braces inside string literals are ignored.
func firstBalancedObject(s string) (string, bool) {
	for start := strings.IndexByte(s, '{'); start >= 0; {
		if end, ok := matchBrace(s, start); ok {
			candidate := s[start : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, true
			}
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

// matchBrace returns the index of the brace closing the one at start.
func matchBrace(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func truncateRaw(s string) string {
	runes := []rune(s)
	if len(runes) <= parseErrorRawLimit {
		return s
	}
	return string(runes[:parseErrorRawLimit]) + "..."
}
