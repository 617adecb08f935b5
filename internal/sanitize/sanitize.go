// Package sanitize strips substrings resembling SQL or script injection
// from user-supplied text. It is a blunt denylist applied as
// defense-in-depth on top of parameterized queries, not a parser and not
// a primary defense: it can over-strip legitimate prose and will not
// catch obfuscated payloads.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	scriptTagPattern  = regexp.MustCompile(`(?is)<\s*script[^>]*>.*?<\s*/\s*script\s*>|<\s*/?\s*script[^>]*>`)
	eventAttrPattern  = regexp.MustCompile(`(?i)\bon\w+\s*=`)
	jsFragmentPattern = regexp.MustCompile(`(?i)javascript\s*:|alert\s*\(|eval\s*\(|document\.|window\.`)
	sqlCommentPattern = regexp.MustCompile(`(?s)--[^\n]*|/\*.*?\*/`)
	sqlKeywordPattern = regexp.MustCompile(`(?i)\b(union|select|insert|update|delete|drop|create|alter|exec|execute|script|javascript)\b`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// String removes denylisted fragments from s and normalizes whitespace:
// leading/trailing whitespace is trimmed and interior runs collapse to a
// single space.
func String(s string) string {
	s = scriptTagPattern.ReplaceAllString(s, "")
	s = eventAttrPattern.ReplaceAllString(s, "")
	s = jsFragmentPattern.ReplaceAllString(s, "")
	s = sqlCommentPattern.ReplaceAllString(s, "")
	s = sqlKeywordPattern.ReplaceAllString(s, "")

	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Value walks an arbitrary decoded-JSON value and returns a structurally
// identical one with every string passed through String. Non-string
// leaves are returned unchanged.
func Value(v any) any {
	switch val := v.(type) {
	case string:
		return String(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Value(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, item := range val {
			out[key] = Value(item)
		}
		return out
	default:
		return v
	}
}
