package frontmatter

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order; the first that parses wins. Failures
// silently leave the field unset (zero time.Time).
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01-02 15:04:05",
}

func parseDate(s string) time.Time {
	s = unquote(strings.TrimSpace(s))
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// unquote strips one matching pair of leading/trailing " or ' characters.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func countLeadingSpaces(s string) int {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}

func isInlineArray(val string) bool {
	v := strings.TrimSpace(val)
	return strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]")
}

func parseInlineArray(val string) []string {
	v := strings.TrimSpace(val)
	v = strings.TrimPrefix(v, "[")
	v = strings.TrimSuffix(v, "]")
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = unquote(strings.TrimSpace(p))
	}
	return out
}

// parseScalarParam parses a scalar: unquoted true/false -> bool;
// otherwise a 32-bit integer parse -> number; else trimmed (unquoted)
// string.
func parseScalarParam(val string) ParamValue {
	v := strings.TrimSpace(val)
	switch v {
	case "true":
		return ParamValue{Kind: ParamBool, Bool: true}
	case "false":
		return ParamValue{Kind: ParamBool, Bool: false}
	}
	if n, err := strconv.ParseInt(v, 10, 32); err == nil {
		return ParamValue{Kind: ParamNumber, Num: int(n)}
	}
	return ParamValue{Kind: ParamString, Str: unquote(v)}
}

func parseBoolScalar(val string) bool {
	return strings.TrimSpace(val) == "true"
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

// splitKeyValue splits a "key: value" or "key:" line at the first colon.
func splitKeyValue(line string) (key, val string, ok bool) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

// splitTOMLKeyValue splits a "key = value" line at the first "=".
func splitTOMLKeyValue(line string) (key, val string, ok bool) {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

// applyMenuField assigns one front-matter-menu field by its lowercased name.
func applyMenuField(m *FrontMatterMenu, lkey, val string) {
	val = unquote(strings.TrimSpace(val))
	switch lkey {
	case "weight":
		m.Weight = atoiOr(val, 0)
	case "name":
		m.Name = val
	case "parent":
		m.Parent = val
	case "identifier":
		m.Identifier = val
	case "pre":
		m.Pre = val
	case "post":
		m.Post = val
	case "title":
		m.Title = val
	}
}
