// Package pathutil provides relative-path normalization, slash canonicalization,
// the glob matcher used by the resource manager, and external-process argument
// quoting. These are small, order-sensitive primitives shared by the template
// runtime and the resource pipeline.
package pathutil

import "strings"

// NormalizeRelPath collapses "." segments, applies ".." by popping one
// preceding segment when available, and rejoins the result with "/". It never
// produces a leading "/" and never escapes above the root: a ".." with no
// segment to pop is dropped.
func NormalizeRelPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	segments := strings.Split(p, "/")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}
	return strings.Join(out, "/")
}

// TrimSlashes strips any number of leading and trailing "/" characters.
func TrimSlashes(p string) string {
	return strings.Trim(p, "/")
}

// EnsureTrailingSlash appends "/" unless p already ends with one. An empty
// string becomes "/".
func EnsureTrailingSlash(p string) string {
	if p == "" {
		return "/"
	}
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}

// EnsureLeadingSlash prepends "/" unless p already starts with one.
func EnsureLeadingSlash(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

// JoinURL joins a base URL (expected to end with "/") and a relative path
// (expected to start with "/"), producing exactly one "/" between them.
func JoinURL(base, rel string) string {
	return strings.TrimSuffix(base, "/") + EnsureLeadingSlash(rel)
}

// SplitURL splits a relative URL reference into path, query, and fragment
// without raising: it looks for the first "#" then the first "?" in the
// remaining prefix, matching a tolerant parser rather than a strict one.
func SplitURL(ref string) (path, query, fragment string) {
	rest := ref
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		fragment = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		query = rest[i+1:]
		rest = rest[:i]
	}
	path = rest
	return
}

// QuoteProcessArg quotes an argument for display/spawn logging purposes: any
// argument containing whitespace or a double quote is wrapped in double
// quotes, with embedded double quotes escaped as \". Other arguments are
// returned unchanged.
func QuoteProcessArg(arg string) string {
	if !strings.ContainsAny(arg, " \t\n\"") {
		return arg
	}
	escaped := strings.ReplaceAll(arg, `"`, `\"`)
	return `"` + escaped + `"`
}

// GlobMatch reports whether name matches pattern: paths are split on "/";
// "*" matches any substring within a
// segment via an ordered-substring sweep anchored at pattern start and end;
// "**" matches zero or more whole segments. Matching is case-sensitive.
func GlobMatch(pattern, name string) bool {
	patSegs := splitSegments(pattern)
	nameSegs := splitSegments(name)
	return matchSegments(patSegs, nameSegs)
}

func splitSegments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// matchSegments recursively matches pattern segments against name segments,
// backtracking only on "**".
func matchSegments(pat, name []string) bool {
	if len(pat) == 0 {
		return len(name) == 0
	}
	head := pat[0]
	if head == "**" {
		// "**" may consume zero or more whole segments.
		for n := 0; n <= len(name); n++ {
			if matchSegments(pat[1:], name[n:]) {
				return true
			}
		}
		return false
	}
	if len(name) == 0 {
		return false
	}
	if !matchSegment(head, name[0]) {
		return false
	}
	return matchSegments(pat[1:], name[1:])
}

// matchSegment matches a single pattern segment (possibly containing "*")
// against a single name segment using an ordered-substring sweep: the
// segment is split on "*" into literal parts that must occur in order, the
// first anchored at the start (unless the pattern begins with "*") and the
// last anchored at the end (unless the pattern ends with "*").
func matchSegment(pat, seg string) bool {
	if !strings.Contains(pat, "*") {
		return pat == seg
	}
	parts := strings.Split(pat, "*")
	pos := 0
	// First part anchors at the start.
	if parts[0] != "" {
		if !strings.HasPrefix(seg, parts[0]) {
			return false
		}
		pos = len(parts[0])
	}
	for i := 1; i < len(parts)-1; i++ {
		part := parts[i]
		if part == "" {
			continue
		}
		idx := strings.Index(seg[pos:], part)
		if idx < 0 {
			return false
		}
		pos += idx + len(part)
	}
	last := parts[len(parts)-1]
	if last == "" {
		return true
	}
	if pos > len(seg)-len(last) {
		return false
	}
	return strings.HasSuffix(seg, last) && len(seg)-len(last) >= pos
}
