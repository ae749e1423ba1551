package frontmatter

import "strings"

// Parse detects the front-matter format (JSON, YAML, TOML, or none) and
// returns an immutable ParsedContent. It never fails; malformed or
// unrecognized input degrades to empty front matter with the full text as
// body.
func Parse(text string) ParsedContent {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	if strings.HasPrefix(trimmed, "{") {
		if fm, body, ok := parseJSONBlock(text); ok {
			return ParsedContent{FrontMatter: fm, Body: body}
		}
		return ParsedContent{FrontMatter: newFrontMatter(), Body: text}
	}

	lines := splitLines(text)
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "---" {
		return parseDelimited(lines, "---", parseYAMLBlock)
	}
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "+++" {
		return parseDelimited(lines, "+++", parseTOMLBlock)
	}
	return ParsedContent{FrontMatter: newFrontMatter(), Body: text}
}

func splitLines(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(normalized, "\n")
}

// parseDelimited finds the closing fence line matching delim and parses the
// lines between the two fences with blockParser; the body is every line
// after the closing fence, rejoined.
func parseDelimited(lines []string, delim string, blockParser func([]string) FrontMatter) ParsedContent {
	closeIdx := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delim {
			closeIdx = i
			break
		}
	}
	if closeIdx < 0 {
		// No closing fence: treat the whole thing as body, no front matter.
		return ParsedContent{FrontMatter: newFrontMatter(), Body: strings.Join(lines, "\n")}
	}
	fm := blockParser(lines[1:closeIdx])
	body := strings.TrimLeft(strings.Join(lines[closeIdx+1:], "\n"), "\n")
	return ParsedContent{FrontMatter: fm, Body: body}
}
