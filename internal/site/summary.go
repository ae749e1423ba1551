package site

import (
	"regexp"
	"strings"
)

const moreMarker = "<!--more-->"

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)
var firstParaRe = regexp.MustCompile(`(?s)<p[^>]*>(.*?)</p>`)

// GenerateSummary produces a page's Summary. Priority: a `<!--more-->`
// marker in the raw markdown splits the rendered HTML there; otherwise the
// first `<p>...</p>` of the rendered HTML is used; the result is truncated
// to maxLength plain-text characters (default 300) if needed.
func GenerateSummary(rawMD string, renderedHTML string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = 300
	}

	var summary string
	if strings.Contains(rawMD, moreMarker) {
		parts := strings.SplitN(renderedHTML, moreMarker, 2)
		summary = strings.TrimSpace(parts[0])
	} else if match := firstParaRe.FindString(renderedHTML); match != "" {
		summary = match
	}

	plainText := StripHTMLTags(summary)
	if len(plainText) > maxLength {
		truncated := TruncateAtWord(plainText, maxLength)
		summary = "<p>" + truncated + "</p>"
	}

	return summary
}

// CalculateReadingTime estimates reading time at ~200 words/minute,
// returning at least 1 for non-empty content.
func CalculateReadingTime(content string) int {
	wc := CalculateWordCount(content)
	if wc == 0 {
		return 0
	}
	minutes := wc / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// CalculateWordCount counts words by splitting on whitespace.
func CalculateWordCount(content string) int {
	return len(strings.Fields(content))
}

// GenerateMetaDescription strips HTML and truncates at a word boundary.
func GenerateMetaDescription(summary string, maxLen int) string {
	plain := StripHTMLTags(summary)
	plain = strings.Join(strings.Fields(plain), " ")
	return TruncateAtWord(plain, maxLen)
}

// StripHTMLTags removes HTML tags, returning plain text.
func StripHTMLTags(s string) string {
	return htmlTagRe.ReplaceAllString(s, "")
}

// TruncateAtWord truncates at a word boundary, appending "..." when
// truncated. maxLen <= 0 returns s unchanged.
func TruncateAtWord(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	truncated := s[:maxLen]
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > 0 {
		truncated = truncated[:lastSpace]
	}
	return truncated + "..."
}
