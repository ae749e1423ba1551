package site

import (
	"strings"
	"testing"
)

func TestGenerateSummary_MoreMarkerSplitsHTML(t *testing.T) {
	raw := "Intro paragraph.\n\n<!--more-->\n\nRest of the post."
	rendered := "<p>Intro paragraph.</p>\n\n<!--more-->\n\n<p>Rest of the post.</p>"

	got := GenerateSummary(raw, rendered, 300)
	want := "<p>Intro paragraph.</p>"
	if got != want {
		t.Errorf("GenerateSummary() = %q, want %q", got, want)
	}
}

func TestGenerateSummary_FallsBackToFirstParagraph(t *testing.T) {
	raw := "No marker here."
	rendered := "<p>First paragraph.</p><p>Second paragraph.</p>"

	got := GenerateSummary(raw, rendered, 300)
	want := "<p>First paragraph.</p>"
	if got != want {
		t.Errorf("GenerateSummary() = %q, want %q", got, want)
	}
}

func TestGenerateSummary_TruncatesLongText(t *testing.T) {
	longText := strings.Repeat("word ", 100)
	rendered := "<p>" + longText + "</p>"

	got := GenerateSummary("no marker", rendered, 20)
	if !strings.HasSuffix(got, "...</p>") {
		t.Errorf("GenerateSummary() with maxLength should truncate and end with \"...</p>\", got %q", got)
	}
	if !strings.HasPrefix(got, "<p>") {
		t.Errorf("GenerateSummary() should stay wrapped in <p>, got %q", got)
	}
}

func TestCalculateReadingTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"short", "just a few words here", 1},
		{"long", strings.Repeat("word ", 500), 2},
	}
	for _, tt := range tests {
		if got := CalculateReadingTime(tt.content); got != tt.want {
			t.Errorf("%s: CalculateReadingTime() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestStripHTMLTags(t *testing.T) {
	got := StripHTMLTags(`<p>Hello <strong>world</strong></p>`)
	want := "Hello world"
	if got != want {
		t.Errorf("StripHTMLTags() = %q, want %q", got, want)
	}
}

func TestTruncateAtWord(t *testing.T) {
	t.Run("no truncation needed", func(t *testing.T) {
		if got := TruncateAtWord("short", 100); got != "short" {
			t.Errorf("TruncateAtWord() = %q, want %q", got, "short")
		}
	})

	t.Run("truncates at word boundary", func(t *testing.T) {
		got := TruncateAtWord("one two three four five", 12)
		if !strings.HasSuffix(got, "...") {
			t.Errorf("TruncateAtWord() = %q, want a \"...\" suffix", got)
		}
		if strings.Contains(strings.TrimSuffix(got, "..."), " f") {
			t.Errorf("TruncateAtWord() = %q, should not cut mid-word", got)
		}
	})

	t.Run("maxLen <= 0 returns unchanged", func(t *testing.T) {
		if got := TruncateAtWord("anything", 0); got != "anything" {
			t.Errorf("TruncateAtWord() with maxLen=0 = %q, want unchanged", got)
		}
	})
}
