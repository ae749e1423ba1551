package markdown

import (
	"strings"
	"testing"
)

func TestRenderBasicMarkdown(t *testing.T) {
	r := New()

	input := []byte(`# Hello World

This is a **bold** and *italic* paragraph.

[Click here](https://example.com)
`)

	html, err := r.Render(input)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	checks := []struct {
		desc    string
		contain string
	}{
		{"h1 heading", "<h1"},
		{"bold text", "<strong>bold</strong>"},
		{"italic text", "<em>italic</em>"},
		{"link href", `href="https://example.com"`},
		{"link tag", "<a "},
		{"paragraph", "<p>"},
	}

	for _, c := range checks {
		if !strings.Contains(html, c.contain) {
			t.Errorf("expected HTML to contain %s (%q), got:\n%s", c.desc, c.contain, html)
		}
	}
}

func TestRenderGFMTables(t *testing.T) {
	r := New()

	input := []byte(`| Name  | Age |
|-------|-----|
| Alice | 30  |
| Bob   | 25  |
`)

	html, err := r.Render(input)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	for _, tag := range []string{"<table>", "<thead>", "<tbody>", "<tr>", "<th>", "<td>"} {
		if !strings.Contains(html, tag) {
			t.Errorf("expected HTML to contain %q, got:\n%s", tag, html)
		}
	}
}

func TestRenderTaskLists(t *testing.T) {
	r := New()

	input := []byte(`- [x] Done task
- [ ] Pending task
`)

	html, err := r.Render(input)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if !strings.Contains(html, `<input`) {
		t.Errorf("expected HTML to contain checkbox <input>, got:\n%s", html)
	}
	if !strings.Contains(html, "type=\"checkbox\"") {
		t.Errorf("expected HTML to contain type=\"checkbox\", got:\n%s", html)
	}
}

func TestRenderCodeBlockHighlighting(t *testing.T) {
	r := New()

	input := []byte("```go\nfunc main() {\n\tfmt.Println(\"hello\")\n}\n```\n")

	html, err := r.Render(input)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if !strings.Contains(html, "chroma") {
		t.Errorf("expected HTML to contain 'chroma' class, got:\n%s", html)
	}
	if !strings.Contains(html, "<pre") {
		t.Errorf("expected HTML to contain <pre>, got:\n%s", html)
	}
}

func TestRenderFootnotes(t *testing.T) {
	r := New()

	input := []byte(`This has a footnote[^1].

[^1]: This is the footnote content.
`)

	html, err := r.Render(input)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if !strings.Contains(html, "footnote") {
		t.Errorf("expected HTML to contain 'footnote', got:\n%s", html)
	}
}

func TestRenderHeadingIDs(t *testing.T) {
	r := New()

	input := []byte(`## My Section

Some content.

### Another Heading
`)

	html, err := r.Render(input)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if !strings.Contains(html, `id="my-section"`) {
		t.Errorf("expected heading to have id=\"my-section\", got:\n%s", html)
	}
	if !strings.Contains(html, `id="another-heading"`) {
		t.Errorf("expected heading to have id=\"another-heading\", got:\n%s", html)
	}
}

func TestRenderWithTOC(t *testing.T) {
	r := New()

	input := []byte(`# Introduction

Some intro text.

## Getting Started

Setup instructions.

## Configuration

Config details.

### Advanced Options

More details.
`)

	content, tocHTML, err := r.RenderWithTOC(input)
	if err != nil {
		t.Fatalf("RenderWithTOC() error: %v", err)
	}

	if !strings.Contains(content, `id="introduction"`) {
		t.Errorf("expected content to have id=\"introduction\", got:\n%s", content)
	}
	if !strings.Contains(content, `id="getting-started"`) {
		t.Errorf("expected content to have id=\"getting-started\", got:\n%s", content)
	}

	if !strings.HasPrefix(tocHTML, `<nav id="TableOfContents">`) {
		t.Errorf("expected TOC to open with the TableOfContents nav, got:\n%s", tocHTML)
	}
	if !strings.Contains(tocHTML, "<ul>") {
		t.Errorf("expected TOC to contain <ul>, got:\n%s", tocHTML)
	}
	if !strings.Contains(tocHTML, "<li>") {
		t.Errorf("expected TOC to contain <li>, got:\n%s", tocHTML)
	}
	if !strings.Contains(tocHTML, "#getting-started") {
		t.Errorf("expected TOC to contain link to #getting-started, got:\n%s", tocHTML)
	}
}

func TestTOCStructureDepthClamped(t *testing.T) {
	// Heading levels 1,2,2,3,2: the level-3 run closes before the following
	// sibling level-2 item opens, and every <ul>/<li> pair balances.
	got := buildTOC([]tocHeading{
		{level: 1, id: "a", text: "A"},
		{level: 2, id: "b", text: "B"},
		{level: 2, id: "c", text: "C"},
		{level: 3, id: "d", text: "D"},
		{level: 2, id: "e", text: "E"},
	})
	want := `<nav id="TableOfContents">` +
		`<ul><li><a href="#a">A</a>` +
		`<ul><li><a href="#b">B</a></li>` +
		`<li><a href="#c">C</a>` +
		`<ul><li><a href="#d">D</a></li></ul></li>` +
		`<li><a href="#e">E</a></li></ul></li></ul>` +
		`</nav>`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTOCClampsSkippedLevels(t *testing.T) {
	got := buildTOC([]tocHeading{
		{level: 1, id: "a", text: "A"},
		{level: 3, id: "b", text: "B"},
	})
	want := `<nav id="TableOfContents">` +
		`<ul><li><a href="#a">A</a>` +
		`<ul><li><a href="#b">B</a></li></ul></li></ul>` +
		`</nav>`
	if got != want {
		t.Errorf("h1->h3 should nest one level only, got:\n%s", got)
	}
}

func TestRenderWithTOCNoHeadings(t *testing.T) {
	r := New()

	content, tocHTML, err := r.RenderWithTOC([]byte("Just a paragraph, no headings.\n"))
	if err != nil {
		t.Fatalf("RenderWithTOC() error: %v", err)
	}

	if tocHTML != `<nav id="TableOfContents"></nav>` {
		t.Errorf("expected empty TOC shell for a heading-less document, got:\n%s", tocHTML)
	}
	if !strings.Contains(content, "Just a paragraph") {
		t.Errorf("expected content to still render, got:\n%s", content)
	}
}

func TestGenerateChromaCSS(t *testing.T) {
	lightCSS, darkCSS, err := GenerateChromaCSS("monokai", "dracula")
	if err != nil {
		t.Fatalf("GenerateChromaCSS() error: %v", err)
	}

	if len(lightCSS) == 0 {
		t.Error("expected non-empty light CSS")
	}
	if len(darkCSS) == 0 {
		t.Error("expected non-empty dark CSS")
	}
	if !strings.Contains(lightCSS, ".chroma") {
		t.Errorf("expected light CSS to contain '.chroma'")
	}
	if !strings.Contains(darkCSS, ".dark .chroma") {
		t.Errorf("expected dark CSS to contain '.dark .chroma'")
	}
	if strings.Contains(lightCSS, ".dark") {
		t.Errorf("expected light CSS to NOT contain '.dark'")
	}
}

func TestRenderRawHTML(t *testing.T) {
	r := New()

	input := []byte(`Some text before.

<div class="custom">
  <p>Raw HTML content</p>
</div>

Some text after.
`)

	html, err := r.Render(input)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if !strings.Contains(html, `<div class="custom">`) {
		t.Errorf("expected raw HTML <div> to pass through, got:\n%s", html)
	}
	if !strings.Contains(html, `<p>Raw HTML content</p>`) {
		t.Errorf("expected raw HTML <p> to pass through, got:\n%s", html)
	}
}
