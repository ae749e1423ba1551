// Package markdown renders the body of a parsed content file to HTML via
// goldmark, producing both the rendered content and a table of contents
// wrapped in `<nav id="TableOfContents">`.
package markdown

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Renderer converts Markdown source into HTML using goldmark with GFM,
// footnotes, typographer, chroma syntax highlighting, auto heading IDs, and
// attribute extensions enabled.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer configured with the standard extension set.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Render converts Markdown source bytes into HTML with no TOC extraction.
func (r *Renderer) Render(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}

// RenderWithTOC converts Markdown source bytes into HTML and a
// `<nav id="TableOfContents">`-wrapped table of contents built from the
// document's headings. A document with no headings yields an empty nav
// shell.
func (r *Renderer) RenderWithTOC(source []byte) (contentHTML string, tocHTML string, err error) {
	doc := r.md.Parser().Parse(text.NewReader(source))

	tocHTML = buildTOC(collectHeadings(doc, source))

	var contentBuf bytes.Buffer
	if err := r.md.Renderer().Render(&contentBuf, source, doc); err != nil {
		return "", "", fmt.Errorf("markdown render: %w", err)
	}

	return contentBuf.String(), tocHTML, nil
}

type tocHeading struct {
	level int
	id    string
	text  string
}

func collectHeadings(doc ast.Node, source []byte) []tocHeading {
	var out []tocHeading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		id := ""
		if v, found := h.AttributeString("id"); found {
			if b, ok := v.([]byte); ok {
				id = string(b)
			} else if s, ok := v.(string); ok {
				id = s
			}
		}
		out = append(out, tocHeading{level: h.Level, id: id, text: inlineText(h, source)})
		return ast.WalkSkipChildren, nil
	})
	return out
}

func inlineText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*ast.Text); ok {
				sb.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// buildTOC emits the nested <ul>/<li>/<a href="#id"> structure. Depth
// increases are clamped to one level at a time, and a deeper run is closed
// before its following sibling <li> opens, so the output is well-formed for
// any heading-level sequence, including skips like h1 -> h3.
func buildTOC(headings []tocHeading) string {
	if len(headings) == 0 {
		return `<nav id="TableOfContents"></nav>`
	}
	var b strings.Builder
	b.WriteString(`<nav id="TableOfContents">`)
	depth := 0
	for _, h := range headings {
		target := h.level
		if target > depth+1 {
			target = depth + 1
		}
		if target < 1 {
			target = 1
		}
		for depth > target {
			b.WriteString("</li></ul>")
			depth--
		}
		if depth == target {
			b.WriteString("</li><li>")
		} else {
			b.WriteString("<ul><li>")
			depth++
		}
		fmt.Fprintf(&b, `<a href="#%s">%s</a>`, h.id, stdhtml.EscapeString(h.text))
	}
	for depth > 0 {
		b.WriteString("</li></ul>")
		depth--
	}
	b.WriteString("</nav>")
	return b.String()
}

// GenerateChromaCSS produces light/dark CSS for syntax-highlighted code
// blocks. The dark CSS has every `.chroma` selector prefixed with `.dark` so
// it can be scoped to a dark-mode class on the document.
func GenerateChromaCSS(lightStyle, darkStyle string) (lightCSS string, darkCSS string, err error) {
	formatter := chromahtml.New(chromahtml.WithClasses(true))

	lightSty := styles.Get(lightStyle)
	var lightBuf bytes.Buffer
	if err := formatter.WriteCSS(&lightBuf, lightSty); err != nil {
		return "", "", fmt.Errorf("generate light CSS: %w", err)
	}
	lightCSS = lightBuf.String()

	darkSty := styles.Get(darkStyle)
	var darkBuf bytes.Buffer
	if err := formatter.WriteCSS(&darkBuf, darkSty); err != nil {
		return "", "", fmt.Errorf("generate dark CSS: %w", err)
	}
	darkCSS = strings.ReplaceAll(darkBuf.String(), ".chroma", ".dark .chroma")

	return lightCSS, darkCSS, nil
}
