// Package site implements the domain-entity and site-assembly layer:
// Page/Site/MenuEntry/Taxonomy business objects, content discovery, and the
// taxonomy/menu/pagination/summary logic that feeds the template runtime's
// value tree. internal/value owns the tagged-variant wrapper; this package
// owns the plain Go structs it wraps and registers their field tables.
package site

import (
	"sort"
	"strings"
	"time"

	"github.com/aellingwood/tsumo/internal/frontmatter"
	"github.com/aellingwood/tsumo/internal/scratch"
)

// Kind classifies a page: a regular content page, the home page, a
// section listing, a taxonomy listing, or a single term's listing.
type Kind int

const (
	KindPage Kind = iota
	KindHome
	KindSection
	KindTerm
	KindTaxonomy
)

func (k Kind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindSection:
		return "section"
	case KindTerm:
		return "term"
	case KindTaxonomy:
		return "taxonomy"
	default:
		return "page"
	}
}

// File records the on-disk location a page was sourced from, surfaced to
// templates as Page.file.
type File struct {
	Path string // path relative to the content root, slash-normalized
	Dir  string
	Name string
}

// CoverImage holds metadata for a page's cover/hero image.
type CoverImage struct {
	Image   string
	Alt     string
	Caption string
}

// Page is the per-page view passed into templates: built once from parsed
// content plus site config, mutated only during the fill-in-wiring phase
// (WireAncestorsAndPages) before any template render.
type Page struct {
	Title       string
	Slug        string
	RelPermalink string // always "/"-prefixed and slash-terminated
	Description string
	Summary     string
	Plain       string

	Date       time.Time
	Lastmod    time.Time
	ExpiryDate time.Time

	RawContent      string
	Content         string
	TableOfContents string
	WordCount       int
	ReadingTime     int

	Draft   bool
	Kind    Kind
	Section string
	Type    string
	Layout  string
	Weight  int

	Tags       []string
	Categories []string
	Series     string

	Params map[string]any
	Menus  []frontmatter.FrontMatterMenu

	File         *File
	Language     string
	Translations []*Page

	Parent    *Page
	Ancestors []*Page
	Pages     []*Page // child pages for a section/home node

	PrevInSection *Page
	NextInSection *Page
	Aliases       []string

	Cover  *CoverImage
	Author string

	IsBundle    bool
	BundleDir   string
	BundleFiles []string

	SourcePath string
	SourceDir  string

	Site  *Site
	Store *scratch.Store

	// Resources holds the bundle/asset resources scoped to this page,
	// wired in by the build driver once a resource.Manager is available
	// (kept as `any` here so package site never imports package resource).
	Resources any
}

func (p *Page) IsHome() bool     { return p.Kind == KindHome }
func (p *Page) IsPage() bool     { return p.Kind == KindPage }
func (p *Page) IsSection() bool  { return p.Kind == KindSection }
func (p *Page) IsTaxonomy() bool { return p.Kind == KindTaxonomy }
func (p *Page) IsTerm() bool     { return p.Kind == KindTerm }
func (p *Page) IsNode() bool     { return p.Kind != KindPage }

// Permalink joins baseURL (trailing slash expected) with RelPermalink.
func (p *Page) Permalink(baseURL string) string {
	if p.RelPermalink == "" {
		return baseURL
	}
	return baseURL + p.RelPermalink[1:]
}

// SortByDate sorts pages by Date; ascending=true puts older pages first.
func SortByDate(pages []*Page, ascending bool) {
	sort.SliceStable(pages, func(i, j int) bool {
		if ascending {
			return pages[i].Date.Before(pages[j].Date)
		}
		return pages[i].Date.After(pages[j].Date)
	})
}

// SortByWeight sorts ascending by Weight, pages with Weight == 0 last.
func SortByWeight(pages []*Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		wi, wj := pages[i].Weight, pages[j].Weight
		if wi == 0 && wj == 0 {
			return false
		}
		if wi == 0 {
			return false
		}
		if wj == 0 {
			return true
		}
		return wi < wj
	})
}

// SortByTitle sorts alphabetically, case-insensitive.
func SortByTitle(pages []*Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		return strings.ToLower(pages[i].Title) < strings.ToLower(pages[j].Title)
	})
}

// FilterDrafts returns pages with Draft == false.
func FilterDrafts(pages []*Page) []*Page {
	out := make([]*Page, 0, len(pages))
	for _, p := range pages {
		if !p.Draft {
			out = append(out, p)
		}
	}
	return out
}

// FilterFuture removes pages whose Date is in the future.
func FilterFuture(pages []*Page) []*Page {
	now := time.Now()
	out := make([]*Page, 0, len(pages))
	for _, p := range pages {
		if !p.Date.After(now) {
			out = append(out, p)
		}
	}
	return out
}

// FilterExpired removes pages whose ExpiryDate is non-zero and past.
func FilterExpired(pages []*Page) []*Page {
	now := time.Now()
	out := make([]*Page, 0, len(pages))
	for _, p := range pages {
		if p.ExpiryDate.IsZero() || !p.ExpiryDate.Before(now) {
			out = append(out, p)
		}
	}
	return out
}
