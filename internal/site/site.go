package site

import "github.com/aellingwood/tsumo/internal/scratch"

// Language identifies the single configured language a build uses. The
// build path is single-language, so Site.Languages always holds exactly
// one entry.
type Language struct {
	Code string
	Name string
}

// Site is the site-wide view passed into templates.
type Site struct {
	Title        string
	BaseURL      string
	LanguageCode string
	Copyright    string

	Language  Language
	Languages []Language

	Params map[string]any

	Menus      map[string][]*MenuEntry
	Taxonomies map[string]*Taxonomy

	Home     *Page
	Pages    []*Page // top-level section pages
	AllPages []*Page // every page reachable from this site, home included

	// Data holds parsed data/**.yaml|toml|json files, keyed the way
	// LoadDataFiles nests it.
	Data map[string]any

	// Sites defaults to a single-element slice containing this Site, the
	// degenerate form of a multi-site view.
	Sites []*Site

	// Store is this site's scratch store, reachable as site.Store.
	Store *scratch.Store
}

// New builds a Site and backfills the self-referencing Sites[] slice and
// each page's Site backref, so every page reachable from AllPages points
// back at this site.
func New(title, baseURL, languageCode string, allPages []*Page, home *Page, topPages []*Page, taxonomies map[string]*Taxonomy, menus map[string][]*MenuEntry, data map[string]any, params map[string]any) *Site {
	s := &Site{
		Title:        title,
		BaseURL:      baseURL,
		LanguageCode: languageCode,
		Language:     Language{Code: languageCode},
		Languages:    []Language{{Code: languageCode}},
		Params:       params,
		Menus:        menus,
		Taxonomies:   taxonomies,
		Home:         home,
		Pages:        topPages,
		AllPages:     allPages,
		Data:         data,
		Store:        scratch.New(),
	}
	s.Sites = []*Site{s}
	for _, p := range allPages {
		p.Site = s
	}
	return s
}
