package site

import (
	"strings"

	"github.com/aellingwood/tsumo/internal/scratch"
	"github.com/aellingwood/tsumo/internal/value"
)

// field access for Page, Site, File, Language, Sites, MenuEntry, Menus,
// and Taxonomies. Mirrors the registration pattern internal/resource
// uses for Resource/PageResources: a boxed pointer stashed in Value.payload,
// unwrapped by the small as* helpers below.
func init() {
	value.RegisterFields(value.KindPage, pageFields)
	value.RegisterFields(value.KindSite, siteFields)
	value.RegisterFields(value.KindFile, fileFields)
	value.RegisterFields(value.KindLanguage, languageFields)
	value.RegisterFields(value.KindSites, sitesFields)
	value.RegisterFields(value.KindMenuEntry, menuEntryFields)
	value.RegisterFields(value.KindMenus, menusFields)
	value.RegisterFields(value.KindTaxonomies, taxonomiesFields)
	value.RegisterFields(value.KindTaxonomyTerms, taxonomyTermsFields)
}

// WrapPage lifts a Page into a value.Value of KindPage.
func WrapPage(p *Page) value.Value {
	if p == nil {
		return value.Nil
	}
	return value.Of(value.KindPage, p)
}

// WrapPages lifts a []*Page into a PageArray.
func WrapPages(pages []*Page) value.Value {
	items := make([]value.Value, len(pages))
	for i, p := range pages {
		items[i] = WrapPage(p)
	}
	return value.Array(value.KindPageArray, items)
}

// WrapSite lifts a Site into a value.Value of KindSite.
func WrapSite(s *Site) value.Value {
	if s == nil {
		return value.Nil
	}
	return value.Of(value.KindSite, s)
}

func asPage(v value.Value) *Page {
	p, _ := v.Payload().(*Page)
	return p
}

func asSite(v value.Value) *Site {
	s, _ := v.Payload().(*Site)
	return s
}

func wrapParams(m map[string]any) value.Value {
	out := make(map[string]value.Value, len(m))
	for k, v := range m {
		out[k] = wrapAny(v)
	}
	return value.Dict(out)
}

func wrapAny(v any) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Nil
	case string:
		return value.String(t)
	case bool:
		return value.Bool(t)
	case int:
		return value.Number(float64(t))
	case int64: // TOML data files decode integers as int64
		return value.Number(float64(t))
	case float64:
		return value.Number(t)
	case []string:
		return value.Strings(t)
	case []any:
		items := make([]value.Value, len(t))
		for i, item := range t {
			items[i] = wrapAny(item)
		}
		return value.Array(value.KindAnyArray, items)
	case map[string]any:
		return wrapParams(t)
	default:
		return value.Nil
	}
}

var pageFields = map[string]value.FieldFunc{
	"title": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asPage(v).Title), nil
	},
	"date": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asPage(v).Date.Format("2006-01-02T15:04:05Z07:00")), nil
	},
	"lastmod": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asPage(v).Lastmod.Format("2006-01-02T15:04:05Z07:00")), nil
	},
	"publishdate": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asPage(v).Date.Format("2006-01-02T15:04:05Z07:00")), nil
	},
	"expirydate": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asPage(v).ExpiryDate.Format("2006-01-02T15:04:05Z07:00")), nil
	},
	"draft": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Bool(asPage(v).Draft), nil
	},
	"kind": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asPage(v).Kind.String()), nil
	},
	"section": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asPage(v).Section), nil
	},
	"type": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asPage(v).Type), nil
	},
	"slug": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asPage(v).Slug), nil
	},
	"layout": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asPage(v).Layout), nil
	},
	"weight": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Number(float64(asPage(v).Weight)), nil
	},
	"relpermalink": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asPage(v).RelPermalink), nil
	},
	"permalink": func(v value.Value, _ []value.Value) (value.Value, error) {
		p := asPage(v)
		base := ""
		if p.Site != nil {
			base = p.Site.BaseURL
		}
		return value.String(p.Permalink(base)), nil
	},
	"content": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Html(asPage(v).Content), nil
	},
	"summary": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Html(asPage(v).Summary), nil
	},
	"plain": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asPage(v).Plain), nil
	},
	"tableofcontents": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Html(asPage(v).TableOfContents), nil
	},
	"wordcount": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Number(float64(asPage(v).WordCount)), nil
	},
	"readingtime": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Number(float64(asPage(v).ReadingTime)), nil
	},
	"description": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asPage(v).Description), nil
	},
	"tags": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Strings(asPage(v).Tags), nil
	},
	"categories": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Strings(asPage(v).Categories), nil
	},
	"series": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asPage(v).Series), nil
	},
	"author": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asPage(v).Author), nil
	},
	"aliases": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Strings(asPage(v).Aliases), nil
	},
	"params": func(v value.Value, _ []value.Value) (value.Value, error) {
		return wrapParams(asPage(v).Params), nil
	},
	"file": func(v value.Value, _ []value.Value) (value.Value, error) {
		f := asPage(v).File
		if f == nil {
			return value.Nil, nil
		}
		return value.Of(value.KindFile, f), nil
	},
	"language": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asPage(v).Language), nil
	},
	"translations": func(v value.Value, _ []value.Value) (value.Value, error) {
		return WrapPages(asPage(v).Translations), nil
	},
	"parent": func(v value.Value, _ []value.Value) (value.Value, error) {
		return WrapPage(asPage(v).Parent), nil
	},
	"ancestors": func(v value.Value, _ []value.Value) (value.Value, error) {
		return WrapPages(asPage(v).Ancestors), nil
	},
	"pages": func(v value.Value, _ []value.Value) (value.Value, error) {
		return WrapPages(asPage(v).Pages), nil
	},
	"previnsection": func(v value.Value, _ []value.Value) (value.Value, error) {
		return WrapPage(asPage(v).PrevInSection), nil
	},
	"nextinsection": func(v value.Value, _ []value.Value) (value.Value, error) {
		return WrapPage(asPage(v).NextInSection), nil
	},
	"site": func(v value.Value, _ []value.Value) (value.Value, error) {
		return WrapSite(asPage(v).Site), nil
	},
	"store": func(v value.Value, _ []value.Value) (value.Value, error) {
		return storeValue(asPage(v)), nil
	},
	"resources": func(v value.Value, _ []value.Value) (value.Value, error) {
		r, ok := asPage(v).Resources.(value.Value)
		if !ok {
			return value.Nil, nil
		}
		return r, nil
	},
	"cover": func(v value.Value, _ []value.Value) (value.Value, error) {
		c := asPage(v).Cover
		if c == nil {
			return value.Nil, nil
		}
		return value.Dict(map[string]value.Value{
			"image":   value.String(c.Image),
			"alt":     value.String(c.Alt),
			"caption": value.String(c.Caption),
		}), nil
	},
	"isbundle": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Bool(asPage(v).IsBundle), nil
	},
	"ishome": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Bool(asPage(v).IsHome()), nil
	},
	"ispage": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Bool(asPage(v).IsPage()), nil
	},
	"issection": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Bool(asPage(v).IsSection()), nil
	},
	"istaxonomy": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Bool(asPage(v).IsTaxonomy()), nil
	},
	"isterm": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Bool(asPage(v).IsTerm()), nil
	},
	"isnode": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Bool(asPage(v).IsNode()), nil
	},
}

// storeValue hands out the same scratch.Store for repeated field access
// against the same Page, lazily created on first use (Page itself carries a
// Store field assigned once Discover/the build driver runs).
func storeValue(p *Page) value.Value {
	if p.Store == nil {
		p.Store = scratch.New()
	}
	return scratch.Wrap(p.Store)
}

var fileFields = map[string]value.FieldFunc{
	"path": func(v value.Value, _ []value.Value) (value.Value, error) {
		f, _ := v.Payload().(*File)
		if f == nil {
			return value.Nil, nil
		}
		return value.String(f.Path), nil
	},
	"dir": func(v value.Value, _ []value.Value) (value.Value, error) {
		f, _ := v.Payload().(*File)
		if f == nil {
			return value.Nil, nil
		}
		return value.String(f.Dir), nil
	},
	"name": func(v value.Value, _ []value.Value) (value.Value, error) {
		f, _ := v.Payload().(*File)
		if f == nil {
			return value.Nil, nil
		}
		return value.String(f.Name), nil
	},
}

var languageFields = map[string]value.FieldFunc{
	"code": func(v value.Value, _ []value.Value) (value.Value, error) {
		l, _ := v.Payload().(*Language)
		if l == nil {
			return value.Nil, nil
		}
		return value.String(l.Code), nil
	},
	"name": func(v value.Value, _ []value.Value) (value.Value, error) {
		l, _ := v.Payload().(*Language)
		if l == nil {
			return value.Nil, nil
		}
		return value.String(l.Name), nil
	},
}

var siteFields = map[string]value.FieldFunc{
	"title": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asSite(v).Title), nil
	},
	"baseurl": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asSite(v).BaseURL), nil
	},
	"languagecode": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asSite(v).LanguageCode), nil
	},
	"copyright": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asSite(v).Copyright), nil
	},
	"language": func(v value.Value, _ []value.Value) (value.Value, error) {
		s := asSite(v)
		return value.Of(value.KindLanguage, &s.Language), nil
	},
	"languages": func(v value.Value, _ []value.Value) (value.Value, error) {
		s := asSite(v)
		items := make([]value.Value, len(s.Languages))
		for i := range s.Languages {
			items[i] = value.Of(value.KindLanguage, &s.Languages[i])
		}
		return value.Array(value.KindAnyArray, items), nil
	},
	"params": func(v value.Value, _ []value.Value) (value.Value, error) {
		return wrapParams(asSite(v).Params), nil
	},
	"data": func(v value.Value, _ []value.Value) (value.Value, error) {
		return wrapParams(asSite(v).Data), nil
	},
	"menus": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Of(value.KindMenus, menusWrapper(asSite(v).Menus)), nil
	},
	"taxonomies": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Of(value.KindTaxonomies, taxonomiesWrapper(asSite(v).Taxonomies)), nil
	},
	"home": func(v value.Value, _ []value.Value) (value.Value, error) {
		return WrapPage(asSite(v).Home), nil
	},
	"pages": func(v value.Value, _ []value.Value) (value.Value, error) {
		return WrapPages(asSite(v).Pages), nil
	},
	"allpages": func(v value.Value, _ []value.Value) (value.Value, error) {
		return WrapPages(asSite(v).AllPages), nil
	},
	"sites": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Of(value.KindSites, asSite(v).Sites), nil
	},
	"store": func(v value.Value, _ []value.Value) (value.Value, error) {
		s := asSite(v)
		if s.Store == nil {
			s.Store = scratch.New()
		}
		return scratch.Wrap(s.Store), nil
	},
}

var sitesFields = map[string]value.FieldFunc{
	"len": func(v value.Value, _ []value.Value) (value.Value, error) {
		sites, _ := v.Payload().([]*Site)
		return value.Number(float64(len(sites))), nil
	},
	"get": func(v value.Value, args []value.Value) (value.Value, error) {
		sites, _ := v.Payload().([]*Site)
		if len(args) == 0 {
			return value.Nil, nil
		}
		idx := int(args[0].AsNumber())
		if idx < 0 || idx >= len(sites) {
			return value.Nil, nil
		}
		return WrapSite(sites[idx]), nil
	},
}

// menuEntryFields projects *MenuEntry (boxed in value.payload directly,
// package site owns both sides so no separate boxed wrapper is needed).
var menuEntryFields = map[string]value.FieldFunc{
	"name": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asMenuEntry(v).Name), nil
	},
	"url": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asMenuEntry(v).URL), nil
	},
	"pageref": func(v value.Value, _ []value.Value) (value.Value, error) {
		return WrapPage(asMenuEntry(v).PageRef), nil
	},
	"title": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asMenuEntry(v).Title), nil
	},
	"weight": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Number(float64(asMenuEntry(v).Weight)), nil
	},
	"parent": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asMenuEntry(v).Parent), nil
	},
	"identifier": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asMenuEntry(v).Identifier), nil
	},
	"pre": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Html(asMenuEntry(v).Pre), nil
	},
	"post": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.Html(asMenuEntry(v).Post), nil
	},
	"menuname": func(v value.Value, _ []value.Value) (value.Value, error) {
		return value.String(asMenuEntry(v).MenuName), nil
	},
	"params": func(v value.Value, _ []value.Value) (value.Value, error) {
		return wrapParams(asMenuEntry(v).Params), nil
	},
	"children": func(v value.Value, _ []value.Value) (value.Value, error) {
		children := asMenuEntry(v).Children
		items := make([]value.Value, len(children))
		for i, c := range children {
			items[i] = value.Of(value.KindMenuEntry, c)
		}
		return value.Array(value.KindMenuArray, items), nil
	},
}

func asMenuEntry(v value.Value) *MenuEntry {
	e, _ := v.Payload().(*MenuEntry)
	return e
}

// menusFields/taxonomiesFields/taxonomyTermsFields are empty: these three
// kinds resolve named access entirely through value.KeyedValue
// (menusWrapper/taxonomiesWrapper/taxonomyTermsWrapper below), not a fixed
// field table. They're still registered so value.GetField finds a (empty)
// table rather than short-circuiting to Nil before trying the KeyedValue
// payload check.
var menusFields = map[string]value.FieldFunc{}
var taxonomiesFields = map[string]value.FieldFunc{}
var taxonomyTermsFields = map[string]value.FieldFunc{}

// menusWrapper implements value.KeyedValue over Site.Menus, keyed by menu
// name.
type menusWrapper map[string][]*MenuEntry

func (m menusWrapper) LookupKey(name string) (value.Value, bool) {
	entries, ok := lookupCaseInsensitive(m, name)
	if !ok {
		return value.Nil, false
	}
	items := make([]value.Value, len(entries))
	for i, e := range entries {
		items[i] = value.Of(value.KindMenuEntry, e)
	}
	return value.Array(value.KindMenuArray, items), true
}

// taxonomiesWrapper implements value.KeyedValue over Site.Taxonomies,
// keyed by taxonomy plural name.
type taxonomiesWrapper map[string]*Taxonomy

func (t taxonomiesWrapper) LookupKey(name string) (value.Value, bool) {
	tax, ok := lookupCaseInsensitive(t, name)
	if !ok {
		return value.Nil, false
	}
	return value.Of(value.KindTaxonomyTerms, taxonomyTermsWrapper(tax.Terms)), true
}

// taxonomyTermsWrapper implements value.KeyedValue over a single
// taxonomy's term->pages map. Term keys are case-preserving; lookup is
// case-insensitive with exact-match precedence.
type taxonomyTermsWrapper map[string][]*Page

func (t taxonomyTermsWrapper) LookupKey(name string) (value.Value, bool) {
	pages, ok := lookupCaseInsensitive(t, name)
	if !ok {
		return value.Nil, false
	}
	return WrapPages(pages), true
}

// lookupCaseInsensitive resolves name against m's keys: exact match first,
// then a case-insensitive scan.
func lookupCaseInsensitive[V any](m map[string]V, name string) (V, bool) {
	if v, ok := m[name]; ok {
		return v, true
	}
	lname := strings.ToLower(name)
	for k, v := range m {
		if strings.ToLower(k) == lname {
			return v, true
		}
	}
	var zero V
	return zero, false
}
