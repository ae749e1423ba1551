package site

import (
	"fmt"
	"sort"
	"strings"
)

// Taxonomy holds all terms and their associated pages for one taxonomy
// type (tags, categories, or any configured grouping).
type Taxonomy struct {
	Name     string
	Singular string
	Terms    map[string][]*Page
}

// BuildTaxonomies builds taxonomy maps from pages for every taxonomy name
// declared in config: for "tags"/"categories" it reads
// Page.Tags/Categories directly, otherwise it looks in
// Page.Params[plural].
func BuildTaxonomies(pages []*Page, taxonomies map[string]string) map[string]*Taxonomy {
	result := make(map[string]*Taxonomy, len(taxonomies))

	for plural, singular := range taxonomies {
		tax := &Taxonomy{Name: plural, Singular: singular, Terms: make(map[string][]*Page)}

		// Term keys preserve the first-seen casing; later case variants of
		// the same term fold into that key.
		canonical := make(map[string]string)

		for _, p := range pages {
			var terms []string
			switch plural {
			case "tags":
				terms = p.Tags
			case "categories":
				terms = p.Categories
			default:
				if p.Params != nil {
					if v, ok := p.Params[plural]; ok {
						terms = toStringSlice(v)
					}
				}
			}

			for _, term := range terms {
				trimmed := strings.TrimSpace(term)
				if trimmed == "" {
					continue
				}
				lower := strings.ToLower(trimmed)
				key, ok := canonical[lower]
				if !ok {
					canonical[lower] = trimmed
					key = trimmed
				}
				tax.Terms[key] = append(tax.Terms[key], p)
			}
		}

		for term := range tax.Terms {
			SortByDate(tax.Terms[term], false)
		}

		result[plural] = tax
	}

	return result
}

// Lookup resolves term against Terms: exact key first, then a
// case-insensitive scan.
func (t *Taxonomy) Lookup(term string) ([]*Page, bool) {
	if pages, ok := t.Terms[term]; ok {
		return pages, true
	}
	lower := strings.ToLower(term)
	for k, pages := range t.Terms {
		if strings.ToLower(k) == lower {
			return pages, true
		}
	}
	return nil, false
}

func toStringSlice(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case string:
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// GenerateTaxonomyPages creates virtual listing pages: a taxonomy-list
// page at /tags/ (kind taxonomy) and a term page per term at /tags/go/
// (kind term).
func GenerateTaxonomyPages(taxonomies map[string]*Taxonomy) []*Page {
	var pages []*Page

	taxNames := make([]string, 0, len(taxonomies))
	for name := range taxonomies {
		taxNames = append(taxNames, name)
	}
	sort.Strings(taxNames)

	for _, name := range taxNames {
		tax := taxonomies[name]

		listPage := &Page{
			Title:        capitalizeFirst(name),
			RelPermalink: fmt.Sprintf("/%s/", name),
			Kind:         KindTaxonomy,
			Section:      name,
			Params:       map[string]any{},
		}
		pages = append(pages, listPage)

		termNames := make([]string, 0, len(tax.Terms))
		for term := range tax.Terms {
			termNames = append(termNames, term)
		}
		sort.Strings(termNames)

		for _, term := range termNames {
			termPages := tax.Terms[term]
			termPage := &Page{
				Title:        term,
				RelPermalink: fmt.Sprintf("/%s/%s/", name, strings.ToLower(term)),
				Kind:         KindTerm,
				Section:      name,
				Pages:        termPages,
				Params: map[string]any{
					"term":     term,
					"taxonomy": name,
					"count":    len(termPages),
				},
			}
			pages = append(pages, termPage)
		}
	}

	return pages
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
