package site

import (
	"sort"
	"strings"

	"github.com/aellingwood/tsumo/internal/config"
)

// MenuEntry is one navigation item: a tree node resolved by parent
// identifier, ordered (weight asc, name asc).
type MenuEntry struct {
	Name       string
	URL        string
	PageRef    *Page
	Title      string
	Weight     int
	Parent     string
	Identifier string
	Pre        string
	Post       string
	MenuName   string
	Params     map[string]any
	Children   []*MenuEntry
}

// BuildMenus resolves front-matter menu assignments (FrontMatterMenu,
// carried on each Page) plus config-declared menu items into per-name
// MenuEntry trees.
func BuildMenus(pages []*Page, configMenus map[string][]config.MenuItem) map[string][]*MenuEntry {
	byName := make(map[string][]*MenuEntry)

	for name, items := range configMenus {
		for _, item := range items {
			byName[name] = append(byName[name], &MenuEntry{
				Name:       item.Name,
				URL:        item.URL,
				Weight:     item.Weight,
				Identifier: item.Identifier,
				Parent:     item.Parent,
				Pre:        item.Pre,
				Post:       item.Post,
				MenuName:   name,
			})
		}
	}

	for _, p := range pages {
		for _, m := range p.Menus {
			name := strings.ToLower(m.MenuName)
			byName[name] = append(byName[name], &MenuEntry{
				Name:       firstNonEmpty(m.Name, m.Title, p.Title),
				URL:        p.RelPermalink,
				PageRef:    p,
				Title:      m.Title,
				Weight:     m.Weight,
				Parent:     m.Parent,
				Identifier: m.Identifier,
				Pre:        m.Pre,
				Post:       m.Post,
				MenuName:   name,
			})
		}
	}

	result := make(map[string][]*MenuEntry, len(byName))
	for name, entries := range byName {
		result[name] = nestMenu(entries)
	}
	return result
}

// nestMenu resolves parent-identifier links into a tree and orders every
// level (weight asc, name asc).
func nestMenu(entries []*MenuEntry) []*MenuEntry {
	byIdentifier := make(map[string]*MenuEntry, len(entries))
	for _, e := range entries {
		if e.Identifier != "" {
			byIdentifier[e.Identifier] = e
		}
	}

	var roots []*MenuEntry
	for _, e := range entries {
		if e.Parent != "" {
			if parent, ok := byIdentifier[e.Parent]; ok && parent != e {
				parent.Children = append(parent.Children, e)
				continue
			}
		}
		roots = append(roots, e)
	}

	sortMenuLevel(roots)
	for _, e := range entries {
		sortMenuLevel(e.Children)
	}
	return roots
}

func sortMenuLevel(entries []*MenuEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight < entries[j].Weight
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
