package site

import (
	"testing"

	"github.com/aellingwood/tsumo/internal/config"
	"github.com/aellingwood/tsumo/internal/frontmatter"
)

func entryNames(entries []*MenuEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

// TestBuildMenus_OrderedByWeightThenName covers the menu ordering rule:
// weight ascending, then name ascending.
func TestBuildMenus_OrderedByWeightThenName(t *testing.T) {
	configMenus := map[string][]config.MenuItem{
		"main": {
			{Name: "Zeta", URL: "/zeta/", Weight: 1},
			{Name: "Alpha", URL: "/alpha/", Weight: 1},
			{Name: "About", URL: "/about/", Weight: 0},
			{Name: "Contact", URL: "/contact/", Weight: 2},
		},
	}

	menus := BuildMenus(nil, configMenus)
	got := entryNames(menus["main"])
	want := []string{"About", "Alpha", "Zeta", "Contact"}
	if len(got) != len(want) {
		t.Fatalf("BuildMenus()[main] = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("BuildMenus()[main] = %v, want %v", got, want)
		}
	}
}

func TestBuildMenus_FrontMatterEntries(t *testing.T) {
	pages := []*Page{
		{
			Title:        "Hello World",
			RelPermalink: "/blog/hello-world/",
			Menus: []frontmatter.FrontMatterMenu{
				{MenuName: "main", Weight: 5},
			},
		},
	}

	menus := BuildMenus(pages, nil)
	entries := menus["main"]
	if len(entries) != 1 {
		t.Fatalf("BuildMenus()[main] has %d entries, want 1", len(entries))
	}
	if entries[0].Name != "Hello World" {
		t.Errorf("entry.Name = %q, want %q (falls back to page title)", entries[0].Name, "Hello World")
	}
	if entries[0].URL != "/blog/hello-world/" {
		t.Errorf("entry.URL = %q, want page's RelPermalink", entries[0].URL)
	}
	if entries[0].PageRef != pages[0] {
		t.Error("entry.PageRef should point back at the source page")
	}
}

// TestBuildMenus_NestsByParentIdentifier covers resolving parent-identifier
// links into a tree.
func TestBuildMenus_NestsByParentIdentifier(t *testing.T) {
	configMenus := map[string][]config.MenuItem{
		"main": {
			{Name: "Docs", Identifier: "docs", Weight: 1},
			{Name: "Guides", Parent: "docs", Weight: 2},
			{Name: "API", Parent: "docs", Weight: 1},
			{Name: "Blog", Weight: 2},
		},
	}

	menus := BuildMenus(nil, configMenus)
	roots := menus["main"]

	if got, want := entryNames(roots), []string{"Docs", "Blog"}; !equalStrings(got, want) {
		t.Fatalf("top-level entries = %v, want %v", got, want)
	}

	docs := roots[0]
	if got, want := entryNames(docs.Children), []string{"API", "Guides"}; !equalStrings(got, want) {
		t.Errorf("Docs.Children = %v, want %v (weight asc)", got, want)
	}
}

func TestBuildMenus_UnresolvedParentBecomesRoot(t *testing.T) {
	configMenus := map[string][]config.MenuItem{
		"main": {
			{Name: "Orphan", Parent: "nonexistent", Weight: 1},
		},
	}

	menus := BuildMenus(nil, configMenus)
	roots := menus["main"]
	if len(roots) != 1 || roots[0].Name != "Orphan" {
		t.Errorf("entry with unresolved parent should fall back to root level, got %v", entryNames(roots))
	}
}
