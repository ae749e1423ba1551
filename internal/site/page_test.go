package site

import (
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// newPage creates a *Page with the given title and default zero values for
// everything else. Use the functional option helpers below to set fields.
func newPage(title string, opts ...func(*Page)) *Page {
	p := &Page{Title: title}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func withDate(t time.Time) func(*Page) {
	return func(p *Page) { p.Date = t }
}

func withWeight(w int) func(*Page) {
	return func(p *Page) { p.Weight = w }
}

func withDraft(d bool) func(*Page) {
	return func(p *Page) { p.Draft = d }
}

func withExpiryDate(t time.Time) func(*Page) {
	return func(p *Page) { p.ExpiryDate = t }
}

// titles extracts the Title field from each page for easy comparison.
func titles(pages []*Page) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.Title
	}
	return out
}

// equalStrings compares two string slices for equality.
func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Tests: Kind
// ---------------------------------------------------------------------------

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindHome, "home"},
		{KindSection, "section"},
		{KindTerm, "term"},
		{KindTaxonomy, "taxonomy"},
		{KindPage, "page"},
		{Kind(99), "page"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.k), got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// Tests: Sorting
// ---------------------------------------------------------------------------

func TestSortByDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	earlier := now.Add(-48 * time.Hour)
	later := now.Add(48 * time.Hour)

	t.Run("ascending", func(t *testing.T) {
		pages := []*Page{
			newPage("Middle", withDate(now)),
			newPage("Earliest", withDate(earlier)),
			newPage("Latest", withDate(later)),
		}
		SortByDate(pages, true)
		got := titles(pages)
		want := []string{"Earliest", "Middle", "Latest"}
		if !equalStrings(got, want) {
			t.Errorf("SortByDate(ascending) = %v, want %v", got, want)
		}
	})

	t.Run("descending", func(t *testing.T) {
		pages := []*Page{
			newPage("Middle", withDate(now)),
			newPage("Earliest", withDate(earlier)),
			newPage("Latest", withDate(later)),
		}
		SortByDate(pages, false)
		got := titles(pages)
		want := []string{"Latest", "Middle", "Earliest"}
		if !equalStrings(got, want) {
			t.Errorf("SortByDate(descending) = %v, want %v", got, want)
		}
	})
}

func TestSortByWeight(t *testing.T) {
	pages := []*Page{
		newPage("Unset", withWeight(0)),
		newPage("Heavy", withWeight(10)),
		newPage("Light", withWeight(1)),
		newPage("Medium", withWeight(5)),
		newPage("AlsoUnset", withWeight(0)),
	}
	SortByWeight(pages)
	got := titles(pages)
	want := []string{"Light", "Medium", "Heavy", "Unset", "AlsoUnset"}
	if !equalStrings(got, want) {
		t.Errorf("SortByWeight() = %v, want %v", got, want)
	}
}

func TestSortByTitle(t *testing.T) {
	pages := []*Page{
		newPage("Charlie"),
		newPage("alpha"),
		newPage("Bravo"),
		newPage("delta"),
	}
	SortByTitle(pages)
	got := titles(pages)
	want := []string{"alpha", "Bravo", "Charlie", "delta"}
	if !equalStrings(got, want) {
		t.Errorf("SortByTitle() = %v, want %v", got, want)
	}
}

// ---------------------------------------------------------------------------
// Tests: Filtering (draft/non-draft must partition the input, the same
// split the "where .draft eq true/false" template idiom relies on)
// ---------------------------------------------------------------------------

func TestFilterDrafts(t *testing.T) {
	pages := []*Page{
		newPage("Published1", withDraft(false)),
		newPage("Draft1", withDraft(true)),
		newPage("Published2", withDraft(false)),
		newPage("Draft2", withDraft(true)),
	}

	filtered := FilterDrafts(pages)
	got := titles(filtered)
	want := []string{"Published1", "Published2"}
	if !equalStrings(got, want) {
		t.Errorf("FilterDrafts() = %v, want %v", got, want)
	}
	if len(pages) != 4 {
		t.Errorf("FilterDrafts() mutated original slice: len = %d, want 4", len(pages))
	}
}

func TestFilterDrafts_PartitionsAllPages(t *testing.T) {
	pages := []*Page{
		newPage("A", withDraft(false)),
		newPage("B", withDraft(true)),
		newPage("C", withDraft(false)),
		newPage("D", withDraft(true)),
		newPage("E", withDraft(false)),
	}

	nonDrafts := FilterDrafts(pages)
	var drafts []*Page
	for _, p := range pages {
		if p.Draft {
			drafts = append(drafts, p)
		}
	}

	if len(nonDrafts)+len(drafts) != len(pages) {
		t.Fatalf("non-drafts (%d) + drafts (%d) != total pages (%d)", len(nonDrafts), len(drafts), len(pages))
	}

	seen := make(map[*Page]bool, len(pages))
	for _, p := range nonDrafts {
		if p.Draft {
			t.Errorf("FilterDrafts() included a draft page %q", p.Title)
		}
		seen[p] = true
	}
	for _, p := range drafts {
		if seen[p] {
			t.Errorf("page %q present in both the draft and non-draft partitions", p.Title)
		}
		seen[p] = true
	}
	if len(seen) != len(pages) {
		t.Errorf("partition did not cover every page: saw %d of %d", len(seen), len(pages))
	}
}

func TestFilterFuture(t *testing.T) {
	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	pages := []*Page{
		newPage("PastPost", withDate(past)),
		newPage("FuturePost", withDate(future)),
		newPage("AnotherPast", withDate(past)),
	}

	filtered := FilterFuture(pages)
	got := titles(filtered)
	want := []string{"PastPost", "AnotherPast"}
	if !equalStrings(got, want) {
		t.Errorf("FilterFuture() = %v, want %v", got, want)
	}
	if len(pages) != 3 {
		t.Errorf("FilterFuture() mutated original slice: len = %d, want 3", len(pages))
	}
}

func TestFilterExpired(t *testing.T) {
	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	pages := []*Page{
		newPage("NoExpiry"),
		newPage("ExpiredPost", withExpiryDate(past)),
		newPage("FutureExpiry", withExpiryDate(future)),
		newPage("AlsoNoExpiry"),
	}

	filtered := FilterExpired(pages)
	got := titles(filtered)
	want := []string{"NoExpiry", "FutureExpiry", "AlsoNoExpiry"}
	if !equalStrings(got, want) {
		t.Errorf("FilterExpired() = %v, want %v", got, want)
	}
	if len(pages) != 4 {
		t.Errorf("FilterExpired() mutated original slice: len = %d, want 4", len(pages))
	}
}

func TestPermalink(t *testing.T) {
	p := newPage("Home")
	p.RelPermalink = "/blog/hello/"
	if got, want := p.Permalink("https://example.com/"), "https://example.com/blog/hello/"; got != want {
		t.Errorf("Permalink() = %q, want %q", got, want)
	}

	empty := newPage("Empty")
	if got, want := empty.Permalink("https://example.com/"), "https://example.com/"; got != want {
		t.Errorf("Permalink() with empty RelPermalink = %q, want %q", got, want)
	}
}

func TestKindPredicates(t *testing.T) {
	home := &Page{Kind: KindHome}
	if !home.IsHome() || !home.IsNode() {
		t.Error("home page should report IsHome() and IsNode()")
	}
	page := &Page{Kind: KindPage}
	if !page.IsPage() || page.IsNode() {
		t.Error("regular page should report IsPage() and not IsNode()")
	}
	term := &Page{Kind: KindTerm}
	if !term.IsTerm() || !term.IsNode() {
		t.Error("term page should report IsTerm() and IsNode()")
	}
}
