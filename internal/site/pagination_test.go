package site

import (
	"fmt"
	"testing"
)

// makePages creates n pages with sequential titles for testing pagination.
func makePages(n int) []*Page {
	pages := make([]*Page, n)
	for i := 0; i < n; i++ {
		pages[i] = &Page{Title: fmt.Sprintf("Page %d", i+1)}
	}
	return pages
}

func TestPaginate_Basic(t *testing.T) {
	pages := makePages(10)
	pagers := Paginate(pages, 3, "/blog/")

	if len(pagers) != 4 {
		t.Fatalf("expected 4 pagers, got %d", len(pagers))
	}

	p := pagers[0]
	if p.PageNumber != 1 || p.TotalPages != 4 || len(p.Pages) != 3 {
		t.Errorf("pager[0] = %+v, want PageNumber=1 TotalPages=4 len(Pages)=3", p)
	}
	if p.HasPrev {
		t.Error("pager[0].HasPrev should be false")
	}
	if !p.HasNext {
		t.Error("pager[0].HasNext should be true")
	}

	last := pagers[3]
	if last.PageNumber != 4 || len(last.Pages) != 1 {
		t.Errorf("pager[3] = %+v, want PageNumber=4 len(Pages)=1", last)
	}
	if !last.HasPrev {
		t.Error("pager[3].HasPrev should be true")
	}
	if last.HasNext {
		t.Error("pager[3].HasNext should be false")
	}
	if last.NextURL != "" {
		t.Errorf("last pager.NextURL = %q, want empty", last.NextURL)
	}
}

func TestPaginate_SinglePage(t *testing.T) {
	pages := makePages(3)
	pagers := Paginate(pages, 10, "/blog/")

	if len(pagers) != 1 {
		t.Fatalf("expected 1 pager, got %d", len(pagers))
	}
	p := pagers[0]
	if p.HasPrev || p.HasNext {
		t.Error("single pager should have neither HasPrev nor HasNext")
	}
	if len(p.Pages) != 3 {
		t.Errorf("pager has %d pages, want 3", len(p.Pages))
	}
}

func TestPaginate_Empty(t *testing.T) {
	if pagers := Paginate(nil, 10, "/blog/"); pagers != nil {
		t.Errorf("Paginate(nil) = %v, want nil", pagers)
	}
}

func TestPaginate_NonPositivePageSizeDefaults(t *testing.T) {
	pages := makePages(25)
	pagers := Paginate(pages, 0, "/blog/")
	if len(pagers) != 3 {
		t.Fatalf("Paginate with pageSize<=0 should default to 10 per page, got %d pagers for 25 items", len(pagers))
	}
}

func TestPaginate_URLs(t *testing.T) {
	pages := makePages(7)
	pagers := Paginate(pages, 3, "/blog/")

	if pagers[0].PrevURL != "" {
		t.Errorf("pagers[0].PrevURL = %q, want empty", pagers[0].PrevURL)
	}
	if pagers[1].PrevURL != "/blog/" {
		t.Errorf("pagers[1].PrevURL = %q, want /blog/ (page 2 links back to the base)", pagers[1].PrevURL)
	}
	if pagers[2].PrevURL != "/blog/page/2/" {
		t.Errorf("pagers[2].PrevURL = %q, want /blog/page/2/", pagers[2].PrevURL)
	}
	if pagers[0].Last != "/blog/page/3/" {
		t.Errorf("pagers[0].Last = %q, want /blog/page/3/", pagers[0].Last)
	}
}
