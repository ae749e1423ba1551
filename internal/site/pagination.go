package site

import "fmt"

// Pager represents a single page of paginated results, the shape the
// `paginate` template builtin hands to list layouts.
type Pager struct {
	Pages      []*Page
	PageNumber int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevURL    string
	NextURL    string
	First      string
	Last       string
}

// Paginate splits pages into groups of pageSize. Edge cases: empty pages
// returns an empty slice; pageSize <= 0 defaults to 10; fewer pages than
// pageSize produces a single Pager.
func Paginate(pages []*Page, pageSize int, baseURL string) []*Pager {
	if len(pages) == 0 {
		return nil
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	totalPages := (len(pages) + pageSize - 1) / pageSize

	lastURL := baseURL
	if totalPages > 1 {
		lastURL = fmt.Sprintf("%spage/%d/", baseURL, totalPages)
	}

	pagers := make([]*Pager, 0, totalPages)
	for i := 0; i < totalPages; i++ {
		start := i * pageSize
		end := start + pageSize
		if end > len(pages) {
			end = len(pages)
		}
		pageNum := i + 1

		pager := &Pager{
			Pages:      pages[start:end],
			PageNumber: pageNum,
			TotalPages: totalPages,
			HasPrev:    pageNum > 1,
			HasNext:    pageNum < totalPages,
			First:      baseURL,
			Last:       lastURL,
		}
		if pager.HasPrev {
			if pageNum == 2 {
				pager.PrevURL = baseURL
			} else {
				pager.PrevURL = fmt.Sprintf("%spage/%d/", baseURL, pageNum-1)
			}
		}
		if pager.HasNext {
			pager.NextURL = fmt.Sprintf("%spage/%d/", baseURL, pageNum+1)
		}

		pagers = append(pagers, pager)
	}

	return pagers
}
