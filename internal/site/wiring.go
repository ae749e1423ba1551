package site

// WireAncestorsAndPages is the fill-in-wiring phase between discovery and
// rendering: it sets Parent, Ancestors, Pages, and
// PrevInSection/NextInSection exactly once, before any template render.
// allPages must include the home page, every section page, and every
// regular content page (but not taxonomy/term pages, which have no home
// section to wire into).
func WireAncestorsAndPages(allPages []*Page) {
	var home *Page
	sections := make(map[string]*Page)
	for _, p := range allPages {
		switch p.Kind {
		case KindHome:
			home = p
		case KindSection:
			sections[p.Section] = p
		}
	}

	for _, p := range allPages {
		switch p.Kind {
		case KindHome:
			continue
		case KindSection:
			p.Parent = home
		default:
			if sec, ok := sections[p.Section]; ok {
				p.Parent = sec
			} else {
				p.Parent = home
			}
		}
	}

	for _, p := range allPages {
		p.Ancestors = ancestorsOf(p)
	}

	if home != nil {
		home.Pages = topLevelPages(allPages, sections)
	}
	for section, sec := range sections {
		sec.Pages = regularPagesIn(allPages, section)
		SortByDate(sec.Pages, false)
	}

	for _, sec := range sections {
		wirePrevNext(sec.Pages)
	}
}

func ancestorsOf(p *Page) []*Page {
	var out []*Page
	for cur := p.Parent; cur != nil; cur = cur.Parent {
		out = append(out, cur)
	}
	return out
}

func topLevelPages(allPages []*Page, sections map[string]*Page) []*Page {
	var out []*Page
	for _, p := range allPages {
		if p.Kind == KindSection {
			out = append(out, p)
		}
	}
	SortByWeight(out)
	return out
}

func regularPagesIn(allPages []*Page, section string) []*Page {
	var out []*Page
	for _, p := range allPages {
		if p.Kind == KindPage && p.Section == section {
			out = append(out, p)
		}
	}
	return out
}

// wirePrevNext defines PrevInSection/NextInSection by index within pages:
// PrevInSection is pages[i-1], NextInSection is pages[i+1].
func wirePrevNext(pages []*Page) {
	for i, p := range pages {
		if i > 0 {
			p.PrevInSection = pages[i-1]
		}
		if i+1 < len(pages) {
			p.NextInSection = pages[i+1]
		}
	}
}
