package frontmatter

import "strings"

// parseYAMLBlock parses the bounded YAML front-matter dialect:
// non-indented key: value lines with two-space-indented blocks under
// params/tags/categories/menu.
func parseYAMLBlock(lines []string) FrontMatter {
	fm := newFrontMatter()
	i := 0
	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			i++
			continue
		}
		if countLeadingSpaces(line) != 0 {
			// Orphan indented line with no owning top-level key; ignore.
			i++
			continue
		}
		key, val, ok := splitKeyValue(line)
		if !ok {
			i++
			continue
		}
		lkey := strings.ToLower(key)
		i++
		if val == "" {
			block, consumed := gatherIndentedBlock(lines, i)
			i += consumed
			applyYAMLBlock(&fm, lkey, block)
			continue
		}
		applyYAMLScalar(&fm, lkey, val)
	}
	return fm
}

// gatherIndentedBlock collects every following line indented by at least
// two spaces (or blank), stopping at the first line back at indent 0.
func gatherIndentedBlock(lines []string, start int) (block []string, consumed int) {
	i := start
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "" {
			block = append(block, lines[i])
			i++
			continue
		}
		if countLeadingSpaces(lines[i]) < 2 {
			break
		}
		block = append(block, lines[i])
		i++
	}
	return block, i - start
}

func applyYAMLBlock(fm *FrontMatter, lkey string, block []string) {
	switch lkey {
	case "tags":
		fm.Tags = parseDashList(block)
	case "categories":
		fm.Categories = parseDashList(block)
	case "params":
		for _, l := range block {
			if strings.TrimSpace(l) == "" || countLeadingSpaces(l) != 2 {
				continue
			}
			k, v, ok := splitKeyValue(strings.TrimSpace(l))
			if !ok {
				continue
			}
			fm.Params[strings.ToLower(k)] = parseScalarParam(v)
		}
	case "menu":
		fm.Menus = append(fm.Menus, parseYAMLMenuBlock(block)...)
	}
}

func parseDashList(block []string) []string {
	var out []string
	for _, l := range block {
		t := strings.TrimSpace(l)
		if !strings.HasPrefix(t, "-") {
			continue
		}
		item := unquote(strings.TrimSpace(strings.TrimPrefix(t, "-")))
		out = append(out, item)
	}
	return out
}

// parseYAMLMenuBlock implements the two-tier menu dialect: two-space-indented
// lines are menu-name headers, four-space-indented lines supply entry
// fields for the most recently opened header.
func parseYAMLMenuBlock(block []string) []FrontMatterMenu {
	var menus []FrontMatterMenu
	i := 0
	for i < len(block) {
		line := block[i]
		if strings.TrimSpace(line) == "" {
			i++
			continue
		}
		if countLeadingSpaces(line) != 2 {
			i++
			continue
		}
		key, val, ok := splitKeyValue(strings.TrimSpace(line))
		i++
		if !ok {
			continue
		}
		entry := FrontMatterMenu{MenuName: key}
		if val == "" {
			for i < len(block) {
				fl := block[i]
				if strings.TrimSpace(fl) == "" {
					i++
					continue
				}
				if countLeadingSpaces(fl) < 4 {
					break
				}
				fk, fv, fok := splitKeyValue(strings.TrimSpace(fl))
				if fok {
					applyMenuField(&entry, strings.ToLower(fk), fv)
				}
				i++
			}
		}
		// val non-empty (e.g. "true" or an inline scalar) also yields an
		// empty menu entry keyed by the header name.
		menus = append(menus, entry)
	}
	return menus
}

func applyYAMLScalar(fm *FrontMatter, lkey, val string) {
	if isInlineArray(val) {
		items := parseInlineArray(val)
		switch lkey {
		case "tags":
			fm.Tags = items
		case "categories":
			fm.Categories = items
		default:
			fm.Params[lkey] = ParamValue{Kind: ParamString, Str: strings.Join(items, ",")}
		}
		return
	}
	switch lkey {
	case "title":
		fm.Title = unquote(val)
	case "date":
		fm.Date = parseDate(val)
	case "draft":
		fm.Draft = parseBoolScalar(val)
	case "description":
		fm.Description = unquote(val)
	case "slug":
		fm.Slug = unquote(val)
	case "layout":
		fm.Layout = unquote(val)
	case "type":
		fm.Type = unquote(val)
	case "tags":
		fm.Tags = []string{unquote(val)}
	case "categories":
		fm.Categories = []string{unquote(val)}
	default:
		fm.Params[lkey] = parseScalarParam(val)
	}
}
