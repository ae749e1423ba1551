package frontmatter

import "strings"

// parseTOMLBlock parses the bounded TOML front-matter dialect: section
// headers, [[menu.<name>]] entries, and inline key = value lines.
func parseTOMLBlock(lines []string) FrontMatter {
	fm := newFrontMatter()
	section := ""
	var curMenu *FrontMatterMenu

	for _, raw := range lines {
		t := strings.TrimSpace(raw)
		if t == "" {
			continue
		}
		if strings.HasPrefix(t, "[[") && strings.HasSuffix(t, "]]") {
			name := strings.TrimSuffix(strings.TrimPrefix(t, "[["), "]]")
			if strings.HasPrefix(name, "menu.") {
				fm.Menus = append(fm.Menus, FrontMatterMenu{MenuName: strings.TrimPrefix(name, "menu.")})
				curMenu = &fm.Menus[len(fm.Menus)-1]
				section = "menu"
			} else {
				section = name
				curMenu = nil
			}
			continue
		}
		if strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]") {
			section = strings.TrimSuffix(strings.TrimPrefix(t, "["), "]")
			curMenu = nil
			continue
		}
		key, val, ok := splitTOMLKeyValue(t)
		if !ok {
			continue
		}
		lkey := strings.ToLower(key)
		switch section {
		case "params":
			fm.Params[lkey] = tomlScalar(val)
		case "menu":
			if curMenu != nil {
				applyMenuField(curMenu, lkey, val)
			}
		default:
			applyTOMLTopLevel(&fm, lkey, val)
		}
	}
	return fm
}

func applyTOMLTopLevel(fm *FrontMatter, lkey, val string) {
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
		fm.Params[lkey] = tomlScalar(val)
	}
}

func tomlScalar(val string) ParamValue {
	return parseScalarParam(val)
}
