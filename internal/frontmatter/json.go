package frontmatter

import (
	"encoding/json"
	"strings"
)

// parseJSONBlock extracts JSON front matter. The balanced brace range is
// found by counting brace characters naively, without regard for braces
// occurring inside string values; a document containing "}" inside a
// string value before the true end is mis-delimited. Kept that way for
// compatibility with documents written against the same rule.
func parseJSONBlock(text string) (FrontMatter, string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return FrontMatter{}, "", false
	}
	depth := 0
	end := -1
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = i
			}
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return FrontMatter{}, "", false
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return FrontMatter{}, "", false
	}

	body := strings.TrimLeft(text[end+1:], " \t\r\n")
	return fromRawMap(raw), body, true
}

func fromRawMap(raw map[string]any) FrontMatter {
	fm := newFrontMatter()
	for k, v := range raw {
		lk := strings.ToLower(k)
		switch lk {
		case "title":
			fm.Title, _ = v.(string)
		case "date":
			if s, ok := v.(string); ok {
				fm.Date = parseDate(s)
			}
		case "draft":
			fm.Draft = toBoolAny(v)
		case "description":
			fm.Description, _ = v.(string)
		case "slug":
			fm.Slug, _ = v.(string)
		case "layout":
			fm.Layout, _ = v.(string)
		case "type":
			fm.Type, _ = v.(string)
		case "tags":
			fm.Tags = toStringSliceAny(v)
		case "categories":
			fm.Categories = toStringSliceAny(v)
		case "params":
			if m, ok := v.(map[string]any); ok {
				for pk, pv := range m {
					fm.Params[strings.ToLower(pk)] = toParamValueAny(pv)
				}
			}
		case "menu":
			fm.Menus = append(fm.Menus, menusFromAny(v)...)
		default:
			fm.Params[lk] = toParamValueAny(v)
		}
	}
	return fm
}

func toBoolAny(v any) bool {
	b, _ := v.(bool)
	return b
}

func toStringSliceAny(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		if s, ok := v.(string); ok {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func toParamValueAny(v any) ParamValue {
	switch t := v.(type) {
	case bool:
		return ParamValue{Kind: ParamBool, Bool: t}
	case float64:
		return ParamValue{Kind: ParamNumber, Num: int(t)}
	case string:
		return ParamValue{Kind: ParamString, Str: t}
	default:
		return ParamValue{Kind: ParamString, Str: ""}
	}
}

func menusFromAny(v any) []FrontMatterMenu {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	var out []FrontMatterMenu
	for name, entryVal := range m {
		entry := FrontMatterMenu{MenuName: name}
		if fields, ok := entryVal.(map[string]any); ok {
			for fk, fv := range fields {
				switch strings.ToLower(fk) {
				case "weight":
					if n, ok := fv.(float64); ok {
						entry.Weight = int(n)
					}
				case "name":
					entry.Name, _ = fv.(string)
				case "parent":
					entry.Parent, _ = fv.(string)
				case "identifier":
					entry.Identifier, _ = fv.(string)
				case "pre":
					entry.Pre, _ = fv.(string)
				case "post":
					entry.Post, _ = fv.(string)
				case "title":
					entry.Title, _ = fv.(string)
				}
			}
		}
		out = append(out, entry)
	}
	return out
}
