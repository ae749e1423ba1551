package tpl

import (
	"net/url"
	"path"

	"github.com/aellingwood/tsumo/internal/pathutil"
	"github.com/aellingwood/tsumo/internal/value"
)

// Path/URL and escaping builtins. relURL/absURL/relLangURL/absLangURL
// join against the build's BaseURL (Env); the "Lang" variants would add a
// language prefix only when more than one site language is configured.
func init() {
	registerBuiltin("path.base", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.String(""), nil
		}
		return value.String(path.Base(args[0].AsString())), nil
	})
	registerBuiltin("urls.parse", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Nil, nil
		}
		raw := args[0].AsString()
		u, err := url.Parse(raw)
		if err != nil {
			p, query, fragment := pathutil.SplitURL(raw)
			return value.Dict(map[string]value.Value{
				"scheme":   value.String(""),
				"host":     value.String(""),
				"path":     value.String(p),
				"query":    value.String(query),
				"fragment": value.String(fragment),
			}), nil
		}
		return value.Dict(map[string]value.Value{
			"scheme":   value.String(u.Scheme),
			"host":     value.String(u.Host),
			"path":     value.String(u.Path),
			"query":    value.String(u.RawQuery),
			"fragment": value.String(u.Fragment),
		}), nil
	})
	registerBuiltin("urls.joinpath", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.String(""), nil
		}
		result := args[0].AsString()
		for _, a := range args[1:] {
			result = pathutil.JoinURL(result, a.AsString())
		}
		return value.String(result), nil
	})
	registerBuiltin("urlquery", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.String(""), nil
		}
		return value.String(url.QueryEscape(args[0].AsString())), nil
	})
	registerBuiltin("relurl", func(scope *Scope, args []value.Value) (value.Value, error) {
		return value.String(relURL(scope, args)), nil
	})
	registerBuiltin("absurl", func(scope *Scope, args []value.Value) (value.Value, error) {
		return value.String(absURL(scope, args)), nil
	})
	registerBuiltin("rellangurl", func(scope *Scope, args []value.Value) (value.Value, error) {
		return value.String(langPrefixed(scope, relURL(scope, args))), nil
	})
	registerBuiltin("abslangurl", func(scope *Scope, args []value.Value) (value.Value, error) {
		return value.String(langPrefixed(scope, absURL(scope, args))), nil
	})
	registerBuiltin("safeURL", func(_ *Scope, args []value.Value) (value.Value, error) {
		return safeHtml(args), nil
	})
	registerBuiltin("safeHTML", func(_ *Scope, args []value.Value) (value.Value, error) {
		return safeHtml(args), nil
	})
	registerBuiltin("safeHTMLAttr", func(_ *Scope, args []value.Value) (value.Value, error) {
		return safeHtml(args), nil
	})
	registerBuiltin("safeJS", func(_ *Scope, args []value.Value) (value.Value, error) {
		return safeHtml(args), nil
	})
	registerBuiltin("safeCSS", func(_ *Scope, args []value.Value) (value.Value, error) {
		return safeHtml(args), nil
	})
	registerBuiltin("htmlEscape", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.String(""), nil
		}
		return value.String(value.EscapeHTML(args[0].AsString())), nil
	})
	registerBuiltin("htmlUnescape", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.String(""), nil
		}
		return value.String(value.UnescapeHTML(args[0].AsString())), nil
	})
}

func safeHtml(args []value.Value) value.Value {
	if len(args) == 0 {
		return value.Html("")
	}
	return value.Html(args[0].AsString())
}

func relURL(scope *Scope, args []value.Value) string {
	if len(args) == 0 {
		return ""
	}
	return pathutil.EnsureLeadingSlash(args[0].AsString())
}

func absURL(scope *Scope, args []value.Value) string {
	if len(args) == 0 {
		return ""
	}
	base := ""
	if scope.frame.env != nil {
		base = scope.frame.env.BaseURL
	}
	return pathutil.JoinURL(base, args[0].AsString())
}

// langPrefixed is a deliberate no-op: the build path is single-language,
// so there is no current-language value to prefix with even when
// LanguagesCount > 1. relLangURL/absLangURL exist so templates written
// against the usual builtin set keep working.
func langPrefixed(scope *Scope, u string) string {
	return u
}
