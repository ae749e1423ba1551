package tpl

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aellingwood/tsumo/internal/value"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)
var slugRe = regexp.MustCompile(`[^a-z0-9]+`)
var wrappingParaRe = regexp.MustCompile(`^\s*<p>([\s\S]*)</p>\s*$`)

// String builtins. `title` is deliberately a plain ASCII word-initial
// capitalizer rather than golang.org/x/text/cases' locale-aware
// titlecasing, which rewrites more than templates expect.
func init() {
	registerBuiltin("lower", str1(strings.ToLower))
	registerBuiltin("upper", str1(strings.ToUpper))
	registerBuiltin("title", str1(titleCaseASCII))
	registerBuiltin("trim", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.String(""), nil
		}
		s := args[0].AsString()
		if len(args) >= 2 {
			return value.String(strings.Trim(s, args[1].AsString())), nil
		}
		return value.String(strings.TrimSpace(s)), nil
	})
	registerBuiltin("replace", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 3 {
			return value.String(""), nil
		}
		return value.String(strings.ReplaceAll(args[0].AsString(), args[1].AsString(), args[2].AsString())), nil
	})
	registerBuiltin("replaceRE", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 3 {
			return value.String(""), nil
		}
		re, err := regexp.Compile(args[0].AsString())
		if err != nil {
			return value.String(args[2].AsString()), nil
		}
		return value.String(re.ReplaceAllString(args[2].AsString(), args[1].AsString())), nil
	})
	registerBuiltin("truncate", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return value.String(""), nil
		}
		n := int(args[0].AsNumber())
		s := args[1].AsString()
		ellipsis := "…"
		if len(args) >= 3 {
			ellipsis = args[2].AsString()
		}
		runes := []rune(s)
		if len(runes) <= n {
			return value.String(s), nil
		}
		return value.String(string(runes[:n]) + ellipsis), nil
	})
	registerBuiltin("plainify", str1(func(s string) string {
		return strings.TrimSpace(tagRe.ReplaceAllString(s, ""))
	}))
	registerBuiltin("markdownify", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Html(""), nil
		}
		s := args[0].AsString()
		if m := wrappingParaRe.FindStringSubmatch(s); m != nil {
			s = m[1]
		}
		return value.Html(s), nil
	})
	registerBuiltin("urlize", str1(slugify))
	registerBuiltin("humanize", str1(humanize))
	registerBuiltin("split", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return value.Strings(nil), nil
		}
		return value.Strings(strings.Split(args[0].AsString(), args[1].AsString())), nil
	})
	registerBuiltin("printf", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.String(""), nil
		}
		return value.String(sprintf(args[0].AsString(), args[1:])), nil
	})
	registerBuiltin("print", func(_ *Scope, args []value.Value) (value.Value, error) {
		var b strings.Builder
		for _, a := range args {
			b.WriteString(value.Stringify(a, false))
		}
		return value.String(b.String()), nil
	})

	registerBuiltin("strings.contains", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return value.Bool(false), nil
		}
		return value.Bool(strings.Contains(args[0].AsString(), args[1].AsString())), nil
	})
	registerBuiltin("strings.hasprefix", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return value.Bool(false), nil
		}
		return value.Bool(strings.HasPrefix(args[0].AsString(), args[1].AsString())), nil
	})
	// TrimPrefix/TrimSuffix take the affix first so the subject string can be
	// piped in as the trailing argument.
	registerBuiltin("strings.trimprefix", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return value.String(""), nil
		}
		return value.String(strings.TrimPrefix(args[1].AsString(), args[0].AsString())), nil
	})
	registerBuiltin("strings.trimsuffix", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return value.String(""), nil
		}
		return value.String(strings.TrimSuffix(args[1].AsString(), args[0].AsString())), nil
	})
}

func str1(fn func(string) string) BuiltinFunc {
	return func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.String(""), nil
		}
		return value.String(fn(args[0].AsString())), nil
	}
}

func titleCaseASCII(s string) string {
	runes := []rune(s)
	startOfWord := true
	for i, r := range runes {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isLetter {
			startOfWord = true
			continue
		}
		if startOfWord && r >= 'a' && r <= 'z' {
			runes[i] = r - ('a' - 'A')
		}
		startOfWord = false
	}
	return string(runes)
}

func slugify(s string) string {
	s = strings.ToLower(s)
	s = slugRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func humanize(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return out
	}
	runes := []rune(out)
	if runes[0] >= 'a' && runes[0] <= 'z' {
		runes[0] -= 'a' - 'A'
	}
	return string(runes)
}

// sprintf implements the supported printf verb subset (%s, %d, %v, %%)
// by hand rather than delegating straight to fmt.Sprintf, since a Value's
// Go-side representation (float64 for every Number) doesn't match %d's
// integer-type requirement without this translation.
func sprintf(format string, args []value.Value) string {
	var b strings.Builder
	argIdx := 0
	nextArg := func() value.Value {
		if argIdx >= len(args) {
			return value.Nil
		}
		v := args[argIdx]
		argIdx++
		return v
	}
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i == len(format)-1 {
			b.WriteByte(c)
			continue
		}
		switch format[i+1] {
		case '%':
			b.WriteByte('%')
			i++
		case 's':
			b.WriteString(value.Stringify(nextArg(), false))
			i++
		case 'd':
			fmt.Fprintf(&b, "%d", int64(nextArg().AsNumber()))
			i++
		case 'v':
			b.WriteString(value.Stringify(nextArg(), false))
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
