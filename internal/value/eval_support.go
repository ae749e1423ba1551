package value

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
)

// Truthy reports a value's truth: Nil=false; Bool=value; Number=value!=0;
// String/Html=non-empty; Dict=non-empty; any typed array=non-empty;
// otherwise true.
func Truthy(v Value) bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBool:
		return v.b
	case KindNumber:
		return v.n != 0
	case KindString, KindHtml, KindVersionString:
		return v.s != ""
	case KindDict:
		return len(v.DictMap()) > 0
	}
	if v.IsArray() {
		return len(v.Items()) > 0
	}
	return true
}

// Compare implements eq/ne/lt/le/gt/ge: VersionString uses semver
// comparison, Number/Number compares numerically, otherwise values compare
// as plain strings.
func Compare(a, b Value, op string) bool {
	if a.Kind == KindVersionString || b.Kind == KindVersionString {
		return compareOrdered(semverKey(Stringify(a, false)), semverKey(Stringify(b, false)), op)
	}
	if a.Kind == KindNumber && b.Kind == KindNumber {
		return compareOrdered(a.n, b.n, op)
	}
	return compareOrdered(Stringify(a, false), Stringify(b, false), op)
}

type ordered interface {
	~float64 | ~string | int
}

func compareOrdered[T ordered](a, b T, op string) bool {
	switch op {
	case "eq":
		return a == b
	case "ne":
		return a != b
	case "lt":
		return a < b
	case "le":
		return a <= b
	case "gt":
		return a > b
	case "ge":
		return a >= b
	}
	return false
}

// semverKey reduces a dotted version string to a comparable slice encoded as
// a fixed-width string so compareOrdered's generic string path can compare
// it segment by segment without a custom type.
func semverKey(v string) string {
	v = strings.TrimPrefix(v, "v")
	parts := strings.SplitN(v, ".", 3)
	var b strings.Builder
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimFunc(p, func(r rune) bool { return r < '0' || r > '9' }))
		if err != nil {
			n = 0
		}
		fmt.Fprintf(&b, "%010d.", n)
	}
	return b.String()
}

// Stringify renders v to its template output form. Html is emitted as-is
// (already trusted); String/VersionString are HTML-escaped when escape is
// true; other kinds use a best-effort textual form.
func Stringify(v Value, escape bool) string {
	switch v.Kind {
	case KindNil:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		if v.n == math.Trunc(v.n) && !math.IsInf(v.n, 0) {
			return strconv.FormatInt(int64(v.n), 10)
		}
		return strconv.FormatFloat(v.n, 'g', -1, 64)
	case KindHtml:
		return v.s
	case KindString, KindVersionString, KindMediaType:
		if escape {
			return EscapeHTML(v.s)
		}
		return v.s
	}
	if v.IsArray() {
		items := v.Items()
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = Stringify(it, escape)
		}
		return strings.Join(parts, " ")
	}
	return fmt.Sprintf("%v", v.payload)
}

// EscapeHTML applies exactly four substitutions, in this order:
// & -> &amp;, < -> &lt;, > -> &gt;, " -> &quot;.
func EscapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}

// UnescapeHTML decodes HTML entities using the full named-entity table (a
// superset of EscapeHTML's four substitutions, matching htmlUnescape's
// broader real-world inputs).
func UnescapeHTML(s string) string {
	return html.UnescapeString(s)
}

// Index implements the `index` builtin: map/Dict lookup by key, or
// positional array lookup by integer index. Out-of-range or type-mismatched
// lookups return Nil, never an error.
func Index(container, key Value) Value {
	switch container.Kind {
	case KindDict:
		val, _ := GetField(container, Stringify(key, false), nil)
		return val
	}
	if container.IsArray() {
		idx := int(key.AsNumber())
		items := container.Items()
		if idx < 0 || idx >= len(items) {
			return Nil
		}
		return items[idx]
	}
	return Nil
}

// Isset reports whether Index(container, key) would be non-Nil.
func Isset(container, key Value) bool {
	return !Index(container, key).IsNil()
}
