package tpl

import (
	"strings"

	"github.com/aellingwood/tsumo/internal/value"
)

// Collection builtins, plus `paginate` so `_default/list.html`-style
// layouts can page a PageArray inline.
func init() {
	registerBuiltin("slice", func(_ *Scope, args []value.Value) (value.Value, error) {
		return value.Array(value.KindAnyArray, append([]value.Value(nil), args...)), nil
	})
	registerBuiltin("append", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Array(value.KindAnyArray, nil), nil
		}
		list := args[len(args)-1]
		items := append([]value.Value(nil), list.Items()...)
		items = append(items, args[:len(args)-1]...)
		kind := list.Kind
		if !list.IsArray() {
			kind = value.KindAnyArray
		}
		return value.Array(kind, items), nil
	})
	registerBuiltin("dict", func(_ *Scope, args []value.Value) (value.Value, error) {
		m := map[string]value.Value{}
		for i := 0; i+1 < len(args); i += 2 {
			m[args[i].AsString()] = args[i+1]
		}
		return value.Dict(m), nil
	})
	registerBuiltin("merge", func(_ *Scope, args []value.Value) (value.Value, error) {
		m := map[string]value.Value{}
		if len(args) > 0 {
			for k, v := range args[0].DictMap() {
				m[k] = v
			}
		}
		if len(args) > 1 {
			for k, v := range args[1].DictMap() {
				m[k] = v
			}
		}
		return value.Dict(m), nil
	})
	registerBuiltin("isset", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return value.Bool(false), nil
		}
		return value.Bool(value.Isset(args[0], args[1])), nil
	})
	registerBuiltin("index", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return value.Nil, nil
		}
		return value.Index(args[0], args[1]), nil
	})
	registerBuiltin("delimit", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return value.String(""), nil
		}
		items := args[0].Items()
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = value.Stringify(it, false)
		}
		return value.String(strings.Join(parts, args[1].AsString())), nil
	})
	registerBuiltin("in", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return value.Bool(false), nil
		}
		return value.Bool(containsValue(args[0], args[1])), nil
	})
	registerBuiltin("where", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 3 {
			return args[0], nil
		}
		items := args[0]
		path := args[1].AsString()
		op := args[2].AsString()
		var expected value.Value
		if len(args) > 3 {
			expected = args[3]
		}
		kind := items.Kind
		var out []value.Value
		for _, it := range items.Items() {
			actual := resolveDotPath(it, path)
			if matchWhere(actual, op, expected) {
				out = append(out, it)
			}
		}
		return value.Array(kind, out), nil
	})
	registerBuiltin("sort", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Array(value.KindAnyArray, nil), nil
		}
		items := append([]value.Value(nil), args[0].Items()...)
		keyPath := ""
		if len(args) > 1 {
			keyPath = args[1].AsString()
		}
		desc := len(args) > 2 && strings.EqualFold(args[2].AsString(), "desc")
		keys := make([]value.Value, len(items))
		for i, it := range items {
			if keyPath == "" {
				keys[i] = it
			} else {
				keys[i] = resolveDotPath(it, keyPath)
			}
		}
		bubbleSortByKey(items, keys, desc)
		return value.Array(args[0].Kind, items), nil
	})
	registerBuiltin("uniq", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Array(value.KindAnyArray, nil), nil
		}
		seen := map[string]bool{}
		var out []value.Value
		for _, it := range args[0].Items() {
			key := value.Stringify(it, false)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, it)
		}
		return value.Array(args[0].Kind, out), nil
	})
	registerBuiltin("after", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return value.Array(value.KindAnyArray, nil), nil
		}
		n := int(args[0].AsNumber())
		items := args[1].Items()
		if n < 0 {
			n = 0
		}
		if n > len(items) {
			n = len(items)
		}
		return value.Array(args[1].Kind, append([]value.Value(nil), items[n:]...)), nil
	})
	registerBuiltin("last", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return value.Array(value.KindAnyArray, nil), nil
		}
		n := int(args[0].AsNumber())
		items := args[1].Items()
		if n < 0 {
			n = 0
		}
		if n > len(items) {
			n = len(items)
		}
		return value.Array(args[1].Kind, append([]value.Value(nil), items[len(items)-n:]...)), nil
	})
	registerBuiltin("group", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return value.Array(value.KindAnyArray, nil), nil
		}
		path := args[0].AsString()
		var order []string
		groups := map[string][]value.Value{}
		for _, it := range args[1].Items() {
			k := value.Stringify(resolveDotPath(it, path), false)
			if _, ok := groups[k]; !ok {
				order = append(order, k)
			}
			groups[k] = append(groups[k], it)
		}
		out := make([]value.Value, 0, len(order))
		for _, k := range order {
			out = append(out, value.Dict(map[string]value.Value{
				"key":   value.String(k),
				"pages": value.Array(args[1].Kind, groups[k]),
			}))
		}
		return value.Array(value.KindAnyArray, out), nil
	})
	registerBuiltin("paginate", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Nil, nil
		}
		pageSize := 10
		if len(args) > 1 {
			pageSize = int(args[1].AsNumber())
		}
		return value.Dict(map[string]value.Value{
			"pages":    args[0],
			"pagesize": value.Number(float64(pageSize)),
		}), nil
	})
}

func resolveDotPath(v value.Value, path string) value.Value {
	cur := v
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			continue
		}
		cur, _ = value.GetField(cur, seg, nil)
	}
	return cur
}

func containsValue(container, needle value.Value) bool {
	switch container.Kind {
	case value.KindString:
		return strings.Contains(container.AsString(), needle.AsString())
	case value.KindDict:
		return value.Isset(container, needle)
	}
	if container.IsArray() {
		for _, it := range container.Items() {
			if value.Compare(it, needle, "eq") {
				return true
			}
		}
	}
	return false
}

func matchWhere(actual value.Value, op string, expected value.Value) bool {
	switch op {
	case "eq":
		return value.Compare(actual, expected, "eq")
	case "ne":
		return value.Compare(actual, expected, "ne")
	case "in":
		return containsValue(expected, actual)
	case "not in":
		return !containsValue(expected, actual)
	}
	return false
}

// bubbleSortByKey is an explicitly simple stable sort; the collections
// passed to `sort` are small enough that O(n²) is fine.
func bubbleSortByKey(items, keys []value.Value, desc bool) {
	n := len(items)
	for i := 0; i < n; i++ {
		for j := 0; j < n-i-1; j++ {
			swap := value.Compare(keys[j], keys[j+1], "gt")
			if desc {
				swap = value.Compare(keys[j], keys[j+1], "lt")
			}
			if swap {
				keys[j], keys[j+1] = keys[j+1], keys[j]
				items[j], items[j+1] = items[j+1], items[j]
			}
		}
	}
}
