package value

import "strings"

// FieldFunc projects a value into a field result. args holds any call
// arguments when the field is invoked as a zero/n-arg pseudo-method
// (e.g. PageArray.byDate).
type FieldFunc func(v Value, args []Value) (Value, error)

var fieldTables = map[Kind]map[string]FieldFunc{}

// RegisterFields merges table into the field-access table for k. Field
// names are matched case-insensitively, so keys are lowercased on
// registration. Domain packages call this from init().
func RegisterFields(k Kind, table map[string]FieldFunc) {
	dst, ok := fieldTables[k]
	if !ok {
		dst = map[string]FieldFunc{}
		fieldTables[k] = dst
	}
	for name, fn := range table {
		dst[strings.ToLower(name)] = fn
	}
}

// GetField resolves a dotted path segment against v:
//   - lookup is case-insensitive
//   - a variant with no matching entry returns Nil, never an error
//   - Nil.anything is Nil
//   - Dict tries the exact key first, then a case-insensitive scan
func GetField(v Value, name string, args []Value) (Value, error) {
	if v.Kind == KindNil {
		return Nil, nil
	}
	if kv, ok := v.payload.(KeyedValue); ok {
		if val, found := kv.LookupKey(name); found {
			return val, nil
		}
	}
	table, ok := fieldTables[v.Kind]
	if !ok {
		return Nil, nil
	}
	fn, ok := table[strings.ToLower(name)]
	if !ok {
		return Nil, nil
	}
	return fn(v, args)
}

func init() {
	// Array pseudo-fields shared by every array kind. Registered
	// generically since the
	// behavior (stable sort / reverse / len) does not depend on element type,
	// only PageArray's sort keys are page-specific field names.
	for _, k := range []Kind{KindPageArray, KindStringArray, KindSitesArray, KindAnyArray, KindMenuArray, KindNavArray, KindDocsMountArray} {
		RegisterFields(k, map[string]FieldFunc{
			"len": func(v Value, _ []Value) (Value, error) {
				return Number(float64(len(v.Items()))), nil
			},
			"reverse": func(v Value, _ []Value) (Value, error) {
				items := v.Items()
				out := make([]Value, len(items))
				for i, item := range items {
					out[len(items)-1-i] = item
				}
				return Array(v.Kind, out), nil
			},
		})
	}
	RegisterFields(KindPageArray, map[string]FieldFunc{
		"bydate":        sortByField("date"),
		"bylastmod":     sortByField("lastmod"),
		"bypublishdate": sortByField("publishdate"),
		"bytitle":       sortByField("title"),
		"byweight":      sortByWeight,
	})
}

// sortByField returns a FieldFunc that stably sorts a PageArray ascending by
// the named field, comparing as strings (dates are stored ISO-8601 so
// lexical order matches chronological order) or numbers when the field
// yields a Number.
func sortByField(field string) FieldFunc {
	return func(v Value, _ []Value) (Value, error) {
		items := append([]Value(nil), v.Items()...)
		keys := make([]Value, len(items))
		for i, item := range items {
			keys[i], _ = GetField(item, field, nil)
		}
		stableSortByKey(items, keys)
		return Array(v.Kind, items), nil
	}
}

// sortByWeight sorts ascending by the "weight" field, falling back to input
// order when the field is absent (Nil) for an element.
func sortByWeight(v Value, _ []Value) (Value, error) {
	items := append([]Value(nil), v.Items()...)
	keys := make([]Value, len(items))
	for i, item := range items {
		keys[i], _ = GetField(item, "weight", nil)
	}
	stableSortByKey(items, keys)
	return Array(v.Kind, items), nil
}

// stableSortByKey performs a stable ascending sort of items by the parallel
// keys slice, using Compare's number/string rules; Nil keys sort as if
// equal to every other key (preserving relative input order).
func stableSortByKey(items []Value, keys []Value) {
	n := len(items)
	// Insertion sort: stable, and the arrays involved here are typically
	// small (pages within a section).
	for i := 1; i < n; i++ {
		j := i
		for j > 0 && lessKey(keys[j], keys[j-1]) {
			keys[j], keys[j-1] = keys[j-1], keys[j]
			items[j], items[j-1] = items[j-1], items[j]
			j--
		}
	}
}

func lessKey(a, b Value) bool {
	if a.Kind == KindNil || b.Kind == KindNil {
		return false
	}
	return Compare(a, b, "lt")
}
