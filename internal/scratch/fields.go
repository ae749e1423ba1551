package scratch

import "github.com/aellingwood/tsumo/internal/value"

// field access for the Scratch variant: get/set/add/setInMap/
// delete/deleteInMap dispatch as receiver.method calls through
// value.GetField, each taking the scratch key as its first templated arg.
func init() {
	value.RegisterFields(value.KindScratch, map[string]value.FieldFunc{
		"get": func(v value.Value, args []value.Value) (value.Value, error) {
			s := asStore(v)
			if s == nil || len(args) == 0 {
				return value.Nil, nil
			}
			return toValue(s.Get(args[0].AsString())), nil
		},
		"set": func(v value.Value, args []value.Value) (value.Value, error) {
			s := asStore(v)
			if s != nil && len(args) >= 2 {
				s.Set(args[0].AsString(), fromValue(args[1]))
			}
			return value.Nil, nil
		},
		"add": func(v value.Value, args []value.Value) (value.Value, error) {
			s := asStore(v)
			if s != nil && len(args) >= 2 {
				s.Add(args[0].AsString(), fromValue(args[1]))
			}
			return value.Nil, nil
		},
		"setinmap": func(v value.Value, args []value.Value) (value.Value, error) {
			s := asStore(v)
			if s != nil && len(args) >= 3 {
				s.SetInMap(args[0].AsString(), args[1].AsString(), fromValue(args[2]))
			}
			return value.Nil, nil
		},
		"delete": func(v value.Value, args []value.Value) (value.Value, error) {
			s := asStore(v)
			if s != nil && len(args) >= 1 {
				s.Delete(args[0].AsString())
			}
			return value.Nil, nil
		},
		"deleteinmap": func(v value.Value, args []value.Value) (value.Value, error) {
			s := asStore(v)
			if s != nil && len(args) >= 2 {
				s.DeleteInMap(args[0].AsString(), args[1].AsString())
			}
			return value.Nil, nil
		},
	})
}

// Wrap lifts a Store into a value.Value of KindScratch.
func Wrap(s *Store) value.Value {
	return value.Of(value.KindScratch, s)
}

func asStore(v value.Value) *Store {
	s, _ := v.Payload().(*Store)
	return s
}

// toValue/fromValue cross the boundary between Store's `any` slots and the
// template value tree. Scratch slots set from templates only ever hold
// scalars or Values round-tripped through here, so the coalescing/map
// semantics in Store.Add/SetInMap operate on plain `any` without needing to
// know about value.Value.
func toValue(v any) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Nil
	case value.Value:
		return t
	case string:
		return value.String(t)
	case bool:
		return value.Bool(t)
	case float64:
		return value.Number(t)
	case int:
		return value.Number(float64(t))
	case []any:
		items := make([]value.Value, len(t))
		for i, item := range t {
			items[i] = toValue(item)
		}
		return value.Array(value.KindAnyArray, items)
	case map[string]any:
		m := make(map[string]value.Value, len(t))
		for k, item := range t {
			m[k] = toValue(item)
		}
		return value.Dict(m)
	default:
		return value.Nil
	}
}

func fromValue(v value.Value) any {
	return v
}
