package resource

import (
	"github.com/aellingwood/tsumo/internal/pathutil"
	"github.com/aellingwood/tsumo/internal/value"
)

// field access for the Resource variant: relPermalink/permalink publish
// the resource lazily via its owning Manager before returning the rooted
// path.
func init() {
	value.RegisterFields(value.KindResource, map[string]value.FieldFunc{
		"relpermalink": func(v value.Value, _ []value.Value) (value.Value, error) {
			r, m := resourceAndManager(v)
			if r == nil {
				return value.Nil, nil
			}
			if m != nil {
				_ = m.EnsurePublished(r)
			}
			return value.String(outputPath(r)), nil
		},
		"permalink": func(v value.Value, _ []value.Value) (value.Value, error) {
			r, m := resourceAndManager(v)
			if r == nil {
				return value.Nil, nil
			}
			if m != nil {
				_ = m.EnsurePublished(r)
			}
			return value.String(outputPath(r)), nil
		},
		"mediatype": func(v value.Value, _ []value.Value) (value.Value, error) {
			r := asResource(v)
			if r == nil {
				return value.Nil, nil
			}
			return value.MediaType(r.MediaType), nil
		},
		"content": func(v value.Value, _ []value.Value) (value.Value, error) {
			r := asResource(v)
			if r == nil || !r.HasText {
				return value.Nil, nil
			}
			return value.String(r.Text), nil
		},
		"width": func(v value.Value, _ []value.Value) (value.Value, error) {
			r := asResource(v)
			if r == nil {
				return value.Nil, nil
			}
			return value.Number(float64(r.Width)), nil
		},
		"height": func(v value.Value, _ []value.Value) (value.Value, error) {
			r := asResource(v)
			if r == nil {
				return value.Nil, nil
			}
			return value.Number(float64(r.Height)), nil
		},
		"data": func(v value.Value, _ []value.Value) (value.Value, error) {
			r := asResource(v)
			if r == nil {
				return value.Nil, nil
			}
			return value.Dict(map[string]value.Value{
				"integrity": value.String(r.Integrity),
			}), nil
		},
	})

	value.RegisterFields(value.KindPageResources, map[string]value.FieldFunc{
		"get": func(v value.Value, args []value.Value) (value.Value, error) {
			rs, _ := v.Payload().(*PageResources)
			if rs == nil || len(args) == 0 {
				return value.Nil, nil
			}
			for _, r := range rs.Resources {
				if r.SourcePath == args[0].AsString() {
					return wrap(r, rs.Manager), nil
				}
			}
			return value.Nil, nil
		},
		"getmatch": func(v value.Value, args []value.Value) (value.Value, error) {
			rs, _ := v.Payload().(*PageResources)
			if rs == nil || len(args) == 0 {
				return value.Nil, nil
			}
			for _, r := range rs.Resources {
				if pathutil.GlobMatch(args[0].AsString(), r.SourcePath) {
					return wrap(r, rs.Manager), nil
				}
			}
			return value.Nil, nil
		},
		"len": func(v value.Value, _ []value.Value) (value.Value, error) {
			rs, _ := v.Payload().(*PageResources)
			if rs == nil {
				return value.Number(0), nil
			}
			return value.Number(float64(len(rs.Resources))), nil
		},
	})
}

// PageResources bundles the resources co-located with a single page bundle
// directory, plus a back-reference to the Manager used to publish them.
type PageResources struct {
	Resources []*Resource
	Manager   *Manager
}

// boxed pairs a Resource with the Manager that owns it, so Value.payload can
// carry both without widening Resource itself.
type boxed struct {
	r *Resource
	m *Manager
}

// Wrap lifts a Resource (plus its owning Manager, for lazy publish) into a
// value.Value of KindResource.
func Wrap(r *Resource, m *Manager) value.Value {
	return wrap(r, m)
}

func wrap(r *Resource, m *Manager) value.Value {
	if r == nil {
		return value.Nil
	}
	return value.Of(value.KindResource, &boxed{r: r, m: m})
}

func asResource(v value.Value) *Resource {
	b, _ := v.Payload().(*boxed)
	if b == nil {
		return nil
	}
	return b.r
}

func resourceAndManager(v value.Value) (*Resource, *Manager) {
	b, _ := v.Payload().(*boxed)
	if b == nil {
		return nil, nil
	}
	return b.r, b.m
}

func outputPath(r *Resource) string {
	p := r.OutputRelPath
	if p == "" {
		p = r.SourcePath
	}
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	return p
}
