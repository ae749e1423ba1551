package resource

import "github.com/aellingwood/tsumo/internal/value"

// Engine adapts *Manager to tpl.ResourceManager: the narrow, value.Value-
// shaped surface the template builtins call through (package tpl never
// imports package resource directly).
// It unwraps each value.Value argument back to a *Resource, delegates to
// Manager, and rewraps the result, carrying itself along as the owning
// Manager so Resource.relPermalink/permalink can publish lazily.
type Engine struct {
	m *Manager
}

// NewEngine wraps m for installation into tpl.Env.Manager.
func NewEngine(m *Manager) *Engine {
	return &Engine{m: m}
}

func (e *Engine) Get(rel string) (value.Value, error) {
	r, err := e.m.Get(rel)
	if err != nil {
		return value.Nil, err
	}
	return wrap(r, e.m), nil
}

func (e *Engine) GetMatch(glob string) (value.Value, error) {
	r, err := e.m.GetMatch(glob)
	if err != nil {
		return value.Nil, err
	}
	return wrap(r, e.m), nil
}

func (e *Engine) Match(glob string) ([]value.Value, error) {
	rs, err := e.m.Match(glob)
	if err != nil {
		return nil, err
	}
	return e.wrapAll(rs), nil
}

func (e *Engine) ByType(kind string) ([]value.Value, error) {
	rs, err := e.m.ByType(kind)
	if err != nil {
		return nil, err
	}
	return e.wrapAll(rs), nil
}

func (e *Engine) Concat(target string, rs []value.Value) value.Value {
	return wrap(e.m.Concat(target, e.unwrapAll(rs)), e.m)
}

func (e *Engine) FromString(name, s string) value.Value {
	return wrap(e.m.FromString(name, s), e.m)
}

func (e *Engine) Minify(r value.Value) value.Value {
	res := asResource(r)
	if res == nil {
		return value.Nil
	}
	return wrap(e.m.Minify(res), e.m)
}

func (e *Engine) Fingerprint(r value.Value) value.Value {
	res := asResource(r)
	if res == nil {
		return value.Nil
	}
	return wrap(e.m.Fingerprint(res), e.m)
}

func (e *Engine) Copy(target string, r value.Value) value.Value {
	res := asResource(r)
	if res == nil {
		return value.Nil
	}
	return wrap(e.m.Copy(target, res), e.m)
}

func (e *Engine) PostProcess(r value.Value) value.Value {
	res := asResource(r)
	if res == nil {
		return value.Nil
	}
	return wrap(e.m.PostProcess(res), e.m)
}

func (e *Engine) Resize(r value.Value, spec string) (value.Value, error) {
	res := asResource(r)
	if res == nil {
		return value.Nil, nil
	}
	nr, err := e.m.Resize(res, spec)
	if err != nil {
		return value.Nil, err
	}
	return wrap(nr, e.m), nil
}

func (e *Engine) SassCompile(r value.Value) (value.Value, error) {
	res := asResource(r)
	if res == nil {
		return value.Nil, nil
	}
	nr, err := e.m.SassCompile(res)
	if err != nil {
		return value.Nil, err
	}
	return wrap(nr, e.m), nil
}

func (e *Engine) wrapAll(rs []*Resource) []value.Value {
	out := make([]value.Value, len(rs))
	for i, r := range rs {
		out[i] = wrap(r, e.m)
	}
	return out
}

func (e *Engine) unwrapAll(vs []value.Value) []*Resource {
	out := make([]*Resource, 0, len(vs))
	for _, v := range vs {
		if r := asResource(v); r != nil {
			out = append(out, r)
		}
	}
	return out
}

// WrapPageResources lifts a page bundle's resources into a value.Value of
// KindPageResources for installation on site.Page.Resources.
func WrapPageResources(rs []*Resource, m *Manager) value.Value {
	return value.Of(value.KindPageResources, &PageResources{Resources: rs, Manager: m})
}
