package tpl

import "github.com/aellingwood/tsumo/internal/value"

// Env holds the build-wide collaborators and flags builtins need to reach:
// the resource manager, the i18n translator, and the `hugo.*` environment
// flags. One Env is shared by every Scope/Frame in a build.
type Env struct {
	Manager        ResourceManager
	Translate      func(key string) string
	IsProduction   bool
	IsServer       bool
	IsDevelopment  bool
	IsExtended     bool
	IsMultilingual bool
	IsMultihost    bool
	LanguagesCount int
	BaseURL        string
	WorkingDir     string
	Version        string
}

// ResourceManager is the narrow surface `resources.*`/`images.*`/`css.*`
// builtins need from the resource manager (package resource), kept as an
// interface here so package tpl never imports package resource directly.
type ResourceManager interface {
	Get(rel string) (value.Value, error)
	GetMatch(glob string) (value.Value, error)
	Match(glob string) ([]value.Value, error)
	ByType(kind string) ([]value.Value, error)
	Concat(target string, rs []value.Value) value.Value
	FromString(name, s string) value.Value
	Minify(r value.Value) value.Value
	Fingerprint(r value.Value) value.Value
	Copy(target string, r value.Value) value.Value
	PostProcess(r value.Value) value.Value
	Resize(r value.Value, spec string) (value.Value, error)
	SassCompile(r value.Value) (value.Value, error)
}

// Frame is the per-Execute/per-partial invocation state that does not
// change as rendering descends into nested scopes: the root dot ("$"), the
// bound site value (the bare "site" identifier), and the shared Env.
type Frame struct {
	root   value.Value
	site   value.Value
	env    *Env
	engine *Engine
}

// Scope is one lexical level of `$var` bindings plus the current dot.
// Scopes form a parent chain: `with`/`range`/`block`/`template`/partial
// bodies each push a child scope; variable lookup walks up the chain,
// declaration always binds in the current scope.
type Scope struct {
	dot    value.Value
	vars   map[string]value.Value
	parent *Scope
	frame  *Frame
}

func newRootScope(dot, site value.Value, env *Env, engine *Engine) *Scope {
	return &Scope{
		dot:   dot,
		vars:  map[string]value.Value{},
		frame: &Frame{root: dot, site: site, env: env, engine: engine},
	}
}

func newChildScope(parent *Scope, dot value.Value) *Scope {
	return &Scope{
		dot:    dot,
		vars:   map[string]value.Value{},
		parent: parent,
		frame:  parent.frame,
	}
}

func lookupVar(s *Scope, name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return value.Nil, false
}

// declareVar binds name in the current scope only (`:=`).
func declareVar(s *Scope, name string, v value.Value) {
	s.vars[name] = v
}

// assignVar rebinds an existing `$name` in whichever scope declared it,
// falling back to declaring it in the current scope if undefined anywhere
// in the chain.
func assignVar(s *Scope, name string, v value.Value) {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = v
			return
		}
	}
	s.vars[name] = v
}
