package tpl

import "github.com/aellingwood/tsumo/internal/value"

// Resource builtins: thin wrappers over the ResourceManager reached
// through Env so package tpl never imports package resource directly
// (scope.go's narrow interface). `executeAsTemplate` renders a named
// template with the resource as dot, reusing the engine the same way
// `partial` does. The unqualified `minify`/`fingerprint`/`resize` are
// shorthands for their `resources.*` namesakes.
func init() {
	registerBuiltin("resources.get", resourceCall1(func(m ResourceManager, a string) (value.Value, error) { return m.Get(a) }))
	registerBuiltin("resources.getmatch", resourceCall1(func(m ResourceManager, a string) (value.Value, error) { return m.GetMatch(a) }))
	registerBuiltin("resources.match", func(scope *Scope, args []value.Value) (value.Value, error) {
		m := manager(scope)
		if m == nil || len(args) == 0 {
			return value.Array(value.KindAnyArray, nil), nil
		}
		rs, err := m.Match(args[0].AsString())
		if err != nil {
			return value.Nil, err
		}
		return value.Array(value.KindAnyArray, rs), nil
	})
	registerBuiltin("resources.bytype", func(scope *Scope, args []value.Value) (value.Value, error) {
		m := manager(scope)
		if m == nil || len(args) == 0 {
			return value.Array(value.KindAnyArray, nil), nil
		}
		rs, err := m.ByType(args[0].AsString())
		if err != nil {
			return value.Nil, err
		}
		return value.Array(value.KindAnyArray, rs), nil
	})
	registerBuiltin("resources.concat", func(scope *Scope, args []value.Value) (value.Value, error) {
		m := manager(scope)
		if m == nil || len(args) < 2 {
			return value.Nil, nil
		}
		return m.Concat(args[0].AsString(), args[1:]), nil
	})
	registerBuiltin("resources.fromstring", func(scope *Scope, args []value.Value) (value.Value, error) {
		m := manager(scope)
		if m == nil || len(args) < 2 {
			return value.Nil, nil
		}
		return m.FromString(args[0].AsString(), args[1].AsString()), nil
	})
	registerBuiltin("resources.executeastemplate", func(scope *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 2 || scope.frame.engine == nil {
			return value.Nil, nil
		}
		return scope.frame.engine.Partial(args[0].AsString(), args[1], scope)
	})
	registerBuiltin("resources.minify", resourceUnary(func(m ResourceManager, r value.Value) value.Value { return m.Minify(r) }))
	registerBuiltin("resources.fingerprint", resourceUnary(func(m ResourceManager, r value.Value) value.Value { return m.Fingerprint(r) }))
	registerBuiltin("resources.copy", func(scope *Scope, args []value.Value) (value.Value, error) {
		m := manager(scope)
		if m == nil || len(args) < 2 {
			return value.Nil, nil
		}
		return m.Copy(args[0].AsString(), args[1]), nil
	})
	registerBuiltin("resources.postprocess", resourceUnary(func(m ResourceManager, r value.Value) value.Value { return m.PostProcess(r) }))

	registerBuiltin("minify", resourceUnary(func(m ResourceManager, r value.Value) value.Value { return m.Minify(r) }))
	registerBuiltin("fingerprint", resourceUnary(func(m ResourceManager, r value.Value) value.Value { return m.Fingerprint(r) }))
	registerBuiltin("resize", resizeBuiltin)
	registerBuiltin("images.resize", resizeBuiltin)
	registerBuiltin("css.sass", func(scope *Scope, args []value.Value) (value.Value, error) {
		m := manager(scope)
		if m == nil || len(args) == 0 {
			return value.Nil, nil
		}
		return m.SassCompile(args[0])
	})
}

// resizeBuiltin accepts its resource either first (call form:
// `resize $img "100x"`) or last (pipe form: `$img | resize "100x"`),
// since the piped-in value is appended as the trailing argument.
func resizeBuiltin(scope *Scope, args []value.Value) (value.Value, error) {
	m := manager(scope)
	if m == nil || len(args) < 2 {
		return value.Nil, nil
	}
	r, spec := args[0], args[1]
	if r.Kind != value.KindResource && spec.Kind == value.KindResource {
		r, spec = spec, r
	}
	return m.Resize(r, spec.AsString())
}

func manager(scope *Scope) ResourceManager {
	if scope.frame.env == nil {
		return nil
	}
	return scope.frame.env.Manager
}

func resourceCall1(fn func(ResourceManager, string) (value.Value, error)) BuiltinFunc {
	return func(scope *Scope, args []value.Value) (value.Value, error) {
		m := manager(scope)
		if m == nil || len(args) == 0 {
			return value.Nil, nil
		}
		return fn(m, args[0].AsString())
	}
}

func resourceUnary(fn func(ResourceManager, value.Value) value.Value) BuiltinFunc {
	return func(scope *Scope, args []value.Value) (value.Value, error) {
		m := manager(scope)
		if m == nil || len(args) == 0 {
			return value.Nil, nil
		}
		return fn(m, args[0]), nil
	}
}
