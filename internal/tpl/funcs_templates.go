package tpl

import "github.com/aellingwood/tsumo/internal/value"

// Template builtins: `partial`/`partialCached` render another loaded
// template into an Html value, catching a `return` control signal at that
// boundary; `templates.exists` reports whether a layout path was loaded.
func init() {
	registerBuiltin("partial", func(scope *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Nil, nil
		}
		ctx := scope.dot
		if len(args) > 1 {
			ctx = args[1]
		}
		return scope.frame.engine.Partial(args[0].AsString(), ctx, scope)
	})
	registerBuiltin("partialCached", func(scope *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Nil, nil
		}
		ctx := scope.dot
		if len(args) > 1 {
			ctx = args[1]
		}
		key := args[0].AsString()
		if len(args) > 2 {
			key = value.Stringify(args[2], false)
		}
		return scope.frame.engine.PartialCached(args[0].AsString(), ctx, key, scope)
	})
	registerBuiltin("templates.exists", func(scope *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 || scope.frame.engine == nil {
			return value.Bool(false), nil
		}
		return value.Bool(scope.frame.engine.HasTemplate(args[0].AsString())), nil
	})
}
