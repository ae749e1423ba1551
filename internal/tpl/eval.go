package tpl

import (
	"strings"

	"github.com/aellingwood/tsumo/internal/value"
)

// ReturnSignal is the non-local control signal the `return` builtin
// raises. It unwinds through
// evalCommand/renderNode as a normal Go error and is caught only at a
// partial/partialCached/executeAsTemplate boundary (see Engine.Partial and
// Engine.executeTemplate), which turn it back into a value instead of an
// error. A ReturnSignal that escapes the outermost template execution is
// treated the same way: its Value becomes that execution's result.
type ReturnSignal struct {
	Value value.Value
}

func (r *ReturnSignal) Error() string { return "tpl: return outside partial" }

// BuiltinFunc is one entry of the global builtins table. Builtins that
// fail fatally (e.g. a resource build error) return a non-nil error;
// everything else is a render-local failure and must return
// (value.Nil, nil) instead.
type BuiltinFunc func(scope *Scope, args []value.Value) (value.Value, error)

var builtins = map[string]BuiltinFunc{}

// registerBuiltin adds fn under the lowercased name. Builtins files call
// this from init().
func registerBuiltin(name string, fn BuiltinFunc) {
	builtins[strings.ToLower(name)] = fn
}

// EvalPipeline evaluates every command of p left to right, threading each
// command's result into the next as its trailing piped argument.
func EvalPipeline(p *Pipeline, scope *Scope) (value.Value, error) {
	result := value.Nil
	hasPrev := false
	for _, cmd := range p.Commands {
		v, err := evalCommand(cmd, scope, result, hasPrev)
		if err != nil {
			return value.Nil, err
		}
		result = v
		hasPrev = true
	}
	return result, nil
}

func evalCommand(cmd *Command, scope *Scope, piped value.Value, hasPiped bool) (value.Value, error) {
	argVals := make([]value.Value, 0, len(cmd.Args)+1)
	for _, a := range cmd.Args {
		v, err := evalExpr(a, scope)
		if err != nil {
			return value.Nil, err
		}
		argVals = append(argVals, v)
	}
	if hasPiped {
		argVals = append(argVals, piped)
	}
	if len(argVals) == 0 {
		return evalExpr(cmd.Head, scope)
	}
	return dispatchCall(cmd.Head, scope, argVals)
}

// dispatchCall resolves a Command head used with at least one argument:
// a registered builtin by
// dotted name, a field-path ending in a method name dispatched via
// value.GetField on the receiver (all but the last path segment), or a
// bare dotted identifier resolved the same way after a global lookup.
func dispatchCall(head Expr, scope *Scope, args []value.Value) (value.Value, error) {
	switch h := head.(type) {
	case FieldExpr:
		if len(h.Path) == 0 {
			v, err := evalBaseExpr(h.Base, scope)
			return v, err
		}
		recv, err := evalFieldChain(h.Base, h.Path[:len(h.Path)-1], scope)
		if err != nil {
			return value.Nil, err
		}
		return callAndCatchReturn(recv, h.Path[len(h.Path)-1], args)
	case IdentExpr:
		name := strings.ToLower(h.Name)
		if fn, ok := builtins[name]; ok {
			return fn(scope, args)
		}
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			recv := evalIdentReceiverPath(name[:idx], scope)
			return callAndCatchReturn(recv, name[idx+1:], args)
		}
		return value.Nil, nil
	case PipeExpr:
		return EvalPipeline(h.Pipeline, scope)
	default:
		return evalBaseExpr(head, scope)
	}
}

// callAndCatchReturn calls value.GetField for a method-style dispatch.
// GetField itself never returns a real error; the only possible error from
// a registered method table entry in this codebase is a fatal resource
// build error, which is propagated as-is.
func callAndCatchReturn(recv value.Value, name string, args []value.Value) (value.Value, error) {
	return value.GetField(recv, name, args)
}

func evalFieldChain(base Expr, path []string, scope *Scope) (value.Value, error) {
	v, err := evalBaseExpr(base, scope)
	if err != nil {
		return value.Nil, err
	}
	for _, seg := range path {
		v, err = value.GetField(v, seg, nil)
		if err != nil {
			return value.Nil, err
		}
	}
	return v, nil
}

func evalBaseExpr(e Expr, scope *Scope) (value.Value, error) {
	switch v := e.(type) {
	case DotExpr:
		return scope.dot, nil
	case RootExpr:
		return scope.frame.root, nil
	case VarExpr:
		val, ok := lookupVar(scope, v.Name)
		if !ok {
			return value.Nil, nil
		}
		return val, nil
	case LiteralExpr:
		return v.Value, nil
	case PipeExpr:
		return EvalPipeline(v.Pipeline, scope)
	case FieldExpr:
		return evalFieldExprValue(v, scope)
	case IdentExpr:
		return evalExpr(v, scope)
	default:
		return value.Nil, nil
	}
}

func evalFieldExprValue(fe FieldExpr, scope *Scope) (value.Value, error) {
	return evalFieldChain(fe.Base, fe.Path, scope)
}

// evalExpr evaluates an expression used with no arguments: a plain value
// lookup, or a zero-arg builtin/receiver-method call by the token's name.
func evalExpr(e Expr, scope *Scope) (value.Value, error) {
	switch v := e.(type) {
	case DotExpr:
		return scope.dot, nil
	case RootExpr:
		return scope.frame.root, nil
	case LiteralExpr:
		return v.Value, nil
	case VarExpr:
		val, ok := lookupVar(scope, v.Name)
		if !ok {
			return value.Nil, nil
		}
		return val, nil
	case FieldExpr:
		return evalFieldExprValue(v, scope)
	case PipeExpr:
		return EvalPipeline(v.Pipeline, scope)
	case IdentExpr:
		name := strings.ToLower(v.Name)
		if name == "site" {
			return scope.frame.site, nil
		}
		if fn, ok := builtins[name]; ok {
			return fn(scope, nil)
		}
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			recv := evalIdentReceiverPath(name[:idx], scope)
			return value.GetField(recv, name[idx+1:], nil)
		}
		return value.Nil, nil
	case CommandExpr:
		return dispatchCallExpr(v, scope)
	default:
		return value.Nil, nil
	}
}

func dispatchCallExpr(c CommandExpr, scope *Scope) (value.Value, error) {
	args := make([]value.Value, 0, len(c.Args))
	for _, a := range c.Args {
		v, err := evalExpr(a, scope)
		if err != nil {
			return value.Nil, err
		}
		args = append(args, v)
	}
	if len(args) == 0 {
		return evalExpr(c.Head, scope)
	}
	return dispatchCall(c.Head, scope, args)
}

// evalIdentReceiverPath resolves a dotted non-function identifier prefix
// (e.g. "site" in "site.Store.Set", "site" in "site.GetPage") down to a
// receiver value: the first segment binds to a known global ("site"),
// falling back to a field lookup on the current dot; every remaining
// segment is a plain field/method-less access.
func evalIdentReceiverPath(path string, scope *Scope) value.Value {
	parts := strings.Split(path, ".")
	var v value.Value
	switch parts[0] {
	case "site":
		v = scope.frame.site
	default:
		v, _ = value.GetField(scope.dot, parts[0], nil)
	}
	for _, seg := range parts[1:] {
		v, _ = value.GetField(v, seg, nil)
	}
	return v
}
