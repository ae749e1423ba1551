package tpl

import "github.com/aellingwood/tsumo/internal/value"

// Logic/control and arithmetic builtins. All are render-local: none can
// fail.
func init() {
	registerBuiltin("and", func(_ *Scope, args []value.Value) (value.Value, error) {
		result := value.Bool(true)
		for _, a := range args {
			result = a
			if !value.Truthy(a) {
				return result, nil
			}
		}
		return result, nil
	})
	registerBuiltin("or", func(_ *Scope, args []value.Value) (value.Value, error) {
		result := value.Bool(false)
		for _, a := range args {
			result = a
			if value.Truthy(a) {
				return result, nil
			}
		}
		return result, nil
	})
	registerBuiltin("not", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Bool(true), nil
		}
		return value.Bool(!value.Truthy(args[0])), nil
	})
	registerBuiltin("cond", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 3 {
			return value.Nil, nil
		}
		if value.Truthy(args[0]) {
			return args[1], nil
		}
		return args[2], nil
	})
	registerBuiltin("default", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return value.Nil, nil
		}
		fallback, v := args[0], args[1]
		if !value.Truthy(v) {
			return fallback, nil
		}
		return v, nil
	})
	registerBuiltin("return", func(_ *Scope, args []value.Value) (value.Value, error) {
		v := value.Nil
		if len(args) > 0 {
			v = args[0]
		}
		return value.Nil, &ReturnSignal{Value: v}
	})

	registerBuiltin("add", func(_ *Scope, args []value.Value) (value.Value, error) {
		sum := 0.0
		for _, a := range args {
			sum += a.AsNumber()
		}
		return value.Number(sum), nil
	})
	registerBuiltin("sub", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return value.Number(0), nil
		}
		return value.Number(args[0].AsNumber() - args[1].AsNumber()), nil
	})
	registerBuiltin("mul", func(_ *Scope, args []value.Value) (value.Value, error) {
		product := 1.0
		if len(args) == 0 {
			return value.Number(0), nil
		}
		for _, a := range args {
			product *= a.AsNumber()
		}
		return value.Number(product), nil
	})
	registerBuiltin("div", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 2 || args[1].AsNumber() == 0 {
			return value.Number(0), nil
		}
		return value.Number(args[0].AsNumber() / args[1].AsNumber()), nil
	})
	registerBuiltin("mod", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) < 2 || int64(args[1].AsNumber()) == 0 {
			return value.Number(0), nil
		}
		return value.Number(float64(int64(args[0].AsNumber()) % int64(args[1].AsNumber()))), nil
	})

	for _, op := range []string{"eq", "ne", "lt", "le", "gt", "ge"} {
		op := op
		registerBuiltin(op, func(_ *Scope, args []value.Value) (value.Value, error) {
			if len(args) < 2 {
				return value.Bool(false), nil
			}
			return value.Bool(value.Compare(args[0], args[1], op)), nil
		})
	}
}
