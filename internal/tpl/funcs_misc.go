package tpl

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aellingwood/tsumo/internal/value"
)

// Hashing/encoding, i18n, environment, date/time, and logging builtins.
// Dates travel through the value tree as ISO-8601 strings, so
// time.format/dateFormat parse with a short list of common layouts before
// formatting. Hugo's reference layout is Go's own magic reference time
// (Mon Jan 2 15:04:05 MST 2006), so no token translation is needed beyond
// parsing the input.
func init() {
	registerBuiltin("md5", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.String(""), nil
		}
		sum := md5.Sum([]byte(args[0].AsString()))
		return value.String(hex.EncodeToString(sum[:])), nil
	})
	registerBuiltin("crypto.sha1", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.String(""), nil
		}
		sum := sha1.Sum([]byte(args[0].AsString()))
		return value.String(hex.EncodeToString(sum[:])), nil
	})
	registerBuiltin("encoding.jsonify", func(_ *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.String("null"), nil
		}
		data, err := json.Marshal(toJSONTree(args[0]))
		if err != nil {
			return value.String("null"), nil
		}
		return value.String(string(data)), nil
	})

	registerBuiltin("i18n", func(scope *Scope, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.String(""), nil
		}
		key := args[0].AsString()
		if scope.frame.env != nil && scope.frame.env.Translate != nil {
			return value.String(scope.frame.env.Translate(key)), nil
		}
		return value.String(key), nil
	})

	registerBuiltin("hugo.ismultilingual", envBool(func(_ *Env) bool { return false }))
	registerBuiltin("hugo.ismultihost", envBool(func(_ *Env) bool { return false }))
	registerBuiltin("hugo.version", func(_ *Scope, _ []value.Value) (value.Value, error) {
		return value.VerStr("0.146.0"), nil
	})
	registerBuiltin("hugo.workingdir", func(scope *Scope, _ []value.Value) (value.Value, error) {
		if scope.frame.env != nil && scope.frame.env.WorkingDir != "" {
			return value.String(scope.frame.env.WorkingDir), nil
		}
		wd, err := os.Getwd()
		if err != nil {
			return value.String(""), nil
		}
		return value.String(wd), nil
	})
	registerBuiltin("hugo.isproduction", envBool(func(e *Env) bool { return e.IsProduction }))
	registerBuiltin("hugo.isserver", envBool(func(e *Env) bool { return e.IsServer }))
	registerBuiltin("hugo.isdevelopment", envBool(func(e *Env) bool { return e.IsDevelopment }))
	registerBuiltin("hugo.isextended", envBool(func(e *Env) bool { return e.IsExtended }))

	registerBuiltin("time.format", func(_ *Scope, args []value.Value) (value.Value, error) {
		return value.String(formatTime(args)), nil
	})
	registerBuiltin("dateFormat", func(_ *Scope, args []value.Value) (value.Value, error) {
		return value.String(formatTime(args)), nil
	})
	registerBuiltin("now", func(_ *Scope, _ []value.Value) (value.Value, error) {
		return value.String(time.Now().Format(time.RFC3339)), nil
	})

	registerBuiltin("errorf", func(_ *Scope, args []value.Value) (value.Value, error) {
		logf("ERROR:", args)
		return value.Nil, nil
	})
	registerBuiltin("warnf", func(_ *Scope, args []value.Value) (value.Value, error) {
		logf("WARN:", args)
		return value.Nil, nil
	})
}

func envBool(get func(*Env) bool) BuiltinFunc {
	return func(scope *Scope, _ []value.Value) (value.Value, error) {
		if scope.frame.env == nil {
			return value.Bool(false), nil
		}
		return value.Bool(get(scope.frame.env)), nil
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// formatTime expects args[0]=layout, args[1]=input.
func formatTime(args []value.Value) string {
	if len(args) < 2 {
		return ""
	}
	layout := args[0].AsString()
	raw := args[1].AsString()
	var t time.Time
	var err error
	for _, l := range dateLayouts {
		t, err = time.Parse(l, raw)
		if err == nil {
			break
		}
	}
	if err != nil {
		return raw
	}
	return t.Format(layout)
}

func logf(prefix string, args []value.Value) {
	if len(args) == 0 {
		return
	}
	msg := sprintf(args[0].AsString(), args[1:])
	fmt.Fprintln(os.Stderr, prefix, msg)
}

// toJSONTree converts a Value tree into plain Go data so encoding/json
// produces canonical output (sorted Dict keys come for free from
// encoding/json's map handling).
func toJSONTree(v value.Value) any {
	switch v.Kind {
	case value.KindNil:
		return nil
	case value.KindBool:
		return v.AsBool()
	case value.KindNumber:
		return v.AsNumber()
	case value.KindString, value.KindHtml, value.KindVersionString, value.KindMediaType:
		return v.AsString()
	case value.KindDict:
		m := v.DictMap()
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = toJSONTree(val)
		}
		return out
	}
	if v.IsArray() {
		items := v.Items()
		out := make([]any, len(items))
		for i, it := range items {
			out[i] = toJSONTree(it)
		}
		return out
	}
	return nil
}
