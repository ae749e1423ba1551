package tpl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aellingwood/tsumo/internal/value"
)

// Engine owns every parsed template, the global define registry aggregated
// across them, and the layout-candidate resolution order. Loading layers a
// theme's layouts/ directory first, then the site's own (by name, so the
// site always wins a name collision).
type Engine struct {
	mu          sync.RWMutex
	templates   map[string]*Template
	defines     map[string][]Node
	partialMemo map[string]value.Value
}

// NewEngine returns an empty Engine; call LoadDir to populate it.
func NewEngine() *Engine {
	return &Engine{
		templates:   map[string]*Template{},
		defines:     map[string][]Node{},
		partialMemo: map[string]value.Value{},
	}
}

// LoadDir parses every ".html" file under themeLayoutDir and userLayoutDir
// (userLayoutDir may be "" to skip), keyed by its path relative to the
// layout root (e.g. "partials/header.html", "_default/single.html"). A
// file present in both wins from userLayoutDir.
func (e *Engine) LoadDir(themeLayoutDir, userLayoutDir string) error {
	files := map[string]string{}
	if themeLayoutDir != "" {
		if err := collectTemplateFiles(themeLayoutDir, files); err != nil {
			return err
		}
	}
	if userLayoutDir != "" {
		if err := collectTemplateFiles(userLayoutDir, files); err != nil {
			return err
		}
	}
	for name, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tmpl, err := Parse(name, string(data))
		if err != nil {
			return err
		}
		e.mu.Lock()
		e.templates[name] = tmpl
		for dname, body := range tmpl.Defines {
			e.defines[dname] = body
		}
		e.mu.Unlock()
	}
	return nil
}

func collectTemplateFiles(root string, out map[string]string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = path
		return nil
	})
}

// HasTemplate reports whether name was loaded (used by the templates.exists
// builtin).
func (e *Engine) HasTemplate(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.templates[name]
	return ok
}

// Resolve returns the layout candidate chain for a page kind: the most
// specific per-section/per-layout name first, falling back through
// _default.
func (e *Engine) Resolve(kind, section, layout string) []string {
	switch kind {
	case "home":
		return []string{"index.html", "_default/list.html"}
	case "page":
		var out []string
		if section != "" {
			if layout != "" {
				out = append(out, section+"/"+layout+".html")
			}
			out = append(out, section+"/single.html")
		}
		if layout != "" {
			out = append(out, "_default/"+layout+".html")
		}
		out = append(out, "_default/single.html")
		return out
	case "section":
		var out []string
		if section != "" {
			out = append(out, section+"/list.html")
		}
		out = append(out, "_default/list.html")
		return out
	case "taxonomy":
		var out []string
		if section != "" {
			out = append(out, section+"/taxonomy.html")
		}
		out = append(out, "_default/taxonomy.html", "_default/list.html")
		return out
	case "term":
		var out []string
		if section != "" {
			out = append(out, section+"/term.html")
		}
		out = append(out, "_default/term.html", "_default/list.html")
		return out
	case "404":
		return []string{"404.html", "_default/404.html"}
	default:
		return []string{"_default/single.html"}
	}
}

// ResolveTemplate returns the first candidate name (per Resolve) that was
// actually loaded, or "" if none match.
func (e *Engine) ResolveTemplate(kind, section, layout string) string {
	for _, cand := range e.Resolve(kind, section, layout) {
		if e.HasTemplate(cand) {
			return cand
		}
	}
	return ""
}

// Execute renders the named template with dot as its root context and site
// bound to the bare "site" identifier.
func (e *Engine) Execute(templateName string, dot, site value.Value, env *Env) (string, error) {
	e.mu.RLock()
	t, ok := e.templates[templateName]
	e.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("tpl: template %q not found", templateName)
	}
	return e.executeTemplate(t, dot, site, env)
}

func (e *Engine) executeTemplate(t *Template, dot, site value.Value, env *Env) (string, error) {
	scope := newRootScope(dot, site, env, e)
	rc := &renderCtx{engine: e, overrides: t.Defines, buf: &strings.Builder{}}
	if err := rc.renderNodes(t.Nodes, scope); err != nil {
		if rs, ok := err.(*ReturnSignal); ok {
			return value.Stringify(rs.Value, false), nil
		}
		return "", err
	}
	return rc.buf.String(), nil
}

func (e *Engine) lookupPartial(name string) *Template {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if t, ok := e.templates["partials/"+name]; ok {
		return t
	}
	if t, ok := e.templates["_partials/"+name]; ok {
		return t
	}
	if t, ok := e.templates[name]; ok {
		return t
	}
	return nil
}

// Partial implements the `partial` builtin: renders the named partial with
// ctx as its root dot, inside the calling scope's Frame (so it still sees
// "site" and Env). A missing partial is a render-local failure (Nil), not
// an error; a ReturnSignal thrown inside it is caught here, at the partial
// boundary, and turned into the partial's value.
func (e *Engine) Partial(name string, ctx value.Value, scope *Scope) (value.Value, error) {
	t := e.lookupPartial(name)
	if t == nil {
		return value.Nil, nil
	}
	childFrame := &Frame{root: ctx, site: scope.frame.site, env: scope.frame.env, engine: scope.frame.engine}
	childScope := &Scope{dot: ctx, vars: map[string]value.Value{}, frame: childFrame}
	rc := &renderCtx{engine: e, overrides: t.Defines, buf: &strings.Builder{}}
	err := rc.renderNodes(t.Nodes, childScope)
	if err != nil {
		if rs, ok := err.(*ReturnSignal); ok {
			return rs.Value, nil
		}
		return value.Nil, err
	}
	return value.Html(rc.buf.String()), nil
}

// PartialCached memoizes Partial's result by name + a caller-supplied
// variant key, so repeated invocations with the
// same key across a build skip re-rendering.
func (e *Engine) PartialCached(name string, ctx value.Value, key string, scope *Scope) (value.Value, error) {
	memoKey := name + "\x00" + key
	e.mu.RLock()
	if v, ok := e.partialMemo[memoKey]; ok {
		e.mu.RUnlock()
		return v, nil
	}
	e.mu.RUnlock()
	v, err := e.Partial(name, ctx, scope)
	if err != nil {
		return value.Nil, err
	}
	e.mu.Lock()
	e.partialMemo[memoKey] = v
	e.mu.Unlock()
	return v, nil
}
