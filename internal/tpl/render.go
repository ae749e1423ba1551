package tpl

import (
	"sort"
	"strings"

	"github.com/aellingwood/tsumo/internal/value"
)

// renderCtx carries the state that's constant across one top-level
// Execute/Partial call: the owning engine (for template/block/define
// lookups) and the current top-level template's own define overrides,
// which block/template lookups consult before the engine-wide registry.
type renderCtx struct {
	engine    *Engine
	overrides map[string][]Node
	buf       *strings.Builder
}

func (rc *renderCtx) renderNodes(nodes []Node, scope *Scope) error {
	for _, n := range nodes {
		if err := rc.renderNode(n, scope); err != nil {
			return err
		}
	}
	return nil
}

func (rc *renderCtx) renderNode(n Node, scope *Scope) error {
	switch node := n.(type) {
	case TextNode:
		rc.buf.WriteString(node.Value)
		return nil

	case OutputNode:
		v, err := EvalPipeline(node.Pipeline, scope)
		if err != nil {
			return err
		}
		rc.buf.WriteString(value.Stringify(v, true))
		return nil

	case AssignmentNode:
		v, err := EvalPipeline(node.Pipeline, scope)
		if err != nil {
			return err
		}
		if node.Declare {
			declareVar(scope, node.Name, v)
		} else {
			assignVar(scope, node.Name, v)
		}
		return nil

	case TemplateInvokeNode:
		return rc.renderTemplateInvoke(node, scope)

	case IfNode:
		v, err := EvalPipeline(node.Cond, scope)
		if err != nil {
			return err
		}
		if value.Truthy(v) {
			return rc.renderNodes(node.Then, scope)
		}
		return rc.renderNodes(node.Else, scope)

	case WithNode:
		v, err := EvalPipeline(node.Expr, scope)
		if err != nil {
			return err
		}
		if value.Truthy(v) {
			return rc.renderNodes(node.Then, newChildScope(scope, v))
		}
		return rc.renderNodes(node.Else, scope)

	case RangeNode:
		return rc.renderRange(node, scope)

	case BlockNode:
		return rc.renderBlock(node, scope)
	}
	return nil
}

func (rc *renderCtx) renderTemplateInvoke(node TemplateInvokeNode, scope *Scope) error {
	dot := scope.dot
	if node.Ctx != nil {
		v, err := EvalPipeline(node.Ctx, scope)
		if err != nil {
			return err
		}
		dot = v
	}
	body, ok := rc.overrides[node.Name]
	if !ok {
		body, ok = rc.engine.defines[node.Name]
	}
	if !ok {
		return nil
	}
	return rc.renderNodes(body, newChildScope(scope, dot))
}

func (rc *renderCtx) renderBlock(node BlockNode, scope *Scope) error {
	dot := scope.dot
	if node.Ctx != nil {
		v, err := EvalPipeline(node.Ctx, scope)
		if err != nil {
			return err
		}
		if !v.IsNil() {
			dot = v
		}
	}
	if override, ok := rc.overrides[node.Name]; ok {
		return rc.renderNodes(override, newChildScope(scope, dot))
	}
	return rc.renderNodes(node.Fallback, newChildScope(scope, dot))
}

func (rc *renderCtx) renderRange(node RangeNode, scope *Scope) error {
	v, err := EvalPipeline(node.Expr, scope)
	if err != nil {
		return err
	}

	if v.Kind == value.KindDict {
		m := v.DictMap()
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		// Dict doesn't track insertion order, so ranging uses sorted
		// key order to stay deterministic.
		sort.Strings(keys)
		if len(keys) == 0 {
			return rc.renderNodes(node.ElseBody, scope)
		}
		for _, k := range keys {
			child := newChildScope(scope, m[k])
			if node.KeyVar != "" {
				declareVar(child, node.KeyVar, value.String(k))
			}
			if node.ValVar != "" {
				declareVar(child, node.ValVar, m[k])
			}
			if err := rc.renderNodes(node.Body, child); err != nil {
				return err
			}
		}
		return nil
	}

	items := v.Items()
	if len(items) == 0 {
		return rc.renderNodes(node.ElseBody, scope)
	}
	for i, item := range items {
		child := newChildScope(scope, item)
		if node.KeyVar != "" {
			declareVar(child, node.KeyVar, value.Number(float64(i)))
		}
		if node.ValVar != "" {
			declareVar(child, node.ValVar, item)
		}
		if err := rc.renderNodes(node.Body, child); err != nil {
			return err
		}
	}
	return nil
}
