package tpl

import "github.com/aellingwood/tsumo/internal/value"

// Node is a parsed template AST node. The set is closed: rendering
// switches over every variant, and there is no open extension point.
type Node interface {
	node()
}

// TextNode emits a literal run of source text.
type TextNode struct {
	Value string
}

// OutputNode is a `{{ pipeline }}` action: evaluate the pipeline and emit
// its stringified (escaped unless Html) result.
type OutputNode struct {
	Pipeline *Pipeline
}

// AssignmentNode is `{{ $name := pipeline }}` (Declare true) or
// `{{ $name = pipeline }}` (Declare false, falls back to declare if the
// variable is undefined in scope).
type AssignmentNode struct {
	Name     string
	Pipeline *Pipeline
	Declare  bool
}

// TemplateInvokeNode is `{{ template "name" pipeline }}`.
type TemplateInvokeNode struct {
	Name string
	Ctx  *Pipeline // nil means the current dot
}

// IfNode is `{{ if cond }}then{{ else }}else{{ end }}`. A chained
// `{{ else if cond2 }}` is represented as a nested IfNode in Else.
type IfNode struct {
	Cond *Pipeline
	Then []Node
	Else []Node
}

// WithNode is `{{ with expr }}then{{ else }}else{{ end }}`: Then executes
// in a scope whose dot is expr's value, only when that value is truthy.
type WithNode struct {
	Expr *Pipeline
	Then []Node
	Else []Node
}

// RangeNode is `{{ range [$key, ]$value := expr }}body{{ else }}elseBody{{ end }}`.
type RangeNode struct {
	Expr     *Pipeline
	KeyVar   string // "" if not bound
	ValVar   string // "" if not bound
	Body     []Node
	ElseBody []Node
}

// BlockNode is `{{ block "name" pipeline }}fallback{{ end }}`. An
// override registered via `define` under the same name takes precedence
// over the inline fallback.
type BlockNode struct {
	Name     string
	Ctx      *Pipeline
	Fallback []Node
}

func (TextNode) node()           {}
func (OutputNode) node()         {}
func (AssignmentNode) node()     {}
func (TemplateInvokeNode) node() {}
func (IfNode) node()             {}
func (WithNode) node()           {}
func (RangeNode) node()          {}
func (BlockNode) node()          {}

// Expr is a pipeline command's head or argument expression.
type Expr interface {
	expr()
}

// DotExpr is `.`: the current scope's dot value.
type DotExpr struct{}

// RootExpr is `$`: the root dot of the template invocation.
type RootExpr struct{}

// FieldExpr is a dotted field-access chain rooted at Base (Dot, Root, or a
// Var): `.foo.bar`, `$.foo`, `$var.foo.bar`.
type FieldExpr struct {
	Base Expr
	Path []string
}

// VarExpr is a bare `$name` reference (no further path).
type VarExpr struct {
	Name string
}

// LiteralExpr is a string/bool/number literal token.
type LiteralExpr struct {
	Value value.Value
}

// IdentExpr is a bare identifier token that is neither a literal nor a dot-
// or `$`-rooted path, e.g. "site", "hugo", or a builtin function name used
// with no arguments; which of those it is gets decided at evaluation time.
type IdentExpr struct {
	Name string
}

// CommandExpr is one pipeline command: a head expression plus argument
// expressions, used as a sub-expression when parenthesized.
type CommandExpr struct {
	Head Expr
	Args []Expr
}

// PipeExpr is a parenthesized sub-pipeline used as an expression.
type PipeExpr struct {
	Pipeline *Pipeline
}

func (DotExpr) expr()     {}
func (RootExpr) expr()    {}
func (FieldExpr) expr()   {}
func (VarExpr) expr()     {}
func (LiteralExpr) expr() {}
func (IdentExpr) expr()   {}
func (CommandExpr) expr() {}
func (PipeExpr) expr()    {}

// Command is one element of a Pipeline: a head expression plus argument
// expressions. The piped-in value of
// the previous command is appended as the final argument when evaluated.
type Command struct {
	Head Expr
	Args []Expr
}

// Pipeline is a left-to-right `|`-separated sequence of Commands.
type Pipeline struct {
	Commands []*Command
}

// Template is one parsed template: its top-level node sequence plus any
// named bodies registered via `{{ define "name" }}`.
type Template struct {
	Name    string
	Nodes   []Node
	Defines map[string][]Node
}
