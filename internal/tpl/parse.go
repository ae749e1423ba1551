package tpl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aellingwood/tsumo/internal/value"
)

// item is one lexed unit the parser consumes: either a literal Text
// segment or an Action segment already broken into tokens.
type item struct {
	isText bool
	text   string
	tokens []token
}

// astParser walks a flat item stream and builds the Node/Expr tree defined
// in ast.go, recursing into nested blocks for if/with/range/block/define.
type astParser struct {
	items   []item
	pos     int
	defines map[string][]Node
}

func (p *astParser) peek() *item {
	if p.pos >= len(p.items) {
		return nil
	}
	return &p.items[p.pos]
}

func (p *astParser) advance() *item {
	it := &p.items[p.pos]
	p.pos++
	return it
}

// Parse builds a Template from raw source. name identifies the
// template for error messages and as its key in the engine's template map.
func Parse(name, src string) (*Template, error) {
	segs := scanSegments(src)
	items := make([]item, 0, len(segs))
	for _, s := range segs {
		if s.kind == segText {
			items = append(items, item{isText: true, text: s.text})
		} else {
			items = append(items, item{tokens: scanTokens(s.text)})
		}
	}
	p := &astParser{items: items, defines: map[string][]Node{}}
	nodes, stop, _, err := parseNodeList(p)
	if err != nil {
		return nil, fmt.Errorf("tpl: parsing %s: %w", name, err)
	}
	if stop != "" {
		return nil, fmt.Errorf("tpl: parsing %s: unexpected %q with no matching opening action", name, stop)
	}
	return &Template{Name: name, Nodes: nodes, Defines: p.defines}, nil
}

// parseNodeList consumes items until it either runs out (top-level EOF,
// returns stop="") or hits a bare "end"/"else"/"else if" action belonging
// to an enclosing block, which it consumes and reports via stop so the
// caller (parseIf/parseWith/parseRange/parseBlock/parseDefine) can react.
func parseNodeList(p *astParser) (nodes []Node, stop string, elseCond *Pipeline, err error) {
	for {
		it := p.peek()
		if it == nil {
			return nodes, "", nil, nil
		}
		if it.isText {
			p.advance()
			if it.text != "" {
				nodes = append(nodes, TextNode{Value: it.text})
			}
			continue
		}
		toks := it.tokens
		if len(toks) == 0 {
			p.advance()
			continue
		}
		kw := ""
		if toks[0].kind == tokIdent {
			kw = toks[0].text
		}
		switch kw {
		case "end":
			p.advance()
			return nodes, "end", nil, nil
		case "else":
			p.advance()
			if len(toks) > 2 && toks[1].kind == tokIdent && toks[1].text == "if" {
				cond, perr := parsePipelineTokens(toks[2:])
				if perr != nil {
					return nil, "", nil, perr
				}
				return nodes, "elseif", cond, nil
			}
			return nodes, "else", nil, nil
		case "if":
			p.advance()
			n, perr := parseIf(p, toks[1:])
			if perr != nil {
				return nil, "", nil, perr
			}
			nodes = append(nodes, n)
		case "range":
			p.advance()
			n, perr := parseRange(p, toks[1:])
			if perr != nil {
				return nil, "", nil, perr
			}
			nodes = append(nodes, n)
		case "with":
			p.advance()
			n, perr := parseWith(p, toks[1:])
			if perr != nil {
				return nil, "", nil, perr
			}
			nodes = append(nodes, n)
		case "block":
			p.advance()
			n, perr := parseBlock(p, toks[1:])
			if perr != nil {
				return nil, "", nil, perr
			}
			nodes = append(nodes, n)
		case "define":
			p.advance()
			if perr := parseDefine(p, toks[1:]); perr != nil {
				return nil, "", nil, perr
			}
		case "template":
			p.advance()
			n, perr := parseTemplateInvoke(toks[1:])
			if perr != nil {
				return nil, "", nil, perr
			}
			nodes = append(nodes, n)
		default:
			p.advance()
			n, perr := parseActionDefault(toks)
			if perr != nil {
				return nil, "", nil, perr
			}
			nodes = append(nodes, n)
		}
	}
}

func parseIf(p *astParser, condToks []token) (Node, error) {
	cond, err := parsePipelineTokens(condToks)
	if err != nil {
		return nil, err
	}
	return parseIfTail(p, cond)
}

func parseIfTail(p *astParser, cond *Pipeline) (Node, error) {
	then, stop, elseCond, err := parseNodeList(p)
	if err != nil {
		return nil, err
	}
	switch stop {
	case "end":
		return IfNode{Cond: cond, Then: then}, nil
	case "else":
		elseNodes, stop2, _, err := parseNodeList(p)
		if err != nil {
			return nil, err
		}
		if stop2 != "end" {
			return nil, fmt.Errorf("unterminated if")
		}
		return IfNode{Cond: cond, Then: then, Else: elseNodes}, nil
	case "elseif":
		nested, err := parseIfTail(p, elseCond)
		if err != nil {
			return nil, err
		}
		return IfNode{Cond: cond, Then: then, Else: []Node{nested}}, nil
	default:
		return nil, fmt.Errorf("unterminated if")
	}
}

func parseWith(p *astParser, toks []token) (Node, error) {
	expr, err := parsePipelineTokens(toks)
	if err != nil {
		return nil, err
	}
	then, stop, elseCond, err := parseNodeList(p)
	if err != nil {
		return nil, err
	}
	switch stop {
	case "end":
		return WithNode{Expr: expr, Then: then}, nil
	case "else":
		elseNodes, stop2, _, err := parseNodeList(p)
		if err != nil {
			return nil, err
		}
		if stop2 != "end" {
			return nil, fmt.Errorf("unterminated with")
		}
		return WithNode{Expr: expr, Then: then, Else: elseNodes}, nil
	case "elseif":
		nested, err := parseIfTail(p, elseCond)
		if err != nil {
			return nil, err
		}
		return WithNode{Expr: expr, Then: then, Else: []Node{nested}}, nil
	default:
		return nil, fmt.Errorf("unterminated with")
	}
}

func parseRange(p *astParser, toks []token) (Node, error) {
	idx := 0
	var keyVar, valVar string
	if len(toks) > 0 && toks[0].kind == tokIdent && strings.HasPrefix(toks[0].text, "$") {
		first := strings.TrimPrefix(toks[0].text, "$")
		switch {
		case len(toks) > 3 && toks[1].kind == tokComma && toks[2].kind == tokIdent &&
			strings.HasPrefix(toks[2].text, "$") && toks[3].kind == tokDeclare:
			keyVar = first
			valVar = strings.TrimPrefix(toks[2].text, "$")
			idx = 4
		case len(toks) > 1 && toks[1].kind == tokDeclare:
			valVar = first
			idx = 2
		}
	}
	expr, err := parsePipelineTokens(toks[idx:])
	if err != nil {
		return nil, err
	}
	body, stop, _, err := parseNodeList(p)
	if err != nil {
		return nil, err
	}
	switch stop {
	case "end":
		return RangeNode{Expr: expr, KeyVar: keyVar, ValVar: valVar, Body: body}, nil
	case "else":
		elseBody, stop2, _, err := parseNodeList(p)
		if err != nil {
			return nil, err
		}
		if stop2 != "end" {
			return nil, fmt.Errorf("unterminated range")
		}
		return RangeNode{Expr: expr, KeyVar: keyVar, ValVar: valVar, Body: body, ElseBody: elseBody}, nil
	default:
		return nil, fmt.Errorf("unterminated range")
	}
}

func parseBlock(p *astParser, toks []token) (Node, error) {
	if len(toks) == 0 || toks[0].kind != tokString {
		return nil, fmt.Errorf("block requires a quoted name")
	}
	name := unquoteLiteral(toks[0].text)
	var ctx *Pipeline
	if len(toks) > 1 {
		c, err := parsePipelineTokens(toks[1:])
		if err != nil {
			return nil, err
		}
		ctx = c
	}
	fallback, stop, _, err := parseNodeList(p)
	if err != nil {
		return nil, err
	}
	if stop != "end" {
		return nil, fmt.Errorf("unterminated block %q", name)
	}
	return BlockNode{Name: name, Ctx: ctx, Fallback: fallback}, nil
}

func parseDefine(p *astParser, toks []token) error {
	if len(toks) == 0 || toks[0].kind != tokString {
		return fmt.Errorf("define requires a quoted name")
	}
	name := unquoteLiteral(toks[0].text)
	body, stop, _, err := parseNodeList(p)
	if err != nil {
		return err
	}
	if stop != "end" {
		return fmt.Errorf("unterminated define %q", name)
	}
	p.defines[name] = body
	return nil
}

func parseTemplateInvoke(toks []token) (Node, error) {
	if len(toks) == 0 || toks[0].kind != tokString {
		return nil, fmt.Errorf("template requires a quoted name")
	}
	name := unquoteLiteral(toks[0].text)
	var ctx *Pipeline
	if len(toks) > 1 {
		c, err := parsePipelineTokens(toks[1:])
		if err != nil {
			return nil, err
		}
		ctx = c
	}
	return TemplateInvokeNode{Name: name, Ctx: ctx}, nil
}

func parseActionDefault(toks []token) (Node, error) {
	if len(toks) >= 2 && toks[0].kind == tokIdent && strings.HasPrefix(toks[0].text, "$") &&
		(toks[1].kind == tokDeclare || toks[1].kind == tokAssign) {
		name := strings.TrimPrefix(toks[0].text, "$")
		declare := toks[1].kind == tokDeclare
		pipeline, err := parsePipelineTokens(toks[2:])
		if err != nil {
			return nil, err
		}
		return AssignmentNode{Name: name, Pipeline: pipeline, Declare: declare}, nil
	}
	pipeline, err := parsePipelineTokens(toks)
	if err != nil {
		return nil, err
	}
	return OutputNode{Pipeline: pipeline}, nil
}

// tokParser is a cursor over one action's already-scanned tokens, used to
// parse the pipeline/command/operand grammar.
type tokParser struct {
	toks []token
	pos  int
}

func (tp *tokParser) peek() *token {
	if tp.pos >= len(tp.toks) {
		return nil
	}
	return &tp.toks[tp.pos]
}

func (tp *tokParser) next() *token {
	t := &tp.toks[tp.pos]
	tp.pos++
	return t
}

func parsePipelineTokens(toks []token) (*Pipeline, error) {
	tp := &tokParser{toks: toks}
	if len(toks) == 0 {
		return &Pipeline{Commands: []*Command{{Head: DotExpr{}}}}, nil
	}
	pipeline, err := parsePipeline(tp)
	if err != nil {
		return nil, err
	}
	return pipeline, nil
}

func parsePipeline(tp *tokParser) (*Pipeline, error) {
	var cmds []*Command
	cmd, err := parseCommand(tp)
	if err != nil {
		return nil, err
	}
	cmds = append(cmds, cmd)
	for {
		t := tp.peek()
		if t == nil || t.kind != tokPipe {
			break
		}
		tp.next()
		cmd, err := parseCommand(tp)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return &Pipeline{Commands: cmds}, nil
}

func parseCommand(tp *tokParser) (*Command, error) {
	head, err := parseOperand(tp)
	if err != nil {
		return nil, err
	}
	var args []Expr
	for {
		t := tp.peek()
		if t == nil || t.kind == tokPipe || t.kind == tokRParen || t.kind == tokComma {
			break
		}
		arg, err := parseOperand(tp)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return &Command{Head: head, Args: args}, nil
}

func parseOperand(tp *tokParser) (Expr, error) {
	t := tp.peek()
	if t == nil {
		return nil, fmt.Errorf("unexpected end of pipeline")
	}
	tp.next()
	switch t.kind {
	case tokString:
		return LiteralExpr{Value: value.String(unquoteLiteral(t.text))}, nil
	case tokLParen:
		sub, err := parsePipeline(tp)
		if err != nil {
			return nil, err
		}
		closing := tp.peek()
		if closing == nil || closing.kind != tokRParen {
			return nil, fmt.Errorf("missing closing paren")
		}
		tp.next()
		var e Expr = PipeExpr{Pipeline: sub}
		if nt := tp.peek(); nt != nil && nt.kind == tokIdent && strings.HasPrefix(nt.text, ".") {
			tp.next()
			e = FieldExpr{Base: e, Path: splitFieldPath(nt.text)}
		}
		return e, nil
	case tokIdent:
		return classifyIdent(t.text), nil
	default:
		return nil, fmt.Errorf("unexpected token %q", t.text)
	}
}

func splitFieldPath(tok string) []string {
	trimmed := strings.TrimPrefix(tok, ".")
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

var integerLiteral = func(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' {
		i = 1
	}
	if i >= len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// classifyIdent classifies an unquoted action token: dot/root/var paths,
// true/false/number literals,
// and otherwise a bare identifier resolved at evaluation time (builtin
// function, "site", or dotted receiver.method dispatch).
func classifyIdent(tok string) Expr {
	switch {
	case tok == ".":
		return DotExpr{}
	case strings.HasPrefix(tok, "."):
		return FieldExpr{Base: DotExpr{}, Path: splitFieldPath(tok)}
	case tok == "$":
		return RootExpr{}
	case strings.HasPrefix(tok, "$"):
		rest := tok[1:]
		if idx := strings.IndexByte(rest, '.'); idx >= 0 {
			return FieldExpr{Base: VarExpr{Name: rest[:idx]}, Path: strings.Split(rest[idx+1:], ".")}
		}
		return VarExpr{Name: rest}
	case tok == "true":
		return LiteralExpr{Value: value.Bool(true)}
	case tok == "false":
		return LiteralExpr{Value: value.Bool(false)}
	case integerLiteral(tok):
		n, _ := strconv.Atoi(tok)
		return LiteralExpr{Value: value.Number(float64(n))}
	case isFloatLiteral(tok):
		f, _ := strconv.ParseFloat(tok, 64)
		return LiteralExpr{Value: value.Number(f)}
	default:
		return IdentExpr{Name: tok}
	}
}

func isFloatLiteral(s string) bool {
	if s == "" {
		return false
	}
	dot := strings.IndexByte(s, '.')
	if dot <= 0 || dot == len(s)-1 {
		return false
	}
	intPart := s[:dot]
	fracPart := s[dot+1:]
	return integerLiteral(intPart) && integerLiteral(fracPart)
}
