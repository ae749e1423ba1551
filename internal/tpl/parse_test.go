package tpl

import (
	"testing"

	"github.com/aellingwood/tsumo/internal/value"
)

func TestParseOutputPipelineCommands(t *testing.T) {
	tmpl := mustParse(t, "p", `{{ "x" | lower | upper }}`)
	if len(tmpl.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(tmpl.Nodes))
	}
	out, ok := tmpl.Nodes[0].(OutputNode)
	if !ok {
		t.Fatalf("expected OutputNode, got %T", tmpl.Nodes[0])
	}
	if len(out.Pipeline.Commands) != 3 {
		t.Errorf("expected 3 commands, got %d", len(out.Pipeline.Commands))
	}
}

func TestParseAssignmentNodes(t *testing.T) {
	tmpl := mustParse(t, "a", `{{ $x := 1 }}{{ $x = 2 }}`)
	decl, ok := tmpl.Nodes[0].(AssignmentNode)
	if !ok || !decl.Declare || decl.Name != "x" {
		t.Fatalf("expected declare of x, got %+v", tmpl.Nodes[0])
	}
	asn, ok := tmpl.Nodes[1].(AssignmentNode)
	if !ok || asn.Declare || asn.Name != "x" {
		t.Fatalf("expected assignment of x, got %+v", tmpl.Nodes[1])
	}
}

func TestParseElseIfNests(t *testing.T) {
	tmpl := mustParse(t, "ei", `{{ if .A }}a{{ else if .B }}b{{ else }}c{{ end }}`)
	outer, ok := tmpl.Nodes[0].(IfNode)
	if !ok {
		t.Fatalf("expected IfNode, got %T", tmpl.Nodes[0])
	}
	if len(outer.Else) != 1 {
		t.Fatalf("expected 1 else node, got %d", len(outer.Else))
	}
	inner, ok := outer.Else[0].(IfNode)
	if !ok {
		t.Fatalf("expected nested IfNode in else, got %T", outer.Else[0])
	}
	if len(inner.Else) != 1 {
		t.Errorf("expected final else body on nested if, got %d nodes", len(inner.Else))
	}
}

func TestParseRangeVariableForms(t *testing.T) {
	both := mustParse(t, "r1", `{{ range $i, $v := . }}x{{ end }}`).Nodes[0].(RangeNode)
	if both.KeyVar != "i" || both.ValVar != "v" {
		t.Errorf("key/value form: got key=%q val=%q", both.KeyVar, both.ValVar)
	}
	single := mustParse(t, "r2", `{{ range $v := . }}x{{ end }}`).Nodes[0].(RangeNode)
	if single.KeyVar != "" || single.ValVar != "v" {
		t.Errorf("value form: got key=%q val=%q", single.KeyVar, single.ValVar)
	}
	bare := mustParse(t, "r3", `{{ range . }}x{{ end }}`).Nodes[0].(RangeNode)
	if bare.KeyVar != "" || bare.ValVar != "" {
		t.Errorf("bare form: got key=%q val=%q", bare.KeyVar, bare.ValVar)
	}
}

func TestParseDefineRegistersBody(t *testing.T) {
	tmpl := mustParse(t, "d", `{{ define "main" }}hello{{ end }}`)
	if len(tmpl.Nodes) != 0 {
		t.Errorf("define should not emit a top-level node, got %+v", tmpl.Nodes)
	}
	body, ok := tmpl.Defines["main"]
	if !ok || len(body) != 1 {
		t.Fatalf("expected registered define body, got %+v", tmpl.Defines)
	}
	if txt, ok := body[0].(TextNode); !ok || txt.Value != "hello" {
		t.Errorf("unexpected define body: %+v", body[0])
	}
}

func TestParseBlockWithContext(t *testing.T) {
	tmpl := mustParse(t, "b", `{{ block "main" .X }}fb{{ end }}`)
	blk, ok := tmpl.Nodes[0].(BlockNode)
	if !ok {
		t.Fatalf("expected BlockNode, got %T", tmpl.Nodes[0])
	}
	if blk.Name != "main" || blk.Ctx == nil || len(blk.Fallback) != 1 {
		t.Errorf("unexpected block: %+v", blk)
	}
}

func TestParseUnterminatedIfFails(t *testing.T) {
	if _, err := Parse("bad", `{{ if .A }}x`); err == nil {
		t.Fatal("expected parse error for unterminated if")
	}
}

func TestParseStrayEndFails(t *testing.T) {
	if _, err := Parse("bad", `x{{ end }}`); err == nil {
		t.Fatal("expected parse error for stray end")
	}
}

func TestClassifyIdentForms(t *testing.T) {
	tests := []struct {
		tok  string
		want string
	}{
		{".", "DotExpr"},
		{".foo.bar", "FieldExpr"},
		{"$", "RootExpr"},
		{"$x", "VarExpr"},
		{"$x.y", "FieldExpr"},
		{"true", "LiteralExpr"},
		{"42", "LiteralExpr"},
		{"-7", "LiteralExpr"},
		{"3.14", "LiteralExpr"},
		{"site", "IdentExpr"},
		{"strings.contains", "IdentExpr"},
	}
	for _, tt := range tests {
		e := classifyIdent(tt.tok)
		var got string
		switch e.(type) {
		case DotExpr:
			got = "DotExpr"
		case RootExpr:
			got = "RootExpr"
		case FieldExpr:
			got = "FieldExpr"
		case VarExpr:
			got = "VarExpr"
		case LiteralExpr:
			got = "LiteralExpr"
		case IdentExpr:
			got = "IdentExpr"
		}
		if got != tt.want {
			t.Errorf("classifyIdent(%q) = %s, want %s", tt.tok, got, tt.want)
		}
	}
}

func TestClassifyIntegerLiteralValue(t *testing.T) {
	lit, ok := classifyIdent("42").(LiteralExpr)
	if !ok || lit.Value.Kind != value.KindNumber || lit.Value.AsNumber() != 42 {
		t.Fatalf("expected Number 42, got %+v", lit)
	}
}

func TestParseParenthesizedAccess(t *testing.T) {
	tmpl := mustParse(t, "pa", `{{ (dict "k" "v").k }}`)
	got := execTemplate(t, tmpl, value.Nil, value.Nil)
	if got != "v" {
		t.Errorf("got %q, want %q", got, "v")
	}
}

func TestParseSubPipelineAsArgument(t *testing.T) {
	tmpl := mustParse(t, "sp", `{{ upper (lower "ABC") }}`)
	got := execTemplate(t, tmpl, value.Nil, value.Nil)
	if got != "ABC" {
		t.Errorf("got %q, want %q", got, "ABC")
	}
}
