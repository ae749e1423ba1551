package tpl

import "testing"

func TestScanSegmentsPlainText(t *testing.T) {
	segs := scanSegments("hello world")
	if len(segs) != 1 || segs[0].kind != segText || segs[0].text != "hello world" {
		t.Fatalf("unexpected segments: %+v", segs)
	}
}

func TestScanSegmentsEmptySource(t *testing.T) {
	if segs := scanSegments(""); len(segs) != 0 {
		t.Fatalf("expected no segments, got %+v", segs)
	}
}

func TestScanSegmentsAlternating(t *testing.T) {
	segs := scanSegments(`a{{ .X }}b`)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d: %+v", len(segs), segs)
	}
	if segs[0].text != "a" || segs[0].kind != segText {
		t.Errorf("segment 0: %+v", segs[0])
	}
	if segs[1].text != ".X" || segs[1].kind != segAction {
		t.Errorf("segment 1: %+v", segs[1])
	}
	if segs[2].text != "b" || segs[2].kind != segText {
		t.Errorf("segment 2: %+v", segs[2])
	}
}

func TestScanSegmentsTrimMarkers(t *testing.T) {
	segs := scanSegments("a \t\n{{- .X -}}\n\t b")
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d: %+v", len(segs), segs)
	}
	if segs[0].text != "a" {
		t.Errorf("left trim: got %q, want %q", segs[0].text, "a")
	}
	if segs[2].text != "b" {
		t.Errorf("right trim: got %q, want %q", segs[2].text, "b")
	}
}

func TestScanSegmentsUnterminatedAction(t *testing.T) {
	segs := scanSegments("a{{ oops")
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segs), segs)
	}
	if segs[1].kind != segText || segs[1].text != "{{ oops" {
		t.Errorf("unterminated action should become text, got %+v", segs[1])
	}
}

func TestScanSegmentsCommentDropped(t *testing.T) {
	segs := scanSegments(`a{{/* note */}}b`)
	for _, s := range segs {
		if s.kind == segAction {
			t.Fatalf("comment should not produce an action segment: %+v", segs)
		}
	}
}

func TestScanTokensSpecials(t *testing.T) {
	toks := scanTokens(`$x := (lower "A") | upper`)
	kinds := []tokKind{tokIdent, tokDeclare, tokLParen, tokIdent, tokString, tokRParen, tokPipe, tokIdent}
	if len(toks) != len(kinds) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(kinds), len(toks), toks)
	}
	for i, k := range kinds {
		if toks[i].kind != k {
			t.Errorf("token %d: got kind %d text %q, want kind %d", i, toks[i].kind, toks[i].text, k)
		}
	}
}

func TestScanTokensAssignVsDeclare(t *testing.T) {
	toks := scanTokens(`$x = 1`)
	if len(toks) != 3 || toks[1].kind != tokAssign {
		t.Fatalf("expected assign token, got %+v", toks)
	}
}

func TestScanTokensQuotedStrings(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`"double"`, `"double"`},
		{`'single'`, `'single'`},
		{"`back`", "`back`"},
		{`"with | pipe ( )"`, `"with | pipe ( )"`},
	}
	for _, tt := range tests {
		toks := scanTokens(tt.src)
		if len(toks) != 1 || toks[0].kind != tokString || toks[0].text != tt.want {
			t.Errorf("scanTokens(%q) = %+v, want one string token %q", tt.src, toks, tt.want)
		}
	}
}

func TestUnquoteLiteral(t *testing.T) {
	if got := unquoteLiteral(`"abc"`); got != "abc" {
		t.Errorf("got %q, want %q", got, "abc")
	}
	if got := unquoteLiteral(`'x'`); got != "x" {
		t.Errorf("got %q, want %q", got, "x")
	}
}
