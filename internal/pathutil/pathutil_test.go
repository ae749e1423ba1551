package pathutil

import "testing"

func TestNormalizeRelPath(t *testing.T) {
	cases := map[string]string{
		"a/b/c":       "a/b/c",
		"./a/./b":     "a/b",
		"a/../b":      "b",
		"../a":        "a",
		"a/b/../../c": "c",
		"":            "",
	}
	for in, want := range cases {
		if got := NormalizeRelPath(in); got != want {
			t.Errorf("NormalizeRelPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeRelPathIdempotent(t *testing.T) {
	inputs := []string{"a/b/../c", "./x/y", "a/b/c", ""}
	for _, in := range inputs {
		once := NormalizeRelPath(in)
		twice := NormalizeRelPath(once)
		if once != twice {
			t.Errorf("NormalizeRelPath not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestEnsureTrailingSlashIdempotent(t *testing.T) {
	for _, in := range []string{"", "/", "a/b", "a/b/"} {
		once := EnsureTrailingSlash(in)
		twice := EnsureTrailingSlash(once)
		if once != twice {
			t.Errorf("EnsureTrailingSlash not idempotent for %q: %q vs %q", in, once, twice)
		}
		if once[len(once)-1] != '/' {
			t.Errorf("EnsureTrailingSlash(%q) = %q missing trailing slash", in, once)
		}
	}
}

func TestGlobMatchDoubleStarZeroOrMore(t *testing.T) {
	if !GlobMatch("**/*.css", "a/b/c.css") {
		t.Error(`expected "**/*.css" to match "a/b/c.css"`)
	}
	if !GlobMatch("a/**/c.css", "a/c.css") {
		t.Error(`expected "a/**/c.css" to match "a/c.css" (zero segments)`)
	}
	if !GlobMatch("**/*.css", "c.css") {
		t.Error(`expected "**/*.css" to match "c.css"`)
	}
	if GlobMatch("a/**/c.css", "a/b/d.css") {
		t.Error(`expected "a/**/c.css" not to match "a/b/d.css"`)
	}
}

func TestGlobMatchStarSubstring(t *testing.T) {
	if !GlobMatch("css/*.css", "css/app.css") {
		t.Error("expected star match")
	}
	if !GlobMatch("css/a*b*.css", "css/axxbyy.css") {
		t.Error("expected ordered-substring match")
	}
	if GlobMatch("css/a*b*.css", "css/bxxayy.css") {
		t.Error("expected ordered-substring mismatch to fail")
	}
	if GlobMatch("css/*.css", "js/app.css") {
		t.Error("expected segment-count mismatch to fail across directories")
	}
}

func TestSplitURLNeverRaises(t *testing.T) {
	path, query, frag := SplitURL("a/b?x=1#sec")
	if path != "a/b" || query != "x=1" || frag != "sec" {
		t.Errorf("got (%q,%q,%q)", path, query, frag)
	}
	path, query, frag = SplitURL("a/b")
	if path != "a/b" || query != "" || frag != "" {
		t.Errorf("got (%q,%q,%q)", path, query, frag)
	}
}

func TestQuoteProcessArg(t *testing.T) {
	if QuoteProcessArg("plain") != "plain" {
		t.Error("plain arg should be unchanged")
	}
	if got := QuoteProcessArg(`has space`); got != `"has space"` {
		t.Errorf("got %q", got)
	}
	if got := QuoteProcessArg(`has "quote"`); got != `"has \"quote\""` {
		t.Errorf("got %q", got)
	}
}
