package frontmatter

import "testing"

func TestParseYAMLBasic(t *testing.T) {
	input := "---\n" +
		"title: Hello\n" +
		"tags: [a, b]\n" +
		"params:\n" +
		"  foo: bar\n" +
		"---\n" +
		"body text"

	pc := Parse(input)
	if pc.FrontMatter.Title != "Hello" {
		t.Errorf("title = %q, want Hello", pc.FrontMatter.Title)
	}
	if len(pc.FrontMatter.Tags) != 2 || pc.FrontMatter.Tags[0] != "a" || pc.FrontMatter.Tags[1] != "b" {
		t.Errorf("tags = %v, want [a b]", pc.FrontMatter.Tags)
	}
	foo, ok := pc.FrontMatter.Params["foo"]
	if !ok || foo.Kind != ParamString || foo.Str != "bar" {
		t.Errorf("params[foo] = %+v, want string bar", foo)
	}
	if pc.Body != "body text" {
		t.Errorf("body = %q, want %q", pc.Body, "body text")
	}
}

func TestParseTOMLMenuWeight(t *testing.T) {
	input := "+++\n" +
		"title = \"Hi\"\n" +
		"[[menu.main]]\n" +
		"weight = 10\n" +
		"+++\n" +
		"content"

	pc := Parse(input)
	if len(pc.FrontMatter.Menus) != 1 {
		t.Fatalf("expected 1 menu entry, got %d", len(pc.FrontMatter.Menus))
	}
	m := pc.FrontMatter.Menus[0]
	if m.MenuName != "main" || m.Weight != 10 {
		t.Errorf("menu = %+v, want MenuName=main Weight=10", m)
	}
}

func TestParseJSONFrontMatterWithBody(t *testing.T) {
	input := `{"title": "Hi", "tags": ["x", "y"]}` + "\nbody here"
	pc := Parse(input)
	if pc.FrontMatter.Title != "Hi" {
		t.Errorf("title = %q, want Hi", pc.FrontMatter.Title)
	}
	if pc.Body != "body here" {
		t.Errorf("body = %q, want %q", pc.Body, "body here")
	}
}

func TestParseJSONFrontMatterNoBody(t *testing.T) {
	input := `{"title": "Hi"}`
	pc := Parse(input)
	if pc.FrontMatter.Title != "Hi" || pc.Body != "" {
		t.Errorf("got FrontMatter=%+v Body=%q", pc.FrontMatter, pc.Body)
	}
}

func TestParseNoDelimiterIsAllBody(t *testing.T) {
	input := "just some text\nmore text"
	pc := Parse(input)
	if pc.FrontMatter.Title != "" {
		t.Errorf("expected empty front matter, got %+v", pc.FrontMatter)
	}
	if pc.Body != input {
		t.Errorf("body = %q, want %q", pc.Body, input)
	}
}

func TestParseMalformedJSONNeverFails(t *testing.T) {
	input := `{"title": "Hi" unterminated`
	pc := Parse(input)
	if pc.Body != input {
		t.Errorf("malformed JSON front matter should fall back to whole text as body, got %q", pc.Body)
	}
}

func TestYAMLMenuTwoTier(t *testing.T) {
	input := "---\n" +
		"title: Hi\n" +
		"menu:\n" +
		"  main:\n" +
		"    weight: 5\n" +
		"    name: Home\n" +
		"---\n" +
		"x"
	pc := Parse(input)
	if len(pc.FrontMatter.Menus) != 1 {
		t.Fatalf("expected 1 menu entry, got %d", len(pc.FrontMatter.Menus))
	}
	m := pc.FrontMatter.Menus[0]
	if m.MenuName != "main" || m.Weight != 5 || m.Name != "Home" {
		t.Errorf("menu = %+v", m)
	}
}
