package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTranslateFallsBackToKeyWhenMissing(t *testing.T) {
	tr := NewTranslator("", "en")
	if got := tr.Translate("en", "greeting"); got != "greeting" {
		t.Errorf("expected fallback to key itself, got %q", got)
	}
}

func TestTranslateResolvesFromBundle(t *testing.T) {
	dir := t.TempDir()
	content := "greeting = \"Hello there\"\n"
	if err := os.WriteFile(filepath.Join(dir, "en.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	tr := NewTranslator(dir, "en")
	if got := tr.Translate("en", "greeting"); got != "Hello there" {
		t.Errorf("expected translated greeting, got %q", got)
	}
}
