package resource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestAsset(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestGetSitePriorityOverTheme(t *testing.T) {
	siteDir := t.TempDir()
	themeDir := t.TempDir()
	outDir := t.TempDir()

	writeTestAsset(t, siteDir, "css/a.css", "site-version")
	writeTestAsset(t, themeDir, "css/a.css", "theme-version")

	m := NewManager(siteDir, themeDir, outDir, nil, nil)
	r, err := m.Get("css/a.css")
	if err != nil {
		t.Fatal(err)
	}
	if r == nil || r.Text != "site-version" {
		t.Fatalf("expected site version to win, got %+v", r)
	}
}

func TestGetMissingReturnsNilNoError(t *testing.T) {
	m := NewManager(t.TempDir(), "", t.TempDir(), nil, nil)
	r, err := m.Get("does/not/exist.css")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if r != nil {
		t.Fatalf("expected nil resource, got %+v", r)
	}
}

func TestMatchSitePriorityDedup(t *testing.T) {
	siteDir := t.TempDir()
	themeDir := t.TempDir()
	writeTestAsset(t, siteDir, "css/a.css", "site")
	writeTestAsset(t, themeDir, "css/a.css", "theme")

	m := NewManager(siteDir, themeDir, t.TempDir(), nil, nil)
	rs, err := m.Match("css/*.css")
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 1 {
		t.Fatalf("expected exactly 1 match (site wins), got %d", len(rs))
	}
	if rs[0].Text != "site" {
		t.Fatalf("expected site content to win, got %q", rs[0].Text)
	}
}

func TestMinifyIdempotent(t *testing.T) {
	m := NewManager(t.TempDir(), "", t.TempDir(), nil, nil)
	r := m.FromString("x.css", "  a {  \n\n  color: red;  \n  }  ")
	once := m.Minify(r)
	twice := m.Minify(once)
	if string(once.Bytes) != string(twice.Bytes) {
		t.Fatalf("minify not idempotent: %q vs %q", once.Bytes, twice.Bytes)
	}
}

func TestFingerprintOutputPath(t *testing.T) {
	siteDir := t.TempDir()
	writeTestAsset(t, siteDir, "css/app.css", "body{color:red}")
	m := NewManager(siteDir, "", t.TempDir(), nil, nil)
	r, _ := m.Get("css/app.css")
	r.OutputRelPath = "css/app.css"
	fp := m.Fingerprint(r)
	if !strings.HasPrefix(fp.Integrity, "sha256-") {
		t.Fatalf("expected sha256- integrity prefix, got %q", fp.Integrity)
	}
	if !strings.HasPrefix(fp.OutputRelPath, "css/app.") || !strings.HasSuffix(fp.OutputRelPath, ".css") {
		t.Fatalf("unexpected fingerprinted path: %q", fp.OutputRelPath)
	}
}

func TestFingerprintDependsOnlyOnBytesAndName(t *testing.T) {
	siteDir := t.TempDir()
	writeTestAsset(t, siteDir, "css/app.css", "body{color:red}")
	m := NewManager(siteDir, "", t.TempDir(), nil, nil)
	r, _ := m.Get("css/app.css")
	r.OutputRelPath = "css/app.css"

	direct := m.Fingerprint(r)

	copied := m.Copy("css/app.css", r)
	viaCopy := m.Fingerprint(copied)

	if direct.OutputRelPath != viaCopy.OutputRelPath {
		t.Fatalf("fingerprint path should depend only on bytes+name, got %q vs %q", direct.OutputRelPath, viaCopy.OutputRelPath)
	}
}

func TestEnsurePublishedIdempotent(t *testing.T) {
	siteDir := t.TempDir()
	outDir := t.TempDir()
	writeTestAsset(t, siteDir, "css/app.css", "body{color:red}")
	m := NewManager(siteDir, "", outDir, nil, nil)
	r, _ := m.Get("css/app.css")
	r.OutputRelPath = "css/app.css"

	if err := m.EnsurePublished(r); err != nil {
		t.Fatal(err)
	}
	if err := m.EnsurePublished(r); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "css/app.css"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "body{color:red}" {
		t.Fatalf("unexpected published content: %q", data)
	}
}

func TestPNGDimensions(t *testing.T) {
	// Minimal 1x1 PNG: signature + IHDR chunk with width=1 height=1.
	data := []byte{
		0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', // signature
		0, 0, 0, 13, 'I', 'H', 'D', 'R', // chunk length + type
		0, 0, 0, 1, // width = 1
		0, 0, 0, 1, // height = 1
		8, 6, 0, 0, 0, // bit depth, color type, compression, filter, interlace
	}
	w, h, ok := decodeDimensions(data)
	if !ok || w != 1 || h != 1 {
		t.Fatalf("expected 1x1, got w=%d h=%d ok=%v", w, h, ok)
	}
}

func TestGifDimensions(t *testing.T) {
	data := []byte{'G', 'I', 'F', '8', '9', 'a', 2, 0, 3, 0}
	w, h, ok := decodeDimensions(data)
	if !ok || w != 2 || h != 3 {
		t.Fatalf("expected 2x3, got w=%d h=%d ok=%v", w, h, ok)
	}
}
