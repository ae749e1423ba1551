package resource

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/aellingwood/tsumo/internal/pathutil"
)

// Manager holds the resource pipeline's state: two pre-computed file
// lists (site, theme), an id->Resource memo, and an output directory.
type Manager struct {
	siteAssetsDir  string
	themeAssetsDir string
	outputDir      string
	siteFiles      []string
	themeFiles     []string
	mu             sync.Mutex // guards memo and published; page renders run in parallel
	memo           map[string]*Resource
	published      map[string][]byte
	sass           SassCompiler
	scaler         ImageScaler
}

func (m *Manager) memoGet(key string) (*Resource, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.memo[key]
	return r, ok
}

func (m *Manager) memoSet(key string, r *Resource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.memo[key] = r
}

// NewManager enumerates the site and (optional) theme asset roots and
// returns a ready Manager. themeAssetsDir may be empty when no theme is in
// use.
func NewManager(siteAssetsDir, themeAssetsDir, outputDir string, sass SassCompiler, scaler ImageScaler) *Manager {
	return &Manager{
		siteAssetsDir:  siteAssetsDir,
		themeAssetsDir: themeAssetsDir,
		outputDir:      outputDir,
		siteFiles:      enumerate(siteAssetsDir),
		themeFiles:     enumerate(themeAssetsDir),
		memo:           make(map[string]*Resource),
		published:      make(map[string][]byte),
		sass:           sass,
		scaler:         scaler,
	}
}

func enumerate(root string) []string {
	if root == "" {
		return nil
	}
	var out []string
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		out = append(out, pathutil.NormalizeRelPath(filepath.ToSlash(rel)))
		return nil
	})
	return out
}

func contains(list []string, rel string) bool {
	for _, f := range list {
		if f == rel {
			return true
		}
	}
	return false
}

// Get resolves rel against the site assets root first, then the theme
// assets root. Returns (nil, nil) on a miss: a missing resource is not an
// error, callers decide via `with`/`default`.
func (m *Manager) Get(rel string) (*Resource, error) {
	rel = pathutil.NormalizeRelPath(rel)
	key := "get:" + rel

	if r, ok := m.memoGet(key); ok {
		return r, nil
	}

	var root string
	switch {
	case contains(m.siteFiles, rel):
		root = m.siteAssetsDir
	case contains(m.themeFiles, rel):
		root = m.themeAssetsDir
	default:
		return nil, nil
	}

	full := filepath.Join(root, filepath.FromSlash(rel))
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, nil
	}

	r := &Resource{
		ID:          key,
		SourcePath:  rel,
		Publishable: true,
		Bytes:       data,
		MediaType:   mediaTypeFor(rel),
	}
	if isTextExt(rel) {
		r.Text = string(data)
		r.HasText = true
	}
	if w, h, ok := decodeDimensions(data); ok {
		r.Width, r.Height = w, h
	}

	m.memoSet(key, r)
	return r, nil
}

// GetMatch returns the first resource matching glob, site before theme.
func (m *Manager) GetMatch(glob string) (*Resource, error) {
	for _, rel := range m.siteFiles {
		if pathutil.GlobMatch(glob, rel) {
			return m.Get(rel)
		}
	}
	for _, rel := range m.themeFiles {
		if pathutil.GlobMatch(glob, rel) {
			return m.Get(rel)
		}
	}
	return nil, nil
}

// Match returns every resource matching glob, site-priority deduplicated
// by normalized relative path.
func (m *Manager) Match(glob string) ([]*Resource, error) {
	seen := make(map[string]bool)
	var out []*Resource
	for _, rel := range m.siteFiles {
		if pathutil.GlobMatch(glob, rel) && !seen[rel] {
			seen[rel] = true
			if r, err := m.Get(rel); err == nil && r != nil {
				out = append(out, r)
			}
		}
	}
	for _, rel := range m.themeFiles {
		if pathutil.GlobMatch(glob, rel) && !seen[rel] {
			seen[rel] = true
			if r, err := m.Get(rel); err == nil && r != nil {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

// ByType returns every resource of the given kind (image/text/application),
// site-priority deduplicated.
func (m *Manager) ByType(kind string) ([]*Resource, error) {
	seen := make(map[string]bool)
	var out []*Resource
	for _, files := range [][]string{m.siteFiles, m.themeFiles} {
		for _, rel := range files {
			if seen[rel] || byTypeKind(rel) != kind {
				continue
			}
			seen[rel] = true
			if r, err := m.Get(rel); err == nil && r != nil {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

// Concat joins the Text of every input (non-text inputs contribute
// nothing) with "\n" and publishes under target.
func (m *Manager) Concat(target string, rs []*Resource) *Resource {
	ids := make([]string, len(rs))
	var parts []string
	for i, r := range rs {
		ids[i] = r.ID
		if r.HasText {
			parts = append(parts, r.Text)
		}
	}
	key := "concat:" + target + "|" + strings.Join(ids, "|")
	if r, ok := m.memoGet(key); ok {
		return r
	}
	text := strings.Join(parts, "\n")
	r := &Resource{
		ID:            key,
		Publishable:   true,
		OutputRelPath: pathutil.NormalizeRelPath(target),
		Bytes:         []byte(text),
		Text:          text,
		HasText:       true,
		MediaType:     mediaTypeFor(target),
	}
	m.memoSet(key, r)
	return r
}

// FromString creates a virtual, non-publishable resource. It is not
// memoized: each call yields a fresh Resource value.
func (m *Manager) FromString(name, s string) *Resource {
	return &Resource{
		ID:          "string:" + name,
		Publishable: false,
		Bytes:       []byte(s),
		Text:        s,
		HasText:     true,
		MediaType:   mediaTypeFor(name),
	}
}

// Minify strips blank lines and trims each remaining line. Resources with
// no text pass through unchanged.
func (m *Manager) Minify(r *Resource) *Resource {
	if !r.HasText {
		return r
	}
	key := r.ID + "|minify"
	if cached, ok := m.memoGet(key); ok {
		return cached
	}
	lines := strings.Split(r.Text, "\n")
	var out []string
	for _, l := range lines {
		t := strings.TrimSpace(l)
		if t != "" {
			out = append(out, t)
		}
	}
	text := strings.Join(out, "\n")
	nr := &Resource{
		ID:            key,
		SourcePath:    r.SourcePath,
		Publishable:   r.Publishable,
		OutputRelPath: r.OutputRelPath,
		Bytes:         []byte(text),
		Text:          text,
		HasText:       true,
		MediaType:     r.MediaType,
	}
	m.memoSet(key, nr)
	return nr
}

// Fingerprint computes the SHA-256 of r's bytes, sets Data.integrity, and
// renames outputRelPath to "<dir>/<base>.<first16hex>.<ext>".
func (m *Manager) Fingerprint(r *Resource) *Resource {
	key := r.ID + "|fingerprint"
	if cached, ok := m.memoGet(key); ok {
		return cached
	}
	sum := sha256.Sum256(r.Bytes)
	hexSum := hex.EncodeToString(sum[:])
	b64 := base64.StdEncoding.EncodeToString(sum[:])

	base := r.OutputRelPath
	if base == "" {
		base = r.SourcePath
	}
	dir := ""
	name := base
	if i := strings.LastIndex(base, "/"); i >= 0 {
		dir = base[:i+1]
		name = base[i+1:]
	}
	ext := ""
	stem := name
	if i := strings.LastIndex(name, "."); i >= 0 {
		ext = name[i:]
		stem = name[:i]
	}
	newName := fmt.Sprintf("%s.%s%s", stem, hexSum[:16], ext)

	nr := &Resource{
		ID:            key,
		SourcePath:    r.SourcePath,
		Publishable:   r.Publishable,
		OutputRelPath: dir + newName,
		Bytes:         r.Bytes,
		Text:          r.Text,
		HasText:       r.HasText,
		MediaType:     r.MediaType,
		Width:         r.Width,
		Height:        r.Height,
		Integrity:     "sha256-" + b64,
	}
	m.memoSet(key, nr)
	return nr
}

// Copy produces a new resource with outputRelPath = target, bytes/text
// preserved from r.
func (m *Manager) Copy(target string, r *Resource) *Resource {
	key := r.ID + "|copy:" + target
	if cached, ok := m.memoGet(key); ok {
		return cached
	}
	nr := &Resource{
		ID:            key,
		SourcePath:    r.SourcePath,
		Publishable:   true,
		OutputRelPath: pathutil.NormalizeRelPath(target),
		Bytes:         r.Bytes,
		Text:          r.Text,
		HasText:       r.HasText,
		MediaType:     r.MediaType,
		Width:         r.Width,
		Height:        r.Height,
	}
	m.memoSet(key, nr)
	return nr
}

// PostProcess is the identity transform; there is no deferred pipeline.
func (m *Manager) PostProcess(r *Resource) *Resource {
	return r
}

// EnsurePublished writes r's bytes to outputDir/outputRelPath if r is
// publishable and has an outputRelPath. Idempotent: repeated calls with the
// same bytes produce the same file contents and no additional writes once
// already published.
func (m *Manager) EnsurePublished(r *Resource) error {
	if !r.Publishable || r.OutputRelPath == "" {
		return nil
	}
	// Holding mu across the write serializes publication per manager, so
	// concurrent renders publishing the same destination stay byte-identical.
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.published[r.OutputRelPath]; ok && string(existing) == string(r.Bytes) {
		return nil
	}
	full := filepath.Join(m.outputDir, filepath.FromSlash(r.OutputRelPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(full, r.Bytes, 0o644); err != nil {
		return err
	}
	m.published[r.OutputRelPath] = r.Bytes
	return nil
}

// ParseResizeSpec parses a "WxH [format]" spec: either dimension may be 0
// or absent, meaning derive it proportionally from the source's
// width/height.
func ParseResizeSpec(spec string, srcWidth, srcHeight int) (width, height int, format string) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return srcWidth, srcHeight, ""
	}
	dims := fields[0]
	if len(fields) > 1 {
		format = fields[1]
	}
	parts := strings.SplitN(dims, "x", 2)
	w := parseDimOr(parts, 0, 0)
	h := 0
	if len(parts) > 1 {
		h = parseDimOr(parts, 1, 0)
	}
	if w == 0 && h == 0 {
		return srcWidth, srcHeight, format
	}
	if w == 0 && srcWidth > 0 && srcHeight > 0 {
		w = h * srcWidth / srcHeight
	}
	if h == 0 && srcWidth > 0 && srcHeight > 0 {
		h = w * srcHeight / srcWidth
	}
	return w, h, format
}

func parseDimOr(parts []string, i, fallback int) int {
	if i >= len(parts) {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
	if err != nil {
		return fallback
	}
	return n
}

// Resize invokes the library-backed scaler collaborator and re-reads
// dimensions from the output bytes.
func (m *Manager) Resize(r *Resource, spec string) (*Resource, error) {
	key := r.ID + "|resize:" + spec
	if cached, ok := m.memoGet(key); ok {
		return cached, nil
	}
	if m.scaler == nil {
		return nil, &BuildError{Resource: r.SourcePath, Message: "no image scaler configured"}
	}
	w, h, _ := ParseResizeSpec(spec, r.Width, r.Height)

	tmpDir := filepath.Join(m.outputDir, ".tsumo", "resize")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, &BuildError{Resource: r.SourcePath, Message: err.Error()}
	}
	inPath := filepath.Join(tmpDir, sanitizeFileName(r.ID)+"-in"+extOf(r.SourcePath))
	outPath := filepath.Join(tmpDir, sanitizeFileName(r.ID)+"-out"+extOf(r.SourcePath))
	if err := os.WriteFile(inPath, r.Bytes, 0o644); err != nil {
		return nil, &BuildError{Resource: r.SourcePath, Message: err.Error()}
	}
	if err := m.scaler.Scale(inPath, outPath, w, h); err != nil {
		return nil, &BuildError{Resource: r.SourcePath, Message: fmt.Sprintf("image scaler failure: %v", err)}
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, &BuildError{Resource: r.SourcePath, Message: "image scaler produced no output file"}
	}

	nr := &Resource{
		ID:            key,
		SourcePath:    r.SourcePath,
		Publishable:   true,
		OutputRelPath: resizedOutputPath(r.OutputRelPath, r.SourcePath, w, h),
		Bytes:         data,
		MediaType:     r.MediaType,
	}
	if nw, nh, ok := decodeDimensions(data); ok {
		nr.Width, nr.Height = nw, nh
	} else {
		nr.Width, nr.Height = w, h
	}
	m.memoSet(key, nr)
	return nr, nil
}

func resizedOutputPath(outputRelPath, sourcePath string, w, h int) string {
	base := outputRelPath
	if base == "" {
		base = sourcePath
	}
	dir, name := "", base
	if i := strings.LastIndex(base, "/"); i >= 0 {
		dir, name = base[:i+1], base[i+1:]
	}
	ext := extOf(name)
	stem := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s%s_%dx%d%s", dir, stem, w, h, ext)
}

func sanitizeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
}

// SassCompile writes r's bytes to a temp .scss file and invokes the
// external sass process collaborator (package scss).
func (m *Manager) SassCompile(r *Resource) (*Resource, error) {
	if !r.HasText {
		return nil, &BuildError{Resource: r.SourcePath, Message: "css.Sass called on non-text input"}
	}
	key := r.ID + "|sass"
	if cached, ok := m.memoGet(key); ok {
		return cached, nil
	}
	if m.sass == nil {
		return nil, &BuildError{Resource: r.SourcePath, Message: "no sass compiler configured"}
	}

	tmpDir := filepath.Join(m.outputDir, ".tsumo", "sass")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, &BuildError{Resource: r.SourcePath, Message: err.Error()}
	}
	inPath := filepath.Join(tmpDir, sanitizeFileName(r.ID)+".scss")
	outPath := filepath.Join(tmpDir, sanitizeFileName(r.ID)+".css")
	if err := os.WriteFile(inPath, r.Bytes, 0o644); err != nil {
		return nil, &BuildError{Resource: r.SourcePath, Message: err.Error()}
	}

	loadPaths := []string{m.siteAssetsDir}
	if m.themeAssetsDir != "" {
		loadPaths = append(loadPaths, m.themeAssetsDir)
	}
	if err := m.sass.Compile(inPath, outPath, loadPaths); err != nil {
		return nil, &BuildError{Resource: r.SourcePath, Message: err.Error()}
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, &BuildError{Resource: r.SourcePath, Message: "sass produced no output file"}
	}

	css := string(data)
	outRel := strings.TrimSuffix(r.SourcePath, extOf(r.SourcePath)) + ".css"
	nr := &Resource{
		ID:            key,
		SourcePath:    r.SourcePath,
		Publishable:   true,
		OutputRelPath: outRel,
		Bytes:         data,
		Text:          css,
		HasText:       true,
		MediaType:     "text/css",
	}
	m.memoSet(key, nr)
	return nr, nil
}
