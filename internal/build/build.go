// Package build orchestrates the full static site generation pipeline.
// It coordinates content discovery, markdown rendering, template execution,
// and file output to produce a complete static site.
package build

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aellingwood/tsumo/internal/config"
	"github.com/aellingwood/tsumo/internal/feed"
	"github.com/aellingwood/tsumo/internal/i18n"
	"github.com/aellingwood/tsumo/internal/imgscale"
	"github.com/aellingwood/tsumo/internal/markdown"
	"github.com/aellingwood/tsumo/internal/resource"
	"github.com/aellingwood/tsumo/internal/scss"
	"github.com/aellingwood/tsumo/internal/search"
	"github.com/aellingwood/tsumo/internal/seo"
	"github.com/aellingwood/tsumo/internal/site"
	"github.com/aellingwood/tsumo/internal/tpl"
	"github.com/aellingwood/tsumo/internal/value"
)

// BuildOptions controls the behaviour of the build pipeline.
type BuildOptions struct {
	IncludeDrafts  bool
	IncludeFuture  bool
	IncludeExpired bool
	OutputDir      string
	Verbose        bool
	Minify         bool
	BaseURL        string
	ProjectRoot    string
}

// BuildResult contains statistics about the completed build.
type BuildResult struct {
	PagesRendered int
	FilesWritten  int
	FilesCopied   int
	StaticFiles   int
	Duration      time.Duration
	OutputSize    int64
	Pages         []string // URL paths of all rendered pages
}

// Builder coordinates the full static site generation pipeline.
type Builder struct {
	config  *config.SiteConfig
	options BuildOptions
}

// NewBuilder creates a new Builder with the given site configuration and options.
func NewBuilder(cfg *config.SiteConfig, opts BuildOptions) *Builder {
	return &Builder{
		config:  cfg,
		options: opts,
	}
}

// Build executes the full build pipeline and returns a BuildResult summarizing
// what was generated. The pipeline steps are:
//  1. Clean or create the output directory
//  2. Discover content files
//  3. Filter pages (drafts, future, expired)
//  4. Render markdown in parallel
//  5. Build taxonomy maps and menus, wire ancestors/navigation
//  6. Assemble the site value tree
//  7. Load and execute templates
//  8. Write HTML files
//  9. Copy static files and build Tailwind CSS
//  10. Copy page bundle assets
//  11. Generate ancillary files (sitemap, robots, feeds, search index, aliases)
func (b *Builder) Build() (*BuildResult, error) {
	start := time.Now()
	result := &BuildResult{}

	projectRoot := b.options.ProjectRoot
	if projectRoot == "" {
		var err error
		projectRoot, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determining project root: %w", err)
		}
	}

	outputDir := b.options.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join(projectRoot, "public")
	}
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(projectRoot, outputDir)
	}

	contentDir := filepath.Join(projectRoot, "content")

	baseURL := b.options.BaseURL
	if baseURL == "" {
		baseURL = b.config.BaseURL
	}

	if err := CleanDir(outputDir); err != nil {
		return nil, fmt.Errorf("cleaning output directory: %w", err)
	}

	// Step 2: discover content.
	pages, err := site.Discover(contentDir)
	if err != nil {
		return nil, fmt.Errorf("discovering content: %w", err)
	}

	dataDir := filepath.Join(projectRoot, "data")
	dataFiles, err := site.LoadDataFiles(dataDir)
	if err != nil {
		return nil, fmt.Errorf("loading data files: %w", err)
	}

	// Step 3: filter pages.
	if !b.options.IncludeDrafts {
		pages = site.FilterDrafts(pages)
	}
	if !b.options.IncludeFuture {
		pages = site.FilterFuture(pages)
	}
	if !b.options.IncludeExpired {
		pages = site.FilterExpired(pages)
	}

	if !hasHomePage(pages) {
		pages = append(pages, &site.Page{Kind: site.KindHome, RelPermalink: "/"})
	}

	// Step 4: render markdown in parallel.
	mdRenderer := markdown.New()
	numWorkers := runtime.NumCPU()

	err = renderParallel(pages, numWorkers, func(p *site.Page) error {
		contentHTML, tocHTML, err := mdRenderer.RenderWithTOC([]byte(p.RawContent))
		if err != nil {
			return fmt.Errorf("rendering markdown for %s: %w", p.SourcePath, err)
		}
		p.Content = contentHTML
		p.TableOfContents = tocHTML
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}

	// Step 4b: word counts, reading time, summaries, plain text.
	for _, p := range pages {
		p.Plain = site.StripHTMLTags(p.Content)
		p.WordCount = site.CalculateWordCount(p.Plain)
		p.ReadingTime = site.CalculateReadingTime(p.Plain)
		if p.Summary == "" {
			p.Summary = site.GenerateSummary(p.RawContent, p.Content, 300)
		}
		if p.Description == "" {
			p.Description = site.GenerateMetaDescription(p.Summary, 160)
		}
	}

	// Step 5: taxonomies.
	var taxonomies map[string]*site.Taxonomy
	if b.config.Taxonomies != nil {
		taxonomies = site.BuildTaxonomies(pages, b.config.Taxonomies)
		pages = append(pages, site.GenerateTaxonomyPages(taxonomies)...)
	}

	site.SortByDate(pages, false)
	site.WireAncestorsAndPages(pages)

	menus := site.BuildMenus(pages, b.config.Menus)

	var topPages []*site.Page
	homePage := findHome(pages)
	for _, p := range pages {
		if p.Kind == site.KindSection {
			topPages = append(topPages, p)
		}
	}

	s := site.New(b.config.Title, strings.TrimRight(baseURL, "/")+"/", b.config.Language, pages, homePage, topPages, taxonomies, menus, dataFiles, b.config.Params)

	// Resource manager: site/theme asset roots, with real SCSS + image
	// scaling collaborators.
	themeName := b.config.Theme
	if themeName == "" {
		themeName = "default"
	}
	themePath := filepath.Join(projectRoot, "themes", themeName)
	userLayoutPath := filepath.Join(projectRoot, "layouts")
	siteAssetsDir := filepath.Join(projectRoot, "assets")
	themeAssetsDir := filepath.Join(themePath, "assets")

	resMgr := resource.NewManager(siteAssetsDir, themeAssetsDir, outputDir, scss.NewCompiler(), imgscale.NewScaler())
	resEngine := resource.NewEngine(resMgr)

	// Wire per-bundle page resources so templates can reach bundle-local
	// files (images, scripts) via `.Resources.Get`/`.Match`.
	for _, p := range pages {
		if !p.IsBundle {
			continue
		}
		p.Resources = bundleResources(resMgr, p)
	}

	// Step 7: template engine.
	engine := tpl.NewEngine()
	themeLayoutDir := filepath.Join(themePath, "layouts")
	if err := engine.LoadDir(themeLayoutDir, userLayoutPath); err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	i18nDir := b.config.I18nDir
	if i18nDir == "" {
		i18nDir = filepath.Join(projectRoot, "i18n")
	} else if !filepath.IsAbs(i18nDir) {
		i18nDir = filepath.Join(projectRoot, i18nDir)
	}
	translator := i18n.NewTranslator(i18nDir, b.config.Language)
	lang := b.config.Language

	env := &tpl.Env{
		Manager:      resEngine,
		Translate:    func(key string) string { return translator.Translate(lang, key) },
		IsProduction: !b.options.Verbose,
		BaseURL:      strings.TrimRight(baseURL, "/"),
		WorkingDir:   projectRoot,
		Version:      "1.0.0",
	}

	siteValue := site.WrapSite(s)

	type renderResult struct {
		url  string
		data []byte
	}
	var mu sync.Mutex
	var results []renderResult

	err = renderParallel(pages, numWorkers, func(p *site.Page) error {
		templateName := engine.ResolveTemplate(p.Kind.String(), p.Section, p.Layout)
		if templateName == "" {
			templateName = engine.ResolveTemplate("page", "", "")
		}
		if templateName == "" {
			mu.Lock()
			results = append(results, renderResult{url: p.RelPermalink, data: []byte(p.Content)})
			mu.Unlock()
			return nil
		}

		dot := site.WrapPage(p)
		rendered, err := engine.Execute(templateName, dot, siteValue, env)
		if err != nil {
			return fmt.Errorf("executing template %s for %s: %w", templateName, p.SourcePath, err)
		}

		mu.Lock()
		results = append(results, renderResult{url: p.RelPermalink, data: []byte(rendered)})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rendering pages: %w", err)
	}

	for _, r := range results {
		if err := WriteFile(outputDir, r.url, r.data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", r.url, err)
		}
		result.FilesWritten++
		result.Pages = append(result.Pages, r.url)
	}
	result.PagesRendered = len(results)

	// 404 page.
	if notFoundTemplate := engine.ResolveTemplate("404", "", ""); notFoundTemplate != "" {
		notFound := &site.Page{Title: "Page Not Found", Site: s}
		rendered404, err := engine.Execute(notFoundTemplate, site.WrapPage(notFound), siteValue, env)
		if err != nil {
			return nil, fmt.Errorf("rendering 404 page: %w", err)
		}
		if err := WriteFile(outputDir, "/404.html", []byte(rendered404)); err != nil {
			return nil, fmt.Errorf("writing 404.html: %w", err)
		}
		result.FilesWritten++
	}

	// Step 9: static files.
	themeStaticDir := filepath.Join(themePath, "static")
	siteStaticDir := filepath.Join(projectRoot, "static")

	if info, err := os.Stat(themeStaticDir); err == nil && info.IsDir() {
		copied, err := copyDirCounting(themeStaticDir, outputDir)
		if err != nil {
			return nil, fmt.Errorf("copying theme static files: %w", err)
		}
		result.FilesCopied += copied
	}
	if info, err := os.Stat(siteStaticDir); err == nil && info.IsDir() {
		copied, err := copyDirCounting(siteStaticDir, outputDir)
		if err != nil {
			return nil, fmt.Errorf("copying site static files: %w", err)
		}
		result.FilesCopied += copied
	}

	// Tailwind CSS.
	cssInput := filepath.Join(themePath, "static", "css", "globals.css")
	if _, err := os.Stat(cssInput); err == nil {
		cssOutput := filepath.Join(outputDir, "css", "style.css")
		contentPaths := []string{
			filepath.Join(themePath, "layouts", "**", "*.html"),
			filepath.Join(projectRoot, "layouts", "**", "*.html"),
			filepath.Join(contentDir, "**", "*.md"),
		}
		tb := &TailwindBuilder{}
		if _, binErr := tb.EnsureBinary(TailwindVersion); binErr != nil {
			fmt.Fprintf(os.Stderr, "warning: could not download Tailwind CSS binary: %v (skipping CSS compilation)\n", binErr)
		} else {
			if err := os.MkdirAll(filepath.Dir(cssOutput), 0o755); err != nil {
				return nil, fmt.Errorf("creating CSS output directory: %w", err)
			}
			if err := tb.Build(cssInput, cssOutput, contentPaths); err != nil {
				return nil, fmt.Errorf("building Tailwind CSS: %w", err)
			}
			result.StaticFiles++
		}
	}

	// Step 10: copy page bundle assets not wired into the resource pipeline
	// (i.e. every bundle file; resource.Manager only publishes files
	// actually referenced by a template via resources.Get/Match).
	for _, p := range pages {
		if !p.IsBundle || len(p.BundleFiles) == 0 {
			continue
		}
		pageOutputDir := filepath.Join(outputDir, strings.TrimPrefix(p.RelPermalink, "/"))
		for _, assetName := range p.BundleFiles {
			src := filepath.Join(p.BundleDir, assetName)
			dst := filepath.Join(pageOutputDir, assetName)
			if err := CopyFile(src, dst); err != nil {
				return nil, fmt.Errorf("copying bundle asset %s: %w", src, err)
			}
			result.FilesCopied++
		}
	}

	// Step 11: ancillary files.
	var nonDraftPages []*site.Page
	for _, p := range pages {
		if !p.Draft {
			nonDraftPages = append(nonDraftPages, p)
		}
	}

	sitemapEntries := make([]seo.SitemapEntry, 0, len(nonDraftPages))
	for _, p := range nonDraftPages {
		sitemapEntries = append(sitemapEntries, seo.SitemapEntry{
			URL:     p.Permalink(strings.TrimRight(baseURL, "/")),
			Lastmod: p.Lastmod,
		})
	}
	sitemapData, err := seo.GenerateSitemap(sitemapEntries)
	if err != nil {
		return nil, fmt.Errorf("generating sitemap: %w", err)
	}
	if err := writeDirectFile(outputDir, "sitemap.xml", sitemapData); err != nil {
		return nil, fmt.Errorf("writing sitemap.xml: %w", err)
	}
	result.StaticFiles++

	sitemapURL := strings.TrimRight(baseURL, "/") + "/sitemap.xml"
	robotsData := seo.GenerateRobotsTxt(sitemapURL)
	if err := writeDirectFile(outputDir, "robots.txt", robotsData); err != nil {
		return nil, fmt.Errorf("writing robots.txt: %w", err)
	}
	result.StaticFiles++

	feedSections := b.config.Feeds.Sections
	if len(feedSections) == 0 {
		feedSections = []string{"blog"}
	}
	var feedPages []*site.Page
	for _, p := range nonDraftPages {
		if slices.Contains(feedSections, p.Section) {
			feedPages = append(feedPages, p)
		}
	}
	sort.SliceStable(feedPages, func(i, j int) bool {
		return feedPages[i].Date.After(feedPages[j].Date)
	})

	feedItems := make([]feed.FeedItem, 0, len(feedPages))
	for _, p := range feedPages {
		feedItems = append(feedItems, feed.FeedItem{
			Title:       p.Title,
			Link:        p.Permalink(strings.TrimRight(baseURL, "/")),
			Description: p.Summary,
			Content:     p.Content,
			Author:      p.Author,
			PubDate:     p.Date,
			GUID:        p.Permalink(strings.TrimRight(baseURL, "/")),
			Categories:  append(append([]string{}, p.Tags...), p.Categories...),
		})
	}

	feedOpts := feed.FeedOptions{
		Title:       b.config.Title,
		Description: b.config.Description,
		Link:        strings.TrimRight(baseURL, "/"),
		Language:    b.config.Language,
		Author:      b.config.Author.Name,
		MaxItems:    b.config.Feeds.Limit,
		FullContent: b.config.Feeds.FullContent,
	}

	if b.config.Feeds.RSS {
		feedOpts.FeedLink = strings.TrimRight(baseURL, "/") + "/index.xml"
		rssData, err := feed.GenerateRSS(feedItems, feedOpts)
		if err != nil {
			return nil, fmt.Errorf("generating RSS feed: %w", err)
		}
		if err := writeDirectFile(outputDir, "index.xml", rssData); err != nil {
			return nil, fmt.Errorf("writing index.xml: %w", err)
		}
		result.StaticFiles++
	}

	if b.config.Feeds.Atom {
		feedOpts.FeedLink = strings.TrimRight(baseURL, "/") + "/atom.xml"
		atomData, err := feed.GenerateAtom(feedItems, feedOpts)
		if err != nil {
			return nil, fmt.Errorf("generating Atom feed: %w", err)
		}
		if err := writeDirectFile(outputDir, "atom.xml", atomData); err != nil {
			return nil, fmt.Errorf("writing atom.xml: %w", err)
		}
		result.StaticFiles++
	}

	if b.config.Search.Enabled {
		maxContentLen := b.config.Search.ContentLength
		if maxContentLen <= 0 {
			maxContentLen = 5000
		}
		indexEntries := make([]search.IndexEntry, 0, len(nonDraftPages))
		for _, p := range nonDraftPages {
			indexEntries = append(indexEntries, search.IndexEntry{
				Title:      p.Title,
				URL:        p.RelPermalink,
				Tags:       p.Tags,
				Categories: p.Categories,
				Summary:    site.StripHTMLTags(p.Summary),
				Content:    search.StripHTML(p.Content),
			})
		}
		searchData, err := search.GenerateIndex(indexEntries, maxContentLen)
		if err != nil {
			return nil, fmt.Errorf("generating search index: %w", err)
		}
		if err := writeDirectFile(outputDir, "search-index.json", searchData); err != nil {
			return nil, fmt.Errorf("writing search-index.json: %w", err)
		}
		result.StaticFiles++
	}

	var aliases []AliasPage
	for _, p := range pages {
		for _, alias := range p.Aliases {
			aliases = append(aliases, AliasPage{
				AliasURL:     alias,
				CanonicalURL: p.RelPermalink,
			})
		}
	}
	if len(aliases) > 0 {
		aliasFiles := GenerateAliasPages(aliases)
		for filePath, htmlData := range aliasFiles {
			fullPath := filepath.Join(outputDir, filePath)
			dir := filepath.Dir(fullPath)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating alias directory %s: %w", dir, err)
			}
			if err := os.WriteFile(fullPath, htmlData, 0o644); err != nil {
				return nil, fmt.Errorf("writing alias file %s: %w", fullPath, err)
			}
			result.StaticFiles++
		}
	}

	size, err := DirSize(outputDir)
	if err != nil {
		return nil, fmt.Errorf("calculating output size: %w", err)
	}
	result.OutputSize = size
	result.Duration = time.Since(start)

	return result, nil
}

// bundleResources reads a page bundle's non-markdown files into *Resource
// values rooted at the page's own output directory, so templates can reach
// them via `.Resources.Get`/`.Match` without routing through the site/theme
// asset roots (bundle files live beside content, not under assets/).
func bundleResources(mgr *resource.Manager, p *site.Page) value.Value {
	if len(p.BundleFiles) == 0 {
		return resource.WrapPageResources(nil, mgr)
	}
	base := strings.TrimPrefix(p.RelPermalink, "/")
	rs := make([]*resource.Resource, 0, len(p.BundleFiles))
	for _, name := range p.BundleFiles {
		data, err := os.ReadFile(filepath.Join(p.BundleDir, name))
		if err != nil {
			continue
		}
		rs = append(rs, &resource.Resource{
			SourcePath:    name,
			Publishable:   true,
			OutputRelPath: base + name,
			Bytes:         data,
			MediaType:     bundleMediaType(name),
		})
	}
	return resource.WrapPageResources(rs, mgr)
}

var bundleMediaTypes = map[string]string{
	".png": "image/png", ".jpg": "image/jpeg", ".jpeg": "image/jpeg",
	".gif": "image/gif", ".webp": "image/webp", ".svg": "image/svg+xml",
	".css": "text/css", ".js": "application/javascript", ".json": "application/json",
}

func bundleMediaType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if mt, ok := bundleMediaTypes[ext]; ok {
		return mt
	}
	return "application/octet-stream"
}

// findHome returns the first home-kind page, or nil if none was discovered.
func findHome(pages []*site.Page) *site.Page {
	for _, p := range pages {
		if p.Kind == site.KindHome {
			return p
		}
	}
	return nil
}

// hasHomePage reports whether any page in the slice has KindHome.
func hasHomePage(pages []*site.Page) bool {
	for _, p := range pages {
		if p.Kind == site.KindHome {
			return true
		}
	}
	return false
}

// writeDirectFile writes data to a named file directly in the output directory.
func writeDirectFile(outputDir, filename string, data []byte) error {
	filePath := filepath.Join(outputDir, filename)
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return os.WriteFile(filePath, data, 0o644)
}

// copyDirCounting copies a directory and returns the number of files copied.
func copyDirCounting(src, dst string) (int, error) {
	count := 0
	err := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		dstPath := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(dstPath, 0o755)
		}

		if err := CopyFile(path, dstPath); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}

// TailwindVersion pins the standalone Tailwind CSS CLI release fetched by
// TailwindBuilder.EnsureBinary.
const TailwindVersion = "3.4.17"
