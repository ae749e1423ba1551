package site

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aellingwood/tsumo/internal/frontmatter"
)

var datePrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)
var slugifyRe = regexp.MustCompile(`[^a-z0-9\-.]`)
var multiHyphenRe = regexp.MustCompile(`-{2,}`)

// Discover walks contentDir and builds a slice of Page objects, splitting
// front matter via package frontmatter. It does not render markdown or
// filter drafts/future/expired pages — that happens in the build driver
// after markdown rendering produces Content/Summary.
func Discover(contentDir string) ([]*Page, error) {
	var pages []*Page

	bundleDirs := make(map[string]bool)
	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Base(path) == "index.md" {
			bundleDirs[filepath.Dir(path)] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning for page bundles: %w", err)
	}

	err = filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}

		dir := filepath.Dir(path)
		if bundleDirs[dir] && filepath.Base(path) != "index.md" {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		parsed := frontmatter.Parse(string(raw))
		page := fromFrontMatter(parsed.FrontMatter)
		page.RawContent = parsed.Body

		relPath, err := filepath.Rel(contentDir, path)
		if err != nil {
			return fmt.Errorf("computing relative path for %s: %w", path, err)
		}
		page.SourcePath = filepath.ToSlash(relPath)
		page.SourceDir = filepath.ToSlash(filepath.Dir(relPath))
		if page.SourceDir == "." {
			page.SourceDir = ""
		}
		page.File = &File{Path: page.SourcePath, Dir: page.SourceDir, Name: filepath.Base(path)}

		page.Section = firstPathComponent(page.SourcePath)

		filename := filepath.Base(path)
		isBundle := bundleDirs[dir]

		switch {
		case filename == "_index.md" && page.SourceDir == "":
			page.Kind = KindHome
		case filename == "_index.md":
			page.Kind = KindSection
		default:
			page.Kind = KindPage
		}

		if isBundle {
			page.IsBundle = true
			page.BundleDir = filepath.ToSlash(dir)
			page.BundleFiles = collectBundleFiles(dir)
		}

		if page.Slug == "" && page.Kind == KindPage {
			name := strings.TrimSuffix(filename, ".md")
			if isBundle {
				name = filepath.Base(dir)
			}
			name = datePrefixRe.ReplaceAllString(name, "")
			page.Slug = slugify(name)
		}

		page.RelPermalink = buildRelPermalink(page)

		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking content directory: %w", err)
	}

	return pages, nil
}

// fromFrontMatter lifts a parsed frontmatter.FrontMatter into a fresh Page,
// expanding ParamValue into plain Go params (string/bool/int) for Page.Params.
func fromFrontMatter(fm frontmatter.FrontMatter) *Page {
	p := &Page{
		Title:       fm.Title,
		Date:        fm.Date,
		Draft:       fm.Draft,
		Description: fm.Description,
		Slug:        fm.Slug,
		Layout:      fm.Layout,
		Type:        fm.Type,
		Tags:        fm.Tags,
		Categories:  fm.Categories,
		Params:      make(map[string]any, len(fm.Params)),
		Menus:       fm.Menus,
	}
	for k, v := range fm.Params {
		switch v.Kind {
		case frontmatter.ParamBool:
			p.Params[k] = v.Bool
		case frontmatter.ParamNumber:
			p.Params[k] = v.Num
		default:
			p.Params[k] = v.Str
		}
	}
	return p
}

func slugify(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	s = slugifyRe.ReplaceAllString(s, "")
	s = multiHyphenRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return s
}

func firstPathComponent(relPath string) string {
	relPath = filepath.ToSlash(relPath)
	parts := strings.SplitN(relPath, "/", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[0]
}

func buildRelPermalink(p *Page) string {
	switch p.Kind {
	case KindHome:
		return "/"
	case KindSection:
		return "/" + p.Section + "/"
	case KindPage:
		if p.Section == "" {
			return "/" + p.Slug + "/"
		}
		return "/" + p.Section + "/" + p.Slug + "/"
	default:
		return "/"
	}
}

func collectBundleFiles(dir string) []string {
	var files []string
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == ".md" {
			continue
		}
		files = append(files, entry.Name())
	}
	return files
}
