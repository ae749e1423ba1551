package build

import (
	"fmt"
	"strings"
)

// AliasPage pairs an old URL (from a page's front-matter `aliases` list)
// with the canonical URL it should redirect to.
type AliasPage struct {
	AliasURL     string // e.g. "/old-post/"
	CanonicalURL string // e.g. "/blog/new-post/"
}

// redirectTemplate is the HTML shell written for each alias: a meta-refresh
// plus a canonical link and a fallback anchor, so the redirect still works
// with JavaScript disabled and search engines see the canonical target.
const redirectTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta http-equiv="refresh" content="0; url=%s">
  <link rel="canonical" href="%s">
  <title>Redirect</title>
</head>
<body>
  <p>This page has moved to <a href="%s">%s</a>.</p>
</body>
</html>
`

// GenerateAliasPages renders one redirect page per alias and returns a map
// from output file path to HTML content, keyed by the alias's own URL
// (e.g. "/old-post/" -> "old-post/index.html").
func GenerateAliasPages(aliases []AliasPage) map[string][]byte {
	pages := make(map[string][]byte, len(aliases))

	for _, a := range aliases {
		dest := a.CanonicalURL
		body := fmt.Sprintf(redirectTemplate, dest, dest, dest, dest)
		pages[redirectOutputPath(a.AliasURL)] = []byte(body)
	}

	return pages
}

// redirectOutputPath maps an alias URL to the file tsumo writes it to,
// matching the same clean-URL convention the build driver uses for pages.
//
// Examples:
//
//	"/old-post/"  -> "old-post/index.html"
//	"/old-post"   -> "old-post/index.html"
//	"/"           -> "index.html"
func redirectOutputPath(aliasURL string) string {
	trimmed := strings.Trim(aliasURL, "/")
	if trimmed == "" {
		return "index.html"
	}
	return trimmed + "/index.html"
}
