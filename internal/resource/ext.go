package resource

import "strings"

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".svg": true,
}

// textExts are the extensions for which Resource.Text is populated.
var textExts = map[string]bool{
	".js": true, ".json": true, ".css": true, ".scss": true, ".sass": true,
	".svg": true, ".html": true, ".txt": true,
}

var mediaTypes = map[string]string{
	".png": "image/png", ".jpg": "image/jpeg", ".jpeg": "image/jpeg",
	".gif": "image/gif", ".webp": "image/webp", ".svg": "image/svg+xml",
	".css": "text/css", ".scss": "text/x-scss", ".sass": "text/x-sass",
	".js": "application/javascript", ".json": "application/json",
	".html": "text/html", ".txt": "text/plain",
}

func extOf(rel string) string {
	i := strings.LastIndexByte(rel, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(rel[i:])
}

func isTextExt(rel string) bool {
	return textExts[extOf(rel)]
}

func mediaTypeFor(rel string) string {
	if mt, ok := mediaTypes[extOf(rel)]; ok {
		return mt
	}
	return "application/octet-stream"
}

// byTypeKind classifies an extension into one of the three kinds byType
// accepts: image, text, application.
func byTypeKind(rel string) string {
	ext := extOf(rel)
	if imageExts[ext] {
		return "image"
	}
	switch ext {
	case ".css", ".scss", ".sass", ".html", ".txt":
		return "text"
	default:
		return "application"
	}
}
