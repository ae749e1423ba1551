// Package imgscale wraps disintegration/imaging and gen2brain/webp behind
// the single-operation collaborator interface the resource manager
// expects: a library call taking an input path, an output path, and target
// dimensions.
package imgscale

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/webp"
)

// Scaler implements resource.ImageScaler.
type Scaler struct {
	Quality int
}

// NewScaler returns a Scaler with a sensible default JPEG/WebP quality.
func NewScaler() *Scaler {
	return &Scaler{Quality: 85}
}

// Scale opens inPath, resizes it to width x height (either may be 0 to
// derive the other proportionally, matching imaging.Resize's own
// convention), and writes the result to outPath in the format implied by
// outPath's extension.
func (s *Scaler) Scale(inPath, outPath string, width, height int) error {
	src, err := imaging.Open(inPath, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("imgscale: opening %s: %w", inPath, err)
	}
	resized := imaging.Resize(src, width, height, imaging.Lanczos)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("imgscale: preparing output dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("imgscale: creating %s: %w", outPath, err)
	}
	defer f.Close()

	if err := encode(f, resized, outPath, s.Quality); err != nil {
		return fmt.Errorf("imgscale: encoding %s: %w", outPath, err)
	}
	return nil
}

func encode(f *os.File, img image.Image, outPath string, quality int) error {
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".webp":
		return webp.Encode(f, img, webp.Options{Quality: quality})
	case ".png":
		return png.Encode(f, img)
	case ".gif":
		return gif.Encode(f, img, nil)
	default:
		return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	}
}
