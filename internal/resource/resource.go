// Package resource implements the content-addressed asset pipeline:
// get/match/concat/minify/fingerprint/resize/SCSS transforms over layered
// site+theme asset roots, with inline image dimension decoding. SCSS
// compilation is delegated to an external-process collaborator (package
// scss) and image resizing to a library-backed collaborator (package
// imgscale).
package resource

import "fmt"

// Resource is an immutable asset value. Transforms never mutate a
// Resource in place; they produce a new one with a fresh cache key,
// memoized under that key.
type Resource struct {
	ID            string
	SourcePath    string
	Publishable   bool
	OutputRelPath string
	Bytes         []byte
	Text          string
	HasText       bool
	Integrity     string
	MediaType     string
	Width         int
	Height        int
}

// BuildError is the fatal error raised by resource-build failures: Sass
// process spawn failure, non-zero exit, missing output file, image scaler
// failure, or css.Sass called on non-text input. It aborts the current
// page render rather than degrading to Nil.
type BuildError struct {
	Resource string
	Message  string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("resource %q: %s", e.Resource, e.Message)
}

// SassCompiler is the external-process collaborator for SCSS compilation.
type SassCompiler interface {
	Compile(inputPath, outputPath string, loadPaths []string) error
}

// ImageScaler is the library-backed collaborator for image resizing: a
// library call taking input path, output path, and target dimensions.
type ImageScaler interface {
	Scale(inPath, outPath string, width, height int) error
}
