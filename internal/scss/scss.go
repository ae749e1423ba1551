// Package scss invokes an external Sass compiler process. It is
// deliberately a thin os/exec wrapper rather than a vendored Sass
// implementation: SCSS compilation stays an external tool, not a library
// dependency.
package scss

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
)

// Compiler shells out to a sass executable, resolved from TSUMO_SASS
// (falling back to the literal "sass" when unset).
type Compiler struct {
	executable string
}

// NewCompiler resolves the sass executable from the environment.
func NewCompiler() *Compiler {
	exe := os.Getenv("TSUMO_SASS")
	if exe == "" {
		exe = "sass"
	}
	return &Compiler{executable: exe}
}

// Compile invokes `sass --no-source-map --style expanded --load-path <dir>...
// <input> <output>`. A spawn failure or non-zero exit raises an error
// carrying the captured stderr.
func (c *Compiler) Compile(inputPath, outputPath string, loadPaths []string) error {
	args := []string{"--no-source-map", "--style", "expanded"}
	for _, lp := range loadPaths {
		args = append(args, "--load-path", lp)
	}
	args = append(args, inputPath, outputPath)

	cmd := exec.Command(c.executable, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("sass compile failed: %w: %s", err, stderr.String())
	}
	if _, err := os.Stat(outputPath); err != nil {
		return fmt.Errorf("sass produced no output file: %w", err)
	}
	return nil
}
