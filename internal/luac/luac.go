// Package luac runs the engine's Lua compiler over game scripts.
//
// Each script is compiled to <file>c and the output then replaces the source
// under the original name, so the packaged game keeps its file layout while
// shipping bytecode instead of source.
package luac

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"luna2d-deploy/internal/config"
)

// OutputSuffix is appended to a script path to name the compiler output.
const OutputSuffix = "c"

// Compiler invokes an external luac binary.
type Compiler struct {
	Path string
	Mode config.CompileMode

	// Warn, when set, receives compiler failures ignored in lenient mode.
	Warn func(file string, err error)
}

// New returns a compiler for the binary at path.
func New(path string, mode config.CompileMode) *Compiler {
	return &Compiler{Path: path, Mode: mode}
}

// Args returns the luac arguments used for file: strip debug info and write
// the bytecode next to the source.
func Args(file string) []string {
	return []string{"-s", "-o", file + OutputSuffix, file}
}

// CompileInPlace compiles file and replaces it with the compiled output.
//
// In strict mode a failing compiler leaves the source untouched, removes any
// partial output and returns a *CompileError. In lenient mode the exit status
// is ignored; the source is still removed and a missing output surfaces as
// the rename error.
func (c *Compiler) CompileInPlace(ctx context.Context, file string) error {
	out := file + OutputSuffix

	cmd := exec.CommandContext(ctx, c.Path, Args(file)...)
	output, runErr := cmd.CombinedOutput()
	if runErr != nil {
		if c.Mode != config.CompileLenient {
			os.Remove(out)
			return &CompileError{
				File:   file,
				Output: strings.TrimSpace(string(output)),
				Err:    runErr,
			}
		}
		if c.Warn != nil {
			c.Warn(file, runErr)
		}
	}

	if err := os.Remove(file); err != nil {
		return fmt.Errorf("failed to remove script source: %w", err)
	}
	if err := os.Rename(out, file); err != nil {
		return fmt.Errorf("failed to replace script with compiled output: %w", err)
	}
	return nil
}
