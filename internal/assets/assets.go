// Package assets packages a game directory into a native project and
// compiles its scripts in place.
package assets

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"luna2d-deploy/internal/config"
	"luna2d-deploy/internal/luac"
	"luna2d-deploy/internal/utils"
)

const (
	// GameDirName is the directory under assets/ that receives the game tree.
	GameDirName = "game"
	// ScriptsDirName is the directory under the game tree holding scripts.
	ScriptsDirName = "scripts"
)

// ScriptCompiler replaces a script with its compiled form.
type ScriptCompiler interface {
	CompileInPlace(ctx context.Context, file string) error
}

// Options configures a Package run.
type Options struct {
	GamePath    string
	ProjectPath string
	Compiler    ScriptCompiler
	CheckSyntax bool

	// OnStep receives the phase messages ("Updating assets..", ...).
	OnStep func(message string)
	// OnProgress is called before each script is compiled.
	OnProgress func(current, total int, script string)
}

// Result holds the outcome of a Package run.
type Result struct {
	Dest    string
	Files   int      // files copied from the game directory
	Scripts []string // compiled scripts, slash-separated and relative to the game tree
}

// GameDir returns <projectPath>/.luna2d/assets/game.
func GameDir(projectPath string) string {
	return filepath.Join(config.AssetsDir(projectPath), GameDirName)
}

// Package clears .luna2d/assets, copies the game into assets/game and
// compiles every file under assets/game/scripts.
func Package(ctx context.Context, opts Options) (*Result, error) {
	if opts.Compiler == nil {
		return nil, fmt.Errorf("no script compiler configured")
	}

	dest := config.AssetsDir(opts.ProjectPath)
	gameDir := GameDir(opts.ProjectPath)

	if err := utils.RemoveTree(dest); err != nil {
		return nil, fmt.Errorf("failed to remove old assets: %w", err)
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return nil, fmt.Errorf("failed to create assets directory: %w", err)
	}

	step(opts, "Updating assets..")
	if err := utils.CopyTree(opts.GamePath, gameDir); err != nil {
		return nil, fmt.Errorf("failed to copy game: %w", err)
	}

	copied, err := utils.ListFiles(gameDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list game files: %w", err)
	}
	result := &Result{Dest: dest, Files: len(copied)}

	step(opts, "Compiling scripts..")
	scripts, err := FindScripts(filepath.Join(gameDir, ScriptsDirName))
	if err != nil {
		return nil, err
	}

	for i, script := range scripts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel, _ := filepath.Rel(gameDir, script)
		rel = filepath.ToSlash(rel)
		if opts.OnProgress != nil {
			opts.OnProgress(i+1, len(scripts), rel)
		}

		filename, err := utils.RealPath(script)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve script %s: %w", script, err)
		}
		if opts.CheckSyntax {
			if err := luac.CheckSyntax(filename); err != nil {
				return nil, err
			}
		}
		if err := opts.Compiler.CompileInPlace(ctx, filename); err != nil {
			return nil, err
		}
		result.Scripts = append(result.Scripts, rel)
	}

	return result, nil
}

// FindScripts returns every regular file below dir. A missing dir yields no
// scripts. The list is collected before any compiler output appears, so each
// file is visited exactly once.
func FindScripts(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var scripts []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			scripts = append(scripts, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk scripts: %w", err)
	}
	return scripts, nil
}

func step(opts Options, message string) {
	if opts.OnStep != nil {
		opts.OnStep(message)
	}
}
