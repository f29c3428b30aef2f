// Package deploy runs one deploy of a luna2d game into a native project:
// libraries first, then platform project files, then packaged assets.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"luna2d-deploy/internal/assets"
	"luna2d-deploy/internal/config"
	"luna2d-deploy/internal/libsync"
	"luna2d-deploy/internal/luac"
	"luna2d-deploy/internal/oplog"
	"luna2d-deploy/internal/platform"
	"luna2d-deploy/internal/ui"
)

// Options holds the inputs of a deploy run.
type Options struct {
	GamePath    string
	ProjectPath string
	Platform    string
	SkipAssets  bool
	EngineRoot  string
	Settings    config.Settings

	// Platforms resolves Platform to an updater. A nil registry or an
	// unknown platform skips the project update.
	Platforms *platform.Registry
	// Compiler overrides the luac binary derived from Settings.
	Compiler assets.ScriptCompiler
}

// Result describes what a deploy run did. Platform is nil when no updater
// ran and Assets is nil when packaging was skipped.
type Result struct {
	ProjectName string
	Libs        *libsync.Result
	Platform    *platform.Result
	Assets      *assets.Result
	Duration    time.Duration
}

// ErrNoEngineRoot is returned when Options.EngineRoot is empty.
var ErrNoEngineRoot = errors.New("engine root is not set")

// Run executes the deploy steps in order and stops at the first error.
// Both config files are loaded before anything on disk changes.
func Run(ctx context.Context, opts Options) (res *Result, err error) {
	start := time.Now()
	res = &Result{}

	defer func() {
		res.Duration = time.Since(start)
		recordHistory(opts, res, err)
	}()

	if opts.EngineRoot == "" {
		return res, ErrNoEngineRoot
	}

	gameCfg, err := config.LoadGameConfig(opts.GamePath)
	if err != nil {
		return res, err
	}
	buildCfg, err := config.LoadBuildConfig(opts.ProjectPath)
	if err != nil {
		return res, err
	}
	res.ProjectName = buildCfg.ProjectName

	ui.Plain("Updating libraries...")
	spinner := ui.StartSpinner("Copying " + libsync.SourceDir(opts.EngineRoot))
	res.Libs, err = libsync.Sync(opts.ProjectPath, opts.EngineRoot)
	if err != nil {
		spinner.Fail("Library sync failed")
		return res, err
	}
	spinner.Success(fmt.Sprintf("%d library files", res.Libs.Files))

	ui.Plain("Updating project..")
	if updater, ok := opts.Platforms.Lookup(opts.Platform); ok {
		res.Platform, err = updater.Update(ctx, platform.Request{
			ProjectPath: opts.ProjectPath,
			GamePath:    opts.GamePath,
			GameConfig:  gameCfg,
			ProjectName: buildCfg.ProjectName,
		})
		if err != nil {
			return res, fmt.Errorf("failed to update %s project: %w", opts.Platform, err)
		}
		for _, change := range res.Platform.Changed {
			ui.DiffBlock(change.Path, change.Diff)
		}
	}

	if !opts.SkipAssets {
		res.Assets, err = packageAssets(ctx, opts)
		if err != nil {
			return res, err
		}
	}

	ui.Plain("Done")
	return res, nil
}

func packageAssets(ctx context.Context, opts Options) (*assets.Result, error) {
	compiler := opts.Compiler
	if compiler == nil {
		c := luac.New(opts.Settings.CompilerPath(opts.EngineRoot), opts.Settings.CompileMode)
		c.Warn = func(file string, err error) {
			ui.Warning("luac failed on %s: %v (ignored in lenient mode)", file, err)
		}
		compiler = c
	}

	var bar *ui.ProgressBar
	defer func() {
		if bar != nil {
			bar.Stop()
		}
	}()

	return assets.Package(ctx, assets.Options{
		GamePath:    opts.GamePath,
		ProjectPath: opts.ProjectPath,
		Compiler:    compiler,
		CheckSyntax: opts.Settings.CheckSyntax,
		OnStep:      ui.Plain,
		OnProgress: func(current, total int, script string) {
			if bar == nil {
				bar = ui.StartProgress("Compiling", total)
			}
			bar.Increment(script)
		},
	})
}

// recordHistory appends the run to the project's deploy history. Projects
// without a .luna2d directory get no history; a failing write never masks
// the deploy result.
func recordHistory(opts Options, res *Result, runErr error) {
	if info, err := os.Stat(config.ProjectDir(opts.ProjectPath)); err != nil || !info.IsDir() {
		return
	}

	e := oplog.NewEntry("deploy", oplog.StatusFromErr(runErr), res.Duration)
	e.Args = map[string]any{
		"platform":    opts.Platform,
		"skip_assets": opts.SkipAssets,
		"game_path":   opts.GamePath,
	}
	if res.ProjectName != "" {
		e.Args["project"] = res.ProjectName
	}
	if res.Libs != nil {
		e.Args["libs_files"] = res.Libs.Files
		e.Args["libs_checksum"] = res.Libs.Checksum
	}
	if res.Platform != nil {
		e.Args["project_files_changed"] = len(res.Platform.Changed)
	}
	if res.Assets != nil {
		e.Args["scripts"] = len(res.Assets.Scripts)
	}
	if runErr != nil {
		e.Message = runErr.Error()
	}
	oplog.WriteWithLimit(opts.ProjectPath, oplog.OpsFile, e, opts.Settings.LogMaxEntries) //nolint:errcheck
}
