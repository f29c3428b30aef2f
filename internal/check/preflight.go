package check

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"luna2d-deploy/internal/assets"
	"luna2d-deploy/internal/config"
	"luna2d-deploy/internal/libsync"
	"luna2d-deploy/internal/luac"
	"luna2d-deploy/internal/platform/wp"
)

// Input describes the deploy to check.
type Input struct {
	GamePath    string
	ProjectPath string
	Platform    string
	EngineRoot  string
	SkipAssets  bool
	Settings    config.Settings
}

// Preflight verifies everything a deploy with the same input needs.
// With Settings.CheckSyntax every game script is parsed as well.
func Preflight(in Input, onDone func()) []Result {
	checks := []Func{
		func() Result { return checkLibraries(in.EngineRoot) },
		func() Result { return checkGameConfig(in.GamePath) },
		func() Result { return checkBuildConfig(in.ProjectPath) },
		func() Result { return checkPlatform(in) },
		func() Result { return checkCompiler(in) },
	}

	if in.Settings.CheckSyntax && !in.SkipAssets {
		scripts, err := assets.FindScripts(filepath.Join(in.GamePath, assets.ScriptsDirName))
		if err != nil {
			checks = append(checks, func() Result {
				return Result{Name: "scripts", Status: StatusError, Message: err.Error()}
			})
		}
		for _, script := range scripts {
			script := script
			checks = append(checks, func() Result { return checkScript(in.GamePath, script) })
		}
	}

	return Parallel(checks, onDone)
}

func checkLibraries(engineRoot string) Result {
	r := Result{Name: "libraries"}
	src := libsync.SourceDir(engineRoot)
	info, err := os.Stat(src)
	switch {
	case err != nil:
		r.Status, r.Message = StatusError, fmt.Sprintf("library bundle not found: %s", src)
	case !info.IsDir():
		r.Status, r.Message = StatusError, fmt.Sprintf("%s is not a directory", src)
	default:
		r.Status, r.Message = StatusOK, src
	}
	return r
}

func checkGameConfig(gamePath string) Result {
	if _, err := config.LoadGameConfig(gamePath); err != nil {
		return Result{Name: "game config", Status: StatusError, Message: err.Error()}
	}
	return Result{Name: "game config", Status: StatusOK, Message: config.GameConfigPath(gamePath)}
}

func checkBuildConfig(projectPath string) Result {
	cfg, err := config.LoadBuildConfig(projectPath)
	if err != nil {
		return Result{Name: "build config", Status: StatusError, Message: err.Error()}
	}
	return Result{Name: "build config", Status: StatusOK, Message: "projectName " + cfg.ProjectName}
}

func checkPlatform(in Input) Result {
	r := Result{Name: "platform " + in.Platform}
	if in.Platform != wp.Name {
		r.Status, r.Message = StatusWarning, "no project updater, project files are left alone"
		return r
	}

	cfg, err := config.LoadBuildConfig(in.ProjectPath)
	if err != nil {
		r.Status, r.Message = StatusError, "needs a valid build config"
		return r
	}

	var found []string
	for _, path := range wp.ManifestPaths(in.ProjectPath, cfg.ProjectName) {
		if _, err := os.Stat(path); err == nil {
			found = append(found, path)
		}
	}
	if len(found) == 0 {
		r.Status, r.Message = StatusError, fmt.Sprintf("no %s for project %q", wp.ManifestFileName, cfg.ProjectName)
		return r
	}
	r.Status, r.Message = StatusOK, fmt.Sprintf("%d manifest(s)", len(found))
	return r
}

func checkCompiler(in Input) Result {
	r := Result{Name: "compiler"}
	if in.SkipAssets {
		r.Status, r.Message = StatusOK, "not needed, assets are skipped"
		return r
	}

	path := in.Settings.CompilerPath(in.EngineRoot)
	info, err := os.Stat(path)
	switch {
	case err != nil:
		r.Status, r.Message = StatusError, fmt.Sprintf("luac not found: %s", path)
	case info.IsDir():
		r.Status, r.Message = StatusError, fmt.Sprintf("%s is a directory", path)
	case runtime.GOOS != "windows" && info.Mode().Perm()&0111 == 0:
		r.Status, r.Message = StatusError, fmt.Sprintf("%s is not executable", path)
	default:
		r.Status, r.Message = StatusOK, path
	}
	return r
}

func checkScript(gamePath, script string) Result {
	name := script
	if rel, err := filepath.Rel(gamePath, script); err == nil {
		name = filepath.ToSlash(rel)
	}
	if err := luac.CheckSyntax(script); err != nil {
		return Result{Name: name, Status: StatusError, Message: err.Error()}
	}
	return Result{Name: name, Status: StatusOK}
}
