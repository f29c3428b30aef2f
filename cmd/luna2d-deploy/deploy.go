package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"luna2d-deploy/internal/config"
	"luna2d-deploy/internal/deploy"
	"luna2d-deploy/internal/platform"
	"luna2d-deploy/internal/platform/wp"
	"luna2d-deploy/internal/ui"
	"luna2d-deploy/internal/utils"
)

type deployFlags struct {
	gamePath    string
	projectPath string
	platform    string
	skipAssets  string
	enginePath  string
	compileMode string
	checkSyntax bool
}

var flags deployFlags

func registerDeployFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&flags.gamePath, "game_path", "", "Path to the game directory (holds config.luna2d)")
	f.StringVar(&flags.projectPath, "project_path", "", "Path to the native project (holds .luna2d/)")
	f.StringVar(&flags.platform, "platform", "", "Target platform (wp)")
	f.StringVar(&flags.skipAssets, "skip_assets", "false", `Skip asset packaging: "true" or "false"`)
	f.StringVar(&flags.enginePath, "engine_path", "", "luna2d engine root (default: $LUNA2D_PATH or the binary's install location)")
	f.StringVar(&flags.compileMode, "compile_mode", "", `"strict" fails on luac errors, "lenient" ignores them (default strict)`)
	f.BoolVar(&flags.checkSyntax, "check_syntax", false, "Parse every script before compiling it")

	cmd.MarkFlagRequired("game_path")    //nolint:errcheck
	cmd.MarkFlagRequired("project_path") //nolint:errcheck
	cmd.MarkFlagRequired("platform")     //nolint:errcheck
}

// platforms lists the project updaters the CLI knows about.
func platforms() *platform.Registry {
	return platform.NewRegistry(wp.New())
}

func runDeploy(cmd *cobra.Command, args []string) error {
	skipAssets, err := config.ParseBool("skip_assets", flags.skipAssets)
	if err != nil {
		return err
	}

	gamePath := utils.NormalizeSlashes(flags.gamePath)
	projectPath := utils.NormalizeSlashes(flags.projectPath)

	settings, err := config.LoadSettings(projectPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("compile_mode") {
		mode, err := config.ParseCompileMode(flags.compileMode)
		if err != nil {
			return err
		}
		settings.CompileMode = mode
	}
	if cmd.Flags().Changed("check_syntax") {
		settings.CheckSyntax = flags.checkSyntax
	}

	engineRoot, err := config.ResolveEngineRoot(flags.enginePath, settings)
	if err != nil {
		return err
	}

	ui.HeaderBox("luna2d deploy", fmt.Sprintf("%s -> %s", gamePath, projectPath))
	ui.StepStart("Engine", engineRoot)
	ui.StepContinue("Platform", flags.platform)
	ui.StepEnd("Assets", assetsLabel(skipAssets, settings))
	fmt.Println()

	res, err := deploy.Run(cmd.Context(), deploy.Options{
		GamePath:    gamePath,
		ProjectPath: projectPath,
		Platform:    flags.platform,
		SkipAssets:  skipAssets,
		EngineRoot:  engineRoot,
		Settings:    settings,
		Platforms:   platforms(),
	})
	if err != nil {
		return err
	}

	printDeploySummary(res)
	return nil
}

func assetsLabel(skip bool, s config.Settings) string {
	if skip {
		return "skipped"
	}
	label := "package, " + string(s.CompileMode) + " compile"
	if s.CheckSyntax {
		label += ", syntax check"
	}
	return label
}

func printDeploySummary(res *deploy.Result) {
	items := []ui.KV{{Key: "Project", Value: res.ProjectName}}
	if res.Libs != nil {
		items = append(items, ui.KV{Key: "Libraries", Value: fmt.Sprintf("%d files", res.Libs.Files)})
	}

	switch {
	case res.Platform == nil:
		items = append(items, ui.KV{Key: "Platform", Value: "no project update"})
	default:
		items = append(items, ui.KV{Key: "Platform", Value: fmt.Sprintf("%s: %d updated, %d unchanged",
			res.Platform.Platform, len(res.Platform.Changed), len(res.Platform.Skipped))})
	}

	if res.Assets == nil {
		items = append(items, ui.KV{Key: "Assets", Value: "skipped"})
	} else {
		items = append(items, ui.KV{Key: "Assets", Value: fmt.Sprintf("%d files, %d scripts compiled",
			res.Assets.Files, len(res.Assets.Scripts))})
	}

	items = append(items, ui.KV{Key: "Duration", Value: res.Duration.Round(10 * time.Millisecond).String()})
	ui.SummaryBox("Deploy Complete", items)
}
