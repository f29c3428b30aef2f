package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"luna2d-deploy/internal/check"
	"luna2d-deploy/internal/config"
	"luna2d-deploy/internal/ui"
	"luna2d-deploy/internal/utils"
)

func newCheckCmd() *cobra.Command {
	var f deployFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify a deploy can run without changing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, f)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.gamePath, "game_path", "", "Path to the game directory (holds config.luna2d)")
	fs.StringVar(&f.projectPath, "project_path", "", "Path to the native project (holds .luna2d/)")
	fs.StringVar(&f.platform, "platform", "", "Target platform (wp)")
	fs.StringVar(&f.skipAssets, "skip_assets", "false", `Skip asset checks: "true" or "false"`)
	fs.StringVar(&f.enginePath, "engine_path", "", "luna2d engine root (default: $LUNA2D_PATH or the binary's install location)")
	fs.BoolVar(&f.checkSyntax, "check_syntax", false, "Parse every script")

	cmd.MarkFlagRequired("game_path")    //nolint:errcheck
	cmd.MarkFlagRequired("project_path") //nolint:errcheck
	cmd.MarkFlagRequired("platform")     //nolint:errcheck
	return cmd
}

func runCheck(cmd *cobra.Command, f deployFlags) error {
	skipAssets, err := config.ParseBool("skip_assets", f.skipAssets)
	if err != nil {
		return err
	}

	gamePath := utils.NormalizeSlashes(f.gamePath)
	projectPath := utils.NormalizeSlashes(f.projectPath)

	settings, err := config.LoadSettings(projectPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("check_syntax") {
		settings.CheckSyntax = f.checkSyntax
	}

	engineRoot, err := config.ResolveEngineRoot(f.enginePath, settings)
	if err != nil {
		return err
	}

	ui.HeaderBox("luna2d deploy check", fmt.Sprintf("%s -> %s", gamePath, projectPath))

	spinner := ui.StartSpinner("Checking...")
	results := check.Preflight(check.Input{
		GamePath:    gamePath,
		ProjectPath: projectPath,
		Platform:    f.platform,
		EngineRoot:  engineRoot,
		SkipAssets:  skipAssets,
		Settings:    settings,
	}, nil)

	failed := check.Failed(results)
	if failed {
		spinner.Fail(fmt.Sprintf("%d checks run", len(results)))
	} else {
		spinner.Success(fmt.Sprintf("%d checks run", len(results)))
	}

	for _, r := range results {
		switch r.Status {
		case check.StatusOK:
			ui.Success("%-14s %s", r.Name, r.Message)
		case check.StatusWarning:
			ui.Warning("%-14s %s", r.Name, r.Message)
		default:
			ui.Error("%-14s %s", r.Name, r.Message)
		}
	}

	if failed {
		return fmt.Errorf("preflight check failed")
	}
	return nil
}
