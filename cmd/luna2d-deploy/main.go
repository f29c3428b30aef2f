package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"luna2d-deploy/internal/ui"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "luna2d-deploy",
	Short: "Deploy a luna2d game into a native project",
	Long: `luna2d-deploy copies the engine libraries into a native project,
updates the platform project files and packages the game assets,
compiling every script under scripts/ with the engine's luac.

Examples:
  luna2d-deploy --game_path ./game --project_path ./WpGame --platform wp
  luna2d-deploy --game_path ./game --project_path ./WpGame --platform wp --skip_assets true
  luna2d-deploy check --game_path ./game --project_path ./WpGame --platform wp
  luna2d-deploy log --project_path ./WpGame --tail 5`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDeploy,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("luna2d-deploy %s\n", version)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	registerDeployFlags(rootCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newLogCmd())
	rootCmd.AddCommand(newCheckCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
}
