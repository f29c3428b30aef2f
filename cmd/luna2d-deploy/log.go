package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"luna2d-deploy/internal/oplog"
	"luna2d-deploy/internal/ui"
	"luna2d-deploy/internal/utils"
)

func newLogCmd() *cobra.Command {
	var (
		projectPath string
		limit       int
		clearLog    bool
		status      string
		since       string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the deploy history of a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath = utils.NormalizeSlashes(projectPath)

			if clearLog {
				if err := oplog.Clear(projectPath, oplog.OpsFile); err != nil {
					return fmt.Errorf("failed to clear log: %w", err)
				}
				ui.Success("Deploy log cleared")
				return nil
			}

			sinceTime, err := oplog.ParseSince(since)
			if err != nil {
				return err
			}
			return printDeployLog(projectPath, limit, oplog.Filter{Status: status, Since: sinceTime})
		},
	}

	f := cmd.Flags()
	f.StringVar(&projectPath, "project_path", ".", "Path to the native project")
	f.IntVarP(&limit, "tail", "t", 20, "Number of entries to show")
	f.BoolVarP(&clearLog, "clear", "c", false, "Clear the deploy log")
	f.StringVar(&status, "status", "", `Only show entries with this status ("ok" or "error")`)
	f.StringVar(&since, "since", "", "Only show entries newer than this (30m, 2h, 2d, 1w, 2006-01-02)")
	return cmd
}

func printDeployLog(projectPath string, limit int, filter oplog.Filter) error {
	entries, err := oplog.Read(projectPath, oplog.OpsFile, 0)
	if err != nil {
		return fmt.Errorf("failed to read log: %w", err)
	}
	entries = oplog.FilterEntries(entries, filter)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	ui.HeaderBox("luna2d-deploy log", fmt.Sprintf("Deploys (last %d)", len(entries)))
	if len(entries) == 0 {
		ui.Info("No deploy log entries")
		return nil
	}

	for _, e := range entries {
		ts := formatLogTimestamp(e.Timestamp)
		detail := formatLogDetail(e)
		dur := formatLogDuration(e.Duration)

		if ui.IsTTY() {
			fmt.Printf("  %s%s%s  %-72s  %s  %s\n", ui.Gray, ts, ui.Reset, detail, formatLogStatus(e.Status), dur)
		} else {
			fmt.Printf("  %s  %-72s  %-5s  %s\n", ts, detail, e.Status, dur)
		}
	}
	return nil
}

func formatLogTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		if len(ts) >= 16 {
			return ts[:16]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04")
}

// formatLogDetail renders the entry args as "key=value" pairs in a stable
// order, with the error message appended.
func formatLogDetail(e oplog.Entry) string {
	keys := make([]string, 0, len(e.Args))
	for k := range e.Args {
		if k == "libs_checksum" || k == "game_path" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Args[k]))
	}
	detail := strings.Join(parts, " ")

	if e.Message != "" {
		if detail != "" {
			detail += " "
		}
		detail += "(" + e.Message + ")"
	}
	return truncateLogString(detail, 72)
}

func formatLogStatus(status string) string {
	switch status {
	case "ok":
		return ui.Green + "ok   " + ui.Reset
	case "error":
		return ui.Red + "error" + ui.Reset
	default:
		return fmt.Sprintf("%-5s", status)
	}
}

func formatLogDuration(ms int64) string {
	if ms <= 0 {
		return ""
	}
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}

func truncateLogString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
