package main

import (
	"github.com/franz/playlist-curator/internal/assign"
	"github.com/franz/playlist-curator/internal/menu"
	"github.com/franz/playlist-curator/internal/util"
	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove assignments whose folders no longer exist",
	Long: `Check every stored folder path against the filesystem and prompt per
missing folder whether to remove the assignment, keep it, or skip.
Removals take effect immediately, so cancelling later keeps earlier
removals.`,
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, args []string) error {
	setupLogging()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := assign.Prune(db, menu.New())
	if err != nil {
		return err
	}

	if result.Missing == 0 {
		util.SuccessLog("Checked %d folders, all present", result.Checked)
		return nil
	}

	if result.Aborted {
		util.InfoLog("Prune stopped early")
	}
	util.SuccessLog("Checked %d folders: %d missing, %d removed",
		result.Checked, result.Missing, result.Removed)
	return nil
}
