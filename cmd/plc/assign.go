package main

import (
	"github.com/franz/playlist-curator/internal/assign"
	"github.com/franz/playlist-curator/internal/menu"
	"github.com/franz/playlist-curator/internal/util"
	"github.com/spf13/cobra"
)

var assignAll bool

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Interactively assign music folders to categories",
	Long: `Walk the music directory and prompt for a category per folder that
directly contains audio files. By default only unassigned folders are
visited; --all revisits every folder with its current category
preselected and allows stepping back to the previous folder.`,
	RunE: runAssign,
}

func init() {
	assignCmd.Flags().BoolVar(&assignAll, "all", false, "revisit already assigned folders")
	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	setupLogging()

	root, err := musicRoot()
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	w := &assign.Workflow{
		Store:   db,
		Scanner: newScanner(),
		Chooser: menu.New(),
		UserTag: userTag(),
	}

	var result *assign.Result
	if assignAll {
		result, err = w.Reassign(root)
	} else {
		result, err = w.AssignNew(root)
	}
	if err != nil {
		return err
	}

	if result.Aborted {
		util.InfoLog("Assignment stopped early")
	}
	util.SuccessLog("Visited %d folders: %d assigned, %d skipped",
		result.Visited, result.Assigned, result.Skipped)
	return nil
}
