package main

import (
	"fmt"

	"github.com/franz/playlist-curator/internal/util"
	"github.com/spf13/cobra"
)

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Stamp the configured user tag onto every stored folder",
	Long: `Set the curator tag of every folder assignment to the configured user.
Useful after importing assignments made by someone else, or after
setting the user key for the first time.`,
	RunE: runClaim,
}

func init() {
	rootCmd.AddCommand(claimCmd)
}

func runClaim(cmd *cobra.Command, args []string) error {
	setupLogging()

	tag := userTag()
	if tag == nil {
		return fmt.Errorf("a user tag is required (set user in config or PLC_USER): %w", util.ErrInvalidConfig)
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.SetAllFolderUsers(*tag)
	if err != nil {
		return err
	}

	util.SuccessLog("Tagged %d folders as %s", n, *tag)
	return nil
}
