package main

import (
	"fmt"
	"os"

	"github.com/franz/playlist-curator/internal/assign"
	"github.com/franz/playlist-curator/internal/util"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import folder assignments from a CSV file",
	Long: `Import assignments from a CSV file with rows of the form

    <folder path>,<category id>

Rows referencing unknown categories or with malformed fields are
reported and skipped; valid rows still import. Existing assignments for
the same path are overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	setupLogging()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := assign.ImportCSV(db, f, userTag())
	if err != nil {
		return err
	}

	util.SuccessLog("Imported %d assignments (%d rows skipped)", result.Imported, result.Skipped)
	return nil
}
