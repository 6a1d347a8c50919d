package main

import (
	"fmt"
	"strings"

	"github.com/franz/playlist-curator/internal/playlist"
	"github.com/franz/playlist-curator/internal/probe"
	"github.com/franz/playlist-curator/internal/util"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate playlist documents from the stored assignments",
	Long: `Rebuild one playlist document per category from the persisted folder
assignments. File lists are taken fresh from disk and genres read from
the audio tags, so repeated runs reflect the current library state.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	setupLogging()

	outDir := viper.GetString("playlists")
	if outDir == "" {
		return fmt.Errorf("playlist output directory is required (set playlists in config): %w", util.ErrInvalidConfig)
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	prober := probe.New(viper.GetString("ffprobe"))
	if !prober.HasFFprobe() {
		util.WarnLog("ffprobe not found, reading genres with the native tag parser")
	}

	builder := &playlist.Builder{
		Store:        db,
		Scanner:      newScanner(),
		Prober:       prober,
		ShowProgress: true,
	}

	drafts, err := builder.Build()
	if err != nil {
		return err
	}

	owner := viper.GetString("owner-user-id")
	if owner == "" {
		owner = playlist.DefaultOwnerID
		util.InfoLog("No owner-user-id configured, using placeholder %s", owner)
	} else {
		id, err := uuid.Parse(owner)
		if err != nil {
			return fmt.Errorf("owner-user-id %q is not a valid id: %w", owner, util.ErrInvalidConfig)
		}
		// Jellyfin stores user ids as 32 hex digits without dashes
		owner = strings.ReplaceAll(id.String(), "-", "")
	}

	writer := &playlist.Writer{
		OutDir:      outDir,
		OwnerUserID: owner,
	}

	written, err := writer.WriteAll(drafts)
	if err != nil {
		return err
	}

	util.SuccessLog("Generated %d playlists (%d files) in %s",
		written, playlist.CountFiles(drafts), outDir)
	return nil
}
