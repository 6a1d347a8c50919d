package main

import (
	"fmt"
	"os"

	"github.com/franz/playlist-curator/internal/scan"
	"github.com/franz/playlist-curator/internal/store"
	"github.com/franz/playlist-curator/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "plc",
		Short: "Playlist Curator - tag music folders and generate media server playlists",
		Long: `plc (Playlist Curator) maintains category assignments for the folders of a
music library and turns them into playlist documents a media server can
import. Assignments live in a local SQLite database; a remote Jellyfin
catalog can be mirrored for offline browsing.`,
		Version: Version,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./playlist.yaml)")
	rootCmd.PersistentFlags().String("db", "playlist-curator.db", "assignment database file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")

	// Bind flags to viper
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/plc")
		viper.SetConfigName("playlist")
		viper.SetConfigType("yaml")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("PLC")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && !viper.GetBool("quiet") {
		util.InfoLog("Using config file: %s", viper.ConfigFileUsed())
	}
}

// setupLogging applies the global verbosity flags
func setupLogging() {
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))
}

// openStore opens the assignment database configured via --db
func openStore() (*store.Store, error) {
	dbPath := viper.GetString("db")
	util.DebugLog("Opening database: %s", dbPath)

	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// newScanner builds a scanner with any extra extensions from config
func newScanner() *scan.Scanner {
	return scan.New(&scan.Config{
		AdditionalExts: viper.GetStringSlice("extensions"),
	})
}

// musicRoot returns the configured music directory or an error
func musicRoot() (string, error) {
	root := viper.GetString("music")
	if root == "" {
		return "", fmt.Errorf("music directory is required (set music in config or PLC_MUSIC): %w", util.ErrInvalidConfig)
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return "", fmt.Errorf("music directory does not exist: %s", root)
	}
	return root, nil
}

// userTag returns the configured curator tag, nil when unset
func userTag() *string {
	user := viper.GetString("user")
	if user == "" {
		return nil
	}
	return &user
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
