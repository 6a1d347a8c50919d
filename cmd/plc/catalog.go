package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/franz/playlist-curator/internal/jellyfin"
	"github.com/franz/playlist-curator/internal/store"
	"github.com/franz/playlist-curator/internal/util"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	catalogLibrary string
	catalogTracks  bool
	catalogKeep    bool
	browseParent   string
	searchBy       string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Mirror and browse the media server's music catalog",
}

var catalogScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Mirror the server's music library into the local database",
	Long: `Fetch every album of the server's music library and store it locally
for offline browsing and searching. The previous mirror is replaced
unless --keep is given. With --tracks the audio items of each album are
mirrored as well, which takes one request per album.`,
	RunE: runCatalogScan,
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show item counts of the mirrored catalog",
	RunE:  runCatalogStats,
}

var catalogBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "List mirrored items, top-level or below --parent",
	RunE:  runCatalogBrowse,
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search the mirrored catalog by title or path",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogSearch,
}

func init() {
	catalogScanCmd.Flags().StringVar(&catalogLibrary, "library", "Music", "name of the server library to mirror")
	catalogScanCmd.Flags().BoolVar(&catalogTracks, "tracks", false, "also mirror the audio items of each album")
	catalogScanCmd.Flags().BoolVar(&catalogKeep, "keep", false, "keep existing mirror entries instead of replacing them")
	catalogBrowseCmd.Flags().StringVar(&browseParent, "parent", "", "list children of this item id")
	catalogSearchCmd.Flags().StringVar(&searchBy, "by", "title", "search field: title or path")

	catalogCmd.AddCommand(catalogScanCmd)
	catalogCmd.AddCommand(catalogStatsCmd)
	catalogCmd.AddCommand(catalogBrowseCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	rootCmd.AddCommand(catalogCmd)
}

// jellyfinClient builds a client from the jellyfin.* config keys
func jellyfinClient() (*jellyfin.Client, error) {
	serverURL := viper.GetString("jellyfin.url")
	if serverURL == "" {
		return nil, fmt.Errorf("server URL is required (set jellyfin.url in config): %w", util.ErrInvalidConfig)
	}
	return jellyfin.NewClient(serverURL, viper.GetString("jellyfin.api-key")), nil
}

// resolveUser picks the account matching the configured user name, or
// the first account when none is configured
func resolveUser(ctx context.Context, client *jellyfin.Client) (*jellyfin.User, error) {
	users, err := client.Users(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("server reports no users: %w", util.ErrNotFound)
	}

	wanted := viper.GetString("user")
	if wanted == "" {
		return &users[0], nil
	}
	for i := range users {
		if users[i].Name == wanted {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("no server user named %s: %w", wanted, util.ErrNotFound)
}

func runCatalogScan(cmd *cobra.Command, args []string) error {
	setupLogging()
	ctx := context.Background()

	client, err := jellyfinClient()
	if err != nil {
		return err
	}

	user, err := resolveUser(ctx, client)
	if err != nil {
		return err
	}
	util.InfoLog("Scanning as user %s", user.Name)

	views, err := client.Views(ctx, user.ID)
	if err != nil {
		return err
	}

	var library *jellyfin.Item
	for i := range views {
		if views[i].Name == catalogLibrary {
			library = &views[i]
			break
		}
	}
	if library == nil {
		return fmt.Errorf("no library named %s on the server: %w", catalogLibrary, util.ErrNotFound)
	}

	albums, err := client.Albums(ctx, user.ID, library.ID)
	if err != nil {
		return err
	}
	util.InfoLog("Found %d albums in %s", len(albums), catalogLibrary)

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if !catalogKeep {
		if err := db.ClearCatalog(); err != nil {
			return err
		}
	}

	var bar *progressbar.ProgressBar
	if len(albums) > 0 && util.IsTerminal(os.Stdout.Fd()) && !util.IsQuiet() {
		bar = progressbar.NewOptions(len(albums),
			progressbar.OptionSetDescription("Mirroring"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	stored := 0
	for _, album := range albums {
		if err := db.UpsertCatalogItem(catalogItemFrom(&album)); err != nil {
			return err
		}
		stored++

		if catalogTracks {
			tracks, err := client.Tracks(ctx, album.ID)
			if err != nil {
				util.WarnLog("Failed to list tracks of %s: %v", album.Name, err)
				continue
			}
			for _, track := range tracks {
				if err := db.UpsertCatalogItem(catalogItemFrom(&track)); err != nil {
					return err
				}
				stored++
			}
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		bar.Finish()
	}

	util.SuccessLog("Mirrored %d catalog items", stored)
	return nil
}

// catalogItemFrom maps an API item to its stored form
func catalogItemFrom(item *jellyfin.Item) *store.CatalogItem {
	rec := &store.CatalogItem{
		ItemID: item.ID,
		Title:  item.Name,
		Type:   item.Type,
	}
	if item.Path != "" {
		rec.Path = sql.NullString{String: item.Path, Valid: true}
	}
	if item.ParentID != "" {
		rec.ParentID = sql.NullString{String: item.ParentID, Valid: true}
	}
	return rec
}

func runCatalogStats(cmd *cobra.Command, args []string) error {
	setupLogging()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	total, err := db.CountCatalogItems()
	if err != nil {
		return err
	}
	if total == 0 {
		util.InfoLog("Catalog is empty. Mirror it with: plc catalog scan")
		return nil
	}

	counts, err := db.CountCatalogByType()
	if err != nil {
		return err
	}

	fmt.Printf("%d catalog items\n", total)
	for _, tc := range counts {
		fmt.Printf("  %-15s %d\n", tc.Type, tc.Count)
	}
	return nil
}

func runCatalogBrowse(cmd *cobra.Command, args []string) error {
	setupLogging()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	var items []*store.CatalogItem
	if browseParent == "" {
		items, err = db.CatalogRoots()
	} else {
		items, err = db.CatalogChildren(browseParent)
	}
	if err != nil {
		return err
	}
	if len(items) == 0 {
		util.InfoLog("No items found")
		return nil
	}

	printCatalogItems(items)
	return nil
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	setupLogging()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	var items []*store.CatalogItem
	var err2 error
	switch searchBy {
	case "title":
		items, err2 = db.SearchCatalogByTitle(args[0])
	case "path":
		items, err2 = db.SearchCatalogByPath(args[0])
	default:
		return fmt.Errorf("unknown search field %s (use title or path): %w", searchBy, util.ErrInvalidInput)
	}
	if err2 != nil {
		return err2
	}
	if len(items) == 0 {
		util.InfoLog("No matches for %s", args[0])
		return nil
	}

	printCatalogItems(items)
	return nil
}

func printCatalogItems(items []*store.CatalogItem) {
	for _, item := range items {
		path := ""
		if item.Path.Valid {
			path = item.Path.String
		}
		fmt.Printf("%-34s %-12s %-40s %s\n", item.ItemID, item.Type, item.Title, path)
	}
}
