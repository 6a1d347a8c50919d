package main

import (
	"context"
	"fmt"

	"github.com/franz/playlist-curator/internal/util"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List the media server's user accounts",
	Long: `List the server's accounts with their ids. The id of the playlist
owner goes into the owner-user-id config key so generated playlists
land in the right profile.`,
	RunE: runUsers,
}

func init() {
	rootCmd.AddCommand(usersCmd)
}

func runUsers(cmd *cobra.Command, args []string) error {
	setupLogging()

	client, err := jellyfinClient()
	if err != nil {
		return err
	}

	users, err := client.Users(context.Background())
	if err != nil {
		return err
	}
	if len(users) == 0 {
		util.InfoLog("Server reports no users")
		return nil
	}

	for _, u := range users {
		fmt.Printf("%-34s %s\n", u.ID, u.Name)
	}
	return nil
}
