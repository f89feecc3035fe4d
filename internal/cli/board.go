package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/tilescore/internal/api/response"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Leaderboard commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "players",
		Short: "Show the player leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.PlayerBoard

			if err := client.Get("/api/v1/leaderboard/players", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "groups",
		Short: "Show the group leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GroupBoard

			if err := client.Get("/api/v1/leaderboard/groups", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	})

	return cmd
}
