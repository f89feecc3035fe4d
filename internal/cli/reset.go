package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/tilescore/internal/api/response"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear every round and zero all scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset discards every round; pass --yes to confirm")
			}

			var result response.Tournament
			if err := client.Post("/api/v1/reset", nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")

	return cmd
}
