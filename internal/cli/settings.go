package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/tilescore/internal/api/request"
	"github.com/mcoot/tilescore/internal/api/response"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Tournament settings commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Tournament

			if err := client.Get("/api/v1/tournament", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.AddCommand(newSettingsBonusCmd())
	cmd.AddCommand(newSettingsTopKCmd())

	return cmd
}

func newSettingsBonusCmd() *cobra.Command {
	var values []float64

	cmd := &cobra.Command{
		Use:     "bonus",
		Short:   "Replace the rank bonus table (applies to future rounds only)",
		Example: "  tilescore settings bonus --values=20,10,-10,-20",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Tournament
			if err := client.Put("/api/v1/settings/rank-bonus", request.RankBonusRequest{Values: values}, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().Float64SliceVar(&values, "values", nil, "Bonus per rank, first place first (required)")
	_ = cmd.MarkFlagRequired("values")

	return cmd
}

func newSettingsTopKCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "top-k <n>",
		Short: "Move the leaderboard divider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topK, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("invalid top-k %q: %w", args[0], err)
			}

			var result response.Tournament
			if err := client.Put("/api/v1/settings/top-k", request.TopKRequest{TopK: topK}, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
