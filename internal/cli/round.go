package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/tilescore/internal/api/request"
	"github.com/mcoot/tilescore/internal/api/response"
)

func newRoundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "round",
		Short: "Round commands",
	}

	cmd.AddCommand(newRoundSubmitCmd())
	cmd.AddCommand(newRoundListCmd())

	return cmd
}

// parseSeat parses a PLAYER_ID=RAW_SCORE seat argument
func parseSeat(s string) (request.SeatRequest, error) {
	id, raw, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(id) == "" {
		return request.SeatRequest{}, fmt.Errorf("invalid seat %q: expected PLAYER_ID=SCORE", s)
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return request.SeatRequest{}, fmt.Errorf("invalid score in seat %q: %w", s, err)
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return request.SeatRequest{}, fmt.Errorf("invalid score in seat %q: must be a finite number", s)
	}
	return request.NewSeatRequest(strings.TrimSpace(id), score), nil
}

func newRoundSubmitCmd() *cobra.Command {
	var seats []string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a round in seat order (East, South, West, North)",
		Example: `  tilescore round submit --seat p_1=45000 --seat p_2=33000 \
    --seat p_3=25000 --seat p_4=20000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.SubmitRoundRequest{Seats: make([]request.SeatRequest, 0, len(seats))}
			for _, s := range seats {
				seat, err := parseSeat(s)
				if err != nil {
					return err
				}
				req.Seats = append(req.Seats, seat)
			}

			var result response.Round
			if err := client.Post("/api/v1/rounds", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&seats, "seat", nil, "Seat as PLAYER_ID=SCORE, repeated once per seat")
	_ = cmd.MarkFlagRequired("seat")

	return cmd
}

func newRoundListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List committed rounds",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.Round

			if err := client.Get("/api/v1/rounds", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
