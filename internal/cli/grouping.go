package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/tilescore/internal/api/request"
	"github.com/mcoot/tilescore/internal/api/response"
)

func newGroupingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grouping",
		Short: "Group configuration commands",
	}

	cmd.AddCommand(newGroupingSetCmd())
	cmd.AddCommand(newGroupingDisableCmd())

	return cmd
}

// parseGroup parses a NAME:ID1,ID2 group argument
func parseGroup(s string) (request.GroupRequest, error) {
	name, members, ok := strings.Cut(s, ":")
	if !ok {
		return request.GroupRequest{}, fmt.Errorf("invalid group %q: expected NAME:ID1,ID2", s)
	}
	group := request.GroupRequest{Name: strings.TrimSpace(name)}
	for _, m := range strings.Split(members, ",") {
		if m = strings.TrimSpace(m); m != "" {
			group.Members = append(group.Members, m)
		}
	}
	return group, nil
}

func newGroupingSetCmd() *cobra.Command {
	var groups []string

	cmd := &cobra.Command{
		Use:     "set",
		Short:   "Enable grouping with the given groups",
		Example: `  tilescore grouping set --group "Red:p_1,p_2" --group "Blue:p_3,p_4"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.GroupingRequest{Enabled: true}
			for _, g := range groups {
				group, err := parseGroup(g)
				if err != nil {
					return err
				}
				req.Groups = append(req.Groups, group)
			}

			var result response.Tournament
			if err := client.Put("/api/v1/grouping", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&groups, "group", nil, "Group as NAME:ID1,ID2, repeated per group")
	_ = cmd.MarkFlagRequired("group")

	return cmd
}

func newGroupingDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Disable grouping",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Tournament
			if err := client.Put("/api/v1/grouping", request.GroupingRequest{Enabled: false}, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
