package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download standings and charts",
	}

	cmd.AddCommand(newDownloadCmd("xlsx", "Download the standings workbook",
		"/api/v1/export/standings.xlsx", "standings.xlsx"))
	cmd.AddCommand(newDownloadCmd("chart", "Download the score progression chart",
		"/api/v1/export/chart.png", "chart.png"))

	return cmd
}

func newDownloadCmd(use, short, path, defaultFile string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client.Download(path)
			if err != nil {
				return err
			}

			if err := os.WriteFile(file, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", file, err)
			}

			output(cmd).PrintMessage(fmt.Sprintf("Wrote %s (%d bytes)", file, len(data)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", defaultFile, "Output file")

	return cmd
}
