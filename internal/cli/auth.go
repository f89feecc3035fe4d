package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/tilescore/internal/api/request"
	"github.com/mcoot/tilescore/internal/api/response"
	"github.com/mcoot/tilescore/internal/services/auth"
)

func newLoginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as the organizer",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.AuthResponse

			if err := client.Post("/api/v1/auth/login", request.LoginRequest{Password: password}, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Organizer password (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the organizer session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/auth/logout", nil, nil); err != nil {
				return err
			}
			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}

			output(cmd).PrintMessage("Logged out")
			return nil
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for the server's --password-hash flag",
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}

			output(cmd).PrintMessage(hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password to hash (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
