package main

import (
	"fmt"

	"codeberg.org/guidebot/server/internal/auth"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// issues a bearer token for the admin API, signed with JWT_SECRET
func newTokenCmd() *cobra.Command {
	var (
		userID  string
		email   string
		isAdmin bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed JWT for the admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load() //nolint:errcheck // .env is optional

			if userID == "" {
				userID = uuid.New().String()
			}

			token, err := auth.GenerateJWT(userID, email, isAdmin)
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "subject user id (random when empty)")
	cmd.Flags().StringVar(&email, "email", "ops@localhost", "email claim")
	cmd.Flags().BoolVar(&isAdmin, "admin", true, "set the is_admin claim")
	return cmd
}
