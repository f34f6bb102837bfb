package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/polkiloo/gigmarket/internal/domain/model"
	"github.com/polkiloo/gigmarket/internal/pkg/auth"
)

func tokenCmd() *cobra.Command {
	var (
		userID string
		role   string
		secret string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an auth token for a user",
		Long: `Mint a signed bearer token for local testing or admin access.
The secret defaults to JWT_SECRET.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return errors.New("--user is required")
			}
			r, err := model.ParseRole(role)
			if err != nil {
				return err
			}
			if secret == "" {
				secret = os.Getenv("JWT_SECRET")
			}
			if secret == "" {
				return errors.New("signing secret is empty: pass --secret or set JWT_SECRET")
			}

			token, err := auth.NewJWTStrategy(secret, auth.Options{TTL: ttl}).IssueToken(model.Identity{UserID: userID, Role: r})
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User id placed in the token")
	cmd.Flags().StringVar(&role, "role", model.RoleCustomer.String(), "Role: CUSTOMER, FREELANCER or ADMIN")
	cmd.Flags().StringVar(&secret, "secret", "", "Signing secret")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")

	return cmd
}
