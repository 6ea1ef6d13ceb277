package main

import (
	"fmt"
	"time"

	"github.com/SscSPs/bolsas_app/internal/utils"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API access token for a user",
		Long: `Sign a bearer token with JWT_SECRET and JWT_ISSUER for the given user id.
Useful for scripts and local testing against the HTTP API.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, _ := cmd.Flags().GetString("user")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			signed, err := utils.GenerateAccessToken(userID, cfg.JWTSecret, cfg.JWTIssuer, ttl)
			if err != nil {
				return fmt.Errorf("failed to issue token: %w", err)
			}
			fmt.Println(signed)
			return nil
		},
	}

	cmd.Flags().String("user", "", "user id placed in the token subject (required)")
	cmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
