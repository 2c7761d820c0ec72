package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/budget_tracker/internal/utils"
	"github.com/spf13/cobra"
)

func newTokenCommand() *cobra.Command {
	var subject string
	var expiry time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is empty, authentication is disabled")
			}
			if expiry <= 0 {
				expiry = cfg.JWTExpiryDuration
			}

			signed, err := utils.IssueAccessToken(cfg.JWTSecret, cfg.JWTIssuer, subject, expiry, time.Now())
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "owner", "Subject claim of the token")
	cmd.Flags().DurationVar(&expiry, "expiry", 0, "Token lifetime, defaults to JWT_EXPIRY_DURATION")
	return cmd
}
