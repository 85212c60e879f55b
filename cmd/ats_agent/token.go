package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/server"
)

func newTokenCmd(root *rootOptions) *cobra.Command {
	var rawUserID string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API bearer token for a user",
		Long: `Sign a bearer token for the history endpoints with auth.jwtSecret.
Without --user-id a new user id is generated and printed to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := parseUserID(rawUserID, false)
			if err != nil {
				return err
			}
			if userID == uuid.Nil {
				userID = uuid.New()
				fmt.Fprintf(cmd.ErrOrStderr(), "user id: %s\n", userID)
			}

			cfg, err := root.load(cmd)
			if err != nil {
				return err
			}
			jwtCfg, err := config.NewJWTConfig(cfg.Auth)
			if err != nil {
				return err
			}
			token, err := server.NewJWTService(jwtCfg).GenerateToken(userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&rawUserID, "user-id", "", "User the token identifies (UUID)")
	return cmd
}
