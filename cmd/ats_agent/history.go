package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/server"
	"github.com/jonathan/resume-ats/internal/types"
)

// userCommand builds a command that acts on one user's history.
func userCommand(root *rootOptions, use, short string, run func(cmd *cobra.Command, a *app, userID uuid.UUID, asJSON bool) error) *cobra.Command {
	var (
		rawUserID string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := parseUserID(rawUserID, true)
			if err != nil {
				return err
			}
			cfg, err := root.load(cmd)
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			return run(cmd, a, userID, asJSON)
		},
	}
	cmd.Flags().StringVar(&rawUserID, "user-id", "", "User whose history to use (UUID)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

func newHistoryCmd(root *rootOptions) *cobra.Command {
	cmd := userCommand(root, "history", "List a user's analyses, newest first",
		func(cmd *cobra.Command, a *app, userID uuid.UUID, asJSON bool) error {
			records, err := a.engine.GetHistory(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), server.HistoryResponse{Analyses: records, Count: len(records)})
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintHistory(records)
			return nil
		})
	return cmd
}

func newStatsCmd(root *rootOptions) *cobra.Command {
	var withTrend bool
	cmd := userCommand(root, "stats", "Show a user's score statistics",
		func(cmd *cobra.Command, a *app, userID uuid.UUID, asJSON bool) error {
			ctx := cmd.Context()
			stats, err := a.engine.GetStats(ctx, userID)
			if err != nil {
				return err
			}
			var trend []types.TrendPoint
			if withTrend {
				if trend, err = a.engine.GetTrend(ctx, userID); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				resp := types.StatsResponse{Stats: stats}
				if stats != nil {
					tier := types.TierFor(stats.AverageScore)
					resp.Tier = &tier
				}
				if !withTrend {
					return writeJSON(out, resp)
				}
				return writeJSON(out, struct {
					types.StatsResponse
					Trend []types.TrendPoint `json:"trend"`
				}{resp, trend})
			}

			p := observability.NewPrinter(out)
			p.PrintStats(stats)
			p.PrintTrend(trend)
			return nil
		})
	cmd.Flags().BoolVar(&withTrend, "trend", false, "Also show scores over time")
	return cmd
}

func newDeleteCmd(root *rootOptions) *cobra.Command {
	var rawID string
	cmd := userCommand(root, "delete", "Delete one analysis from a user's history",
		func(cmd *cobra.Command, a *app, userID uuid.UUID, _ bool) error {
			recordID, err := uuid.Parse(rawID)
			if err != nil {
				return fmt.Errorf("invalid --id %q: %w", rawID, err)
			}
			if err := a.engine.DeleteAnalysis(cmd.Context(), userID, recordID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted analysis %s\n", recordID)
			return nil
		})
	cmd.Flags().StringVar(&rawID, "id", "", "Analysis ID to delete")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
