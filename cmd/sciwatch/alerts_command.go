package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sciwatch/internal/alerts"
	"sciwatch/internal/summaries"
)

func newAlertsCommand(ctx *commandContext) *cobra.Command {
	var days int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Match subscriber keywords against stored summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			subs, err := alerts.LoadSubscriptions(cfg.Alerts.SubscriptionsPath, logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(subs) == 0 {
				fmt.Fprintln(out, "no active subscriptions")
				return nil
			}

			store, err := summaries.Open(cfg.Paths.SummaryDBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			var sums []summaries.Summary
			if days > 0 {
				sums, err = store.Recent(cmd.Context(), days)
			} else {
				sums, err = store.All(cmd.Context())
			}
			if err != nil {
				return err
			}

			matched := alerts.Match(subs, sums)
			if jsonOut {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(matched)
			}

			if len(matched) == 0 {
				fmt.Fprintln(out, "no alerts")
				return nil
			}
			rows := make([][]string, 0, len(matched))
			for _, alert := range matched {
				rows = append(rows, []string{
					alert.Subscription.Email,
					alert.Summary.EpisodeTitle,
					strings.Join(alert.Matched, ", "),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Subscriber", "Episode", "Matched keywords"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Only consider summaries from the last N days")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit alerts as JSON")
	return cmd
}
