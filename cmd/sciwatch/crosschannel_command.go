package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newCrossChannelCommand(ctx *commandContext) *cobra.Command {
	var days int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "crosschannel",
		Short: "List topics mentioned in multiple channels recently",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			tracker, err := ctx.openTracker()
			if err != nil {
				return err
			}

			window := days
			if window <= 0 {
				window = cfg.Matching.CrossChannelWindowDays
			}
			topics := tracker.CrossChannel(time.Now(), window)

			out := cmd.OutOrStdout()
			if jsonOut {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(topics)
			}

			if len(topics) == 0 {
				fmt.Fprintf(out, "no cross-channel topics in the last %d days\n", window)
				return nil
			}
			rows := make([][]string, 0, len(topics))
			for _, topic := range topics {
				rows = append(rows, []string{
					topic.CanonicalName,
					strings.Join(topic.Channels, ", "),
					strconv.Itoa(topic.RecentMentions),
					strconv.Itoa(topic.TotalMentions),
					topic.FirstSeen.Format("2006-01-02"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Topic", "Channels", "Recent", "Total", "First seen"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Window in days (default from configuration)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit results as JSON")
	return cmd
}
