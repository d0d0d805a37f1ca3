package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"sciwatch/internal/timeline"
)

func newTrackCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var list bool
	var channelFlag string
	var mentionContext string

	cmd := &cobra.Command{
		Use:   "track [topic]...",
		Short: "Show or record the mention history of topics",
		Long: `Track shows a topic's mention history. With --channel it instead records
one mention of each given topic for that channel and saves the timeline.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := ctx.openTracker()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if list {
				for _, name := range tracker.Topics() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			if channelFlag != "" {
				if len(args) == 0 {
					return fmt.Errorf("no topics given")
				}
				channel, err := timeline.ParseChannelKey(channelFlag)
				if err != nil {
					return err
				}
				now := time.Now()
				for _, topic := range args {
					tracker.Record(topic, channel, now, mentionContext)
				}
				if err := tracker.Save(); err != nil {
					return err
				}
				fmt.Fprintf(out, "recorded %d mention(s) for %s\n", len(args), channel)
				return nil
			}

			if len(args) != 1 {
				return cmd.Help()
			}
			entry := tracker.Entry(args[0])
			if entry == nil {
				fmt.Fprintf(out, "no history for %q\n", args[0])
				return nil
			}

			if jsonOut {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(entry)
			}

			fmt.Fprintf(out, "%s\n", entry.CanonicalName)
			fmt.Fprintf(out, "First seen: %s\n", entry.FirstSeen.Format("2006-01-02"))
			fmt.Fprintf(out, "Total mentions: %d\n", entry.TotalMentions)

			keys := make([]string, 0, len(entry.Channels))
			for key := range entry.Channels {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			rows := make([][]string, 0, len(keys))
			for _, key := range keys {
				ch := entry.Channels[key]
				last := ""
				if len(ch.Mentions) > 0 {
					last = ch.Mentions[len(ch.Mentions)-1].Date.Format("2006-01-02")
				}
				rows = append(rows, []string{
					key,
					ch.FirstSeen.Format("2006-01-02"),
					last,
					strconv.Itoa(ch.Total),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Channel", "First seen", "Last seen", "Mentions"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the entry as JSON")
	cmd.Flags().BoolVar(&list, "list", false, "List all tracked topics")
	cmd.Flags().StringVar(&channelFlag, "channel", "", "Record mentions for this channel (type:name)")
	cmd.Flags().StringVar(&mentionContext, "context", "", "Context note stored with recorded mentions")
	return cmd
}
