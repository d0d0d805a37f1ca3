package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sciwatch/internal/timeline"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var channelFlag string
	var jsonOut bool
	var noEscalate bool

	cmd := &cobra.Command{
		Use:   "match [topic]...",
		Short: "Rank catalog publications and projects for topics",
		Long: `Match scores each topic against the publication catalog and prints the
top matches. Topics are read from the arguments, or from stdin one per line
when no arguments are given. With --channel the mentions are also recorded
into the topic timeline.`,
		Example: `  sciwatch match "CRISPR gene editing"
  echo "TOPIC 1: AI in medicine" | sciwatch match --channel podcast:Science-Weekly`,
		RunE: func(cmd *cobra.Command, args []string) error {
			topicArgs := args
			if len(topicArgs) == 0 {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					if line := scanner.Text(); line != "" {
						topicArgs = append(topicArgs, line)
					}
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read topics: %w", err)
				}
			}
			if len(topicArgs) == 0 {
				return errors.New("no topics given")
			}

			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}

			var channel timeline.ChannelKey
			var tracker *timeline.Tracker
			if channelFlag != "" {
				if channel, err = timeline.ParseChannelKey(channelFlag); err != nil {
					return err
				}
				if tracker, err = ctx.openTracker(); err != nil {
					return err
				}
			}

			eng, err := ctx.newEngine(store, tracker, !noEscalate)
			if err != nil {
				return err
			}
			results, err := eng.ProcessBatch(cmd.Context(), topicArgs, channel)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(results)
			}

			colorize := isTerminal(out)
			for _, result := range results {
				header := result.Canonical
				if colorize {
					header = "\x1b[1m" + header + "\x1b[0m"
				}
				fmt.Fprintf(out, "%s\n", header)
				if len(result.Matches) == 0 {
					fmt.Fprintln(out, "  no matches")
					continue
				}
				rows := make([][]string, 0, len(result.Matches))
				for _, m := range result.Matches {
					rows = append(rows, []string{m.Title, string(m.Type), m.URL})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Title", "Type", "URL"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
				if result.Escalated {
					fmt.Fprintln(out, "  (includes oracle-vetted matches)")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&channelFlag, "channel", "", "Record mentions for this channel (type:name)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit results as JSON")
	cmd.Flags().BoolVar(&noEscalate, "no-escalate", false, "Skip oracle escalation for weak results")
	return cmd
}
