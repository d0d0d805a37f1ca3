package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sciwatch/internal/engine"
	"sciwatch/internal/influence"
	"sciwatch/internal/summaries"
	"sciwatch/internal/timeline"
)

func newSummariesCommand(ctx *commandContext) *cobra.Command {
	summariesCmd := &cobra.Command{
		Use:   "summaries",
		Short: "Stored episode summaries",
	}
	summariesCmd.AddCommand(newSummariesListCommand(ctx))
	summariesCmd.AddCommand(newSummariesIngestCommand(ctx))
	return summariesCmd
}

func newSummariesListCommand(ctx *commandContext) *cobra.Command {
	var days int
	var podcastID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored summaries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := summaries.Open(cfg.Paths.SummaryDBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			var entries []summaries.Summary
			switch {
			case podcastID != "":
				entries, err = store.ByPodcast(cmd.Context(), podcastID)
			case days > 0:
				entries, err = store.Recent(cmd.Context(), days)
			default:
				entries, err = store.All(cmd.Context())
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "no summaries stored")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.Published.Format("2006-01-02"),
					entry.PodcastName,
					entry.InfluenceTier,
					entry.EpisodeTitle,
					strings.Join(entry.Topics, ", "),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Published", "Podcast", "Tier", "Episode", "Topics"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Only show summaries published in the last N days")
	cmd.Flags().StringVar(&podcastID, "podcast", "", "Only show summaries from this podcast ID")
	return cmd
}

// episodeInput is the JSON shape accepted by `summaries ingest`.
type episodeInput struct {
	PodcastID    string    `json:"podcast_id"`
	PodcastName  string    `json:"podcast_name"`
	EpisodeTitle string    `json:"episode_title"`
	Published    time.Time `json:"published"`
	Followers    int       `json:"followers"`
	Summary      string    `json:"summary"`
	Topics       []string  `json:"topics"`
}

func newSummariesIngestCommand(ctx *commandContext) *cobra.Command {
	var noEscalate bool

	cmd := &cobra.Command{
		Use:   "ingest <episode.json>...",
		Short: "Match episode topics and store the summaries",
		Long: `Ingest reads episode descriptions (JSON, one per file), matches each
episode's topics against the catalog, stores the summaries with their
matches, and records each topic mention into the timeline under the
episode's podcast channel. Podcasts with larger audiences are processed
first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byPodcast := make(map[string][]episodeInput)
			var sources []influence.Source
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read episode: %w", err)
				}
				var episode episodeInput
				if err := json.Unmarshal(data, &episode); err != nil {
					return fmt.Errorf("parse episode %s: %w", path, err)
				}
				if episode.PodcastID == "" || episode.EpisodeTitle == "" {
					return fmt.Errorf("episode %s requires podcast_id and episode_title", path)
				}
				if episode.Published.IsZero() {
					episode.Published = time.Now().UTC()
				}
				if _, seen := byPodcast[episode.PodcastID]; !seen {
					sources = append(sources, influence.Source{
						Name:      episode.PodcastID,
						Type:      "podcast",
						Followers: episode.Followers,
					})
				}
				byPodcast[episode.PodcastID] = append(byPodcast[episode.PodcastID], episode)
			}
			influence.SortByInfluence(sources)

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			catalogStore, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			tracker, err := ctx.openTracker()
			if err != nil {
				return err
			}
			eng, err := ctx.newEngine(catalogStore, tracker, !noEscalate)
			if err != nil {
				return err
			}
			store, err := summaries.Open(cfg.Paths.SummaryDBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			for _, source := range sources {
				for _, episode := range byPodcast[source.Name] {
					if err := ingestEpisode(cmd, eng, store, episode, out); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noEscalate, "no-escalate", false, "Skip oracle escalation for weak results")
	return cmd
}

func ingestEpisode(cmd *cobra.Command, eng *engine.Engine, store *summaries.Store, episode episodeInput, out io.Writer) error {
	channel := timeline.ChannelKey{Type: "podcast", Name: episode.PodcastID}
	results, err := eng.ProcessBatch(cmd.Context(), episode.Topics, channel)
	if err != nil {
		return err
	}

	matchesJSON, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode matches: %w", err)
	}

	canonical := make([]string, 0, len(results))
	matched := 0
	for _, result := range results {
		if result.Canonical != "" {
			canonical = append(canonical, result.Canonical)
		}
		matched += len(result.Matches)
	}
	id, err := store.Save(cmd.Context(), summaries.Summary{
		PodcastID:     episode.PodcastID,
		PodcastName:   episode.PodcastName,
		EpisodeTitle:  episode.EpisodeTitle,
		Published:     episode.Published,
		InfluenceTier: string(influence.TierForFollowers(episode.Followers)),
		SummaryText:   episode.Summary,
		Topics:        canonical,
		MatchesJSON:   string(matchesJSON),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "stored summary %s: %s (%d topics, %d matches)\n",
		strconv.FormatInt(id, 10), episode.EpisodeTitle, len(canonical), matched)
	return nil
}
