package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMatchCommandNormalizesAndRanks(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "match", "--json", "TOPIC 1: global warming")
	if err != nil {
		t.Fatalf("match: %v", err)
	}

	var results []struct {
		Topic     string `json:"topic"`
		Canonical string `json:"canonical"`
		Matches   []struct {
			Title string `json:"title"`
			Type  string `json:"type"`
			URL   string `json:"url"`
		} `json:"matches"`
	}
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode results: %v\noutput: %s", err, out)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Topic != "global warming" {
		t.Fatalf("expected cleaned topic, got %q", results[0].Topic)
	}
	if results[0].Canonical != "climate change" {
		t.Fatalf("expected canonical climate change, got %q", results[0].Canonical)
	}
	if len(results[0].Matches) == 0 {
		t.Fatal("expected curated catalog matches for climate change")
	}
	for _, m := range results[0].Matches {
		if m.Type == "publication" && m.URL == "" {
			t.Fatalf("publication %q missing URL", m.Title)
		}
	}
}

func TestMatchCommandReadsStdin(t *testing.T) {
	env := setupCLITestEnv(t)

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader("quantum computers\n"))
	cmd.SetArgs([]string{"--config", env.configPath, "match"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("match from stdin: %v", err)
	}
	requireContains(t, stdout.String(), "quantum computing")
}

func TestMatchCommandRecordsChannel(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, "match", "--channel", "podcast:Science-Weekly", "climate crisis"); err != nil {
		t.Fatalf("match with channel: %v", err)
	}

	out, _, err := runCLI(t, env, "track", "--list")
	if err != nil {
		t.Fatalf("track --list: %v", err)
	}
	requireContains(t, out, "climate change")

	out, _, err = runCLI(t, env, "track", "climate change")
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	requireContains(t, out, "podcast:Science-Weekly")
	requireContains(t, out, "Total mentions: 1")
}

func TestTrackCommandRecordsMentions(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env,
		"track", "--channel", "twitter:sciencefeed", "--context", "thread on heat waves", "global warming")
	if err != nil {
		t.Fatalf("track record: %v", err)
	}
	requireContains(t, out, "recorded 1 mention(s) for twitter:sciencefeed")

	out, _, err = runCLI(t, env, "track", "--json", "climate change")
	if err != nil {
		t.Fatalf("track view: %v", err)
	}
	requireContains(t, out, "thread on heat waves")
}

func TestCrossChannelCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	for _, channel := range []string{"podcast:Show-A", "reddit:r-science"} {
		if _, _, err := runCLI(t, env, "match", "--channel", channel, "gene editing"); err != nil {
			t.Fatalf("match %s: %v", channel, err)
		}
	}

	out, _, err := runCLI(t, env, "crosschannel", "--days", "7")
	if err != nil {
		t.Fatalf("crosschannel: %v", err)
	}
	requireContains(t, out, "CRISPR/gene editing")
}

func TestCatalogStatsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "catalog", "stats")
	if err != nil {
		t.Fatalf("catalog stats: %v", err)
	}
	requireContains(t, out, "Curated publications")
	requireContains(t, out, "Bulk publications")
}

func TestSummariesIngestListAndAlerts(t *testing.T) {
	env := setupCLITestEnv(t)

	episode := map[string]any{
		"podcast_id":    "science-weekly",
		"podcast_name":  "Science Weekly",
		"episode_title": "Editing the Genome",
		"published":     "2026-08-28T00:00:00Z",
		"summary":       "A discussion of CRISPR therapies reaching the clinic.",
		"topics":        []string{"gene editing"},
	}
	data, err := json.Marshal(episode)
	if err != nil {
		t.Fatalf("marshal episode: %v", err)
	}
	episodePath := filepath.Join(env.baseDir, "episode.json")
	if err := os.WriteFile(episodePath, data, 0o644); err != nil {
		t.Fatalf("write episode: %v", err)
	}

	out, _, err := runCLI(t, env, "summaries", "ingest", episodePath)
	if err != nil {
		t.Fatalf("summaries ingest: %v", err)
	}
	requireContains(t, out, "stored summary")

	out, _, err = runCLI(t, env, "summaries", "list")
	if err != nil {
		t.Fatalf("summaries list: %v", err)
	}
	requireContains(t, out, "Science Weekly")
	requireContains(t, out, "CRISPR/gene editing")

	// The podcast channel is recorded in the timeline as a side effect.
	out, _, err = runCLI(t, env, "track", "CRISPR")
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	requireContains(t, out, "podcast:science-weekly")

	subsPath := filepath.Join(env.baseDir, "subscriptions.yaml")
	subs := `subscriptions:
  - email: ada@example.com
    name: Ada
    keywords: ["crispr"]
    active: true
`
	if err := os.WriteFile(subsPath, []byte(subs), 0o644); err != nil {
		t.Fatalf("write subscriptions: %v", err)
	}
	appendTestConfig(t, env.configPath, "\n[alerts]\nsubscriptions_path = \""+subsPath+"\"\n")

	out, _, err = runCLI(t, env, "alerts")
	if err != nil {
		t.Fatalf("alerts: %v", err)
	}
	requireContains(t, out, "ada@example.com")
	requireContains(t, out, "Editing the Genome")
}

func TestSummariesIngestOrdersByInfluence(t *testing.T) {
	env := setupCLITestEnv(t)

	writeEpisode := func(name string, episode map[string]any) string {
		t.Helper()
		data, err := json.Marshal(episode)
		if err != nil {
			t.Fatalf("marshal episode: %v", err)
		}
		path := filepath.Join(env.baseDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("write episode: %v", err)
		}
		return path
	}

	small := writeEpisode("small.json", map[string]any{
		"podcast_id":    "niche-cast",
		"podcast_name":  "Niche Cast",
		"episode_title": "Small audience episode",
		"followers":     200,
		"topics":        []string{"fusion"},
	})
	big := writeEpisode("big.json", map[string]any{
		"podcast_id":    "flagship",
		"podcast_name":  "Flagship",
		"episode_title": "Big audience episode",
		"followers":     120000,
		"topics":        []string{"climate crisis"},
	})

	// The low-follower file comes first on the command line; the larger
	// audience is still processed and reported first.
	out, _, err := runCLI(t, env, "summaries", "ingest", small, big)
	if err != nil {
		t.Fatalf("summaries ingest: %v", err)
	}
	bigAt := strings.Index(out, "Big audience episode")
	smallAt := strings.Index(out, "Small audience episode")
	if bigAt < 0 || smallAt < 0 {
		t.Fatalf("missing stored lines in output: %s", out)
	}
	if bigAt > smallAt {
		t.Errorf("expected the larger audience first:\n%s", out)
	}

	listOut, _, err := runCLI(t, env, "summaries", "list")
	if err != nil {
		t.Fatalf("summaries list: %v", err)
	}
	requireContains(t, listOut, "high")
	requireContains(t, listOut, "niche")
}

func TestAlertsCommandWithoutSubscriptions(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "alerts")
	if err != nil {
		t.Fatalf("alerts: %v", err)
	}
	requireContains(t, out, "no active subscriptions")
}
