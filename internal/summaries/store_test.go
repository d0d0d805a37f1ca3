package summaries

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "summaries.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleSummary(published time.Time) Summary {
	return Summary{
		PodcastID:     "science-weekly",
		PodcastName:   "Science Weekly",
		EpisodeTitle:  "The CRISPR decade",
		Published:     published,
		InfluenceTier: "medium",
		SummaryText:   "A look back at ten years of gene editing.",
		Topics:        []string{"CRISPR/gene editing", "biotech"},
		MatchesJSON:   `[{"title":"Heritable Human Genome Editing"}]`,
	}
}

func TestSaveAndAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	published := time.Date(2026, time.August, 20, 9, 0, 0, 0, time.UTC)
	id, err := store.Save(ctx, sampleSummary(published))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == 0 {
		t.Fatal("expected nonzero id")
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d summaries, want 1", len(all))
	}
	got := all[0]
	if got.EpisodeTitle != "The CRISPR decade" || got.PodcastName != "Science Weekly" {
		t.Errorf("unexpected summary: %+v", got)
	}
	if len(got.Topics) != 2 || got.Topics[0] != "CRISPR/gene editing" {
		t.Errorf("topics = %v", got.Topics)
	}
	if got.InfluenceTier != "medium" {
		t.Errorf("influence tier = %q, want medium", got.InfluenceTier)
	}
	if !got.Published.Equal(published) {
		t.Errorf("published = %v, want %v", got.Published, published)
	}
}

func TestSaveUpsertsSameEpisode(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	published := time.Date(2026, time.August, 20, 9, 0, 0, 0, time.UTC)
	first, err := store.Save(ctx, sampleSummary(published))
	if err != nil {
		t.Fatalf("first save: %v", err)
	}

	updated := sampleSummary(published)
	updated.SummaryText = "Revised summary."
	second, err := store.Save(ctx, updated)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if first != second {
		t.Errorf("upsert created a new row: %d != %d", first, second)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d summaries after upsert, want 1", len(all))
	}
	if all[0].SummaryText != "Revised summary." {
		t.Errorf("summary text not updated: %q", all[0].SummaryText)
	}
}

func TestRecentWindow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	old := sampleSummary(now.AddDate(0, 0, -30))
	old.EpisodeTitle = "Old episode"
	fresh := sampleSummary(now.AddDate(0, 0, -2))
	fresh.EpisodeTitle = "Fresh episode"

	for _, s := range []Summary{old, fresh} {
		if _, err := store.Save(ctx, s); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 7)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 || recent[0].EpisodeTitle != "Fresh episode" {
		t.Fatalf("recent = %+v", recent)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestAllOrdersNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		s := sampleSummary(base.AddDate(0, 0, i))
		s.EpisodeTitle = "Episode " + string(rune('A'+i))
		if _, err := store.Save(ctx, s); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if all[0].EpisodeTitle != "Episode C" || all[2].EpisodeTitle != "Episode A" {
		t.Errorf("order: %q, %q, %q", all[0].EpisodeTitle, all[1].EpisodeTitle, all[2].EpisodeTitle)
	}
}

func TestByPodcast(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	published := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	first := sampleSummary(published)
	other := sampleSummary(published.AddDate(0, 0, 1))
	other.PodcastID = "deep-dive"
	other.EpisodeTitle = "Other show episode"

	for _, s := range []Summary{first, other} {
		if _, err := store.Save(ctx, s); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	got, err := store.ByPodcast(ctx, "science-weekly")
	if err != nil {
		t.Fatalf("by podcast: %v", err)
	}
	if len(got) != 1 || got[0].PodcastID != "science-weekly" {
		t.Fatalf("by podcast = %+v", got)
	}
}

func TestSearchableText(t *testing.T) {
	s := sampleSummary(time.Now())
	text := s.SearchableText()
	for _, want := range []string{"crispr decade", "gene editing", "biotech"} {
		if !strings.Contains(text, want) {
			t.Errorf("searchable text missing %q: %s", want, text)
		}
	}
}
