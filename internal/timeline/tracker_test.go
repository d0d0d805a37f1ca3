package timeline

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sciwatch/internal/logging"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	tracker, err := Open(filepath.Join(t.TempDir(), "timeline.json"), logging.NewNop())
	if err != nil {
		t.Fatalf("open tracker: %v", err)
	}
	return tracker
}

func day(s string) time.Time {
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestRecordGroupsSynonyms(t *testing.T) {
	tracker := newTestTracker(t)
	podcast := ChannelKey{Type: "podcast", Name: "Science Weekly"}

	tracker.Record("Machine Learning", podcast, day("2026-08-01"), "ep 1")
	tracker.Record("artificial intelligence", podcast, day("2026-08-02"), "ep 2")
	tracker.Record("AI", podcast, day("2026-08-03"), "ep 3")

	entry := tracker.Entry("ai")
	if entry == nil {
		t.Fatal("no entry for canonical topic")
	}
	if entry.CanonicalName != "AI" {
		t.Errorf("canonical name = %q, want AI", entry.CanonicalName)
	}
	if entry.TotalMentions != 3 {
		t.Errorf("total mentions = %d, want 3", entry.TotalMentions)
	}
	if got := entry.FirstSeen.Format("2006-01-02"); got != "2026-08-01" {
		t.Errorf("first seen = %s, want 2026-08-01", got)
	}
	if len(entry.Channels) != 1 {
		t.Fatalf("channels = %d, want 1", len(entry.Channels))
	}
}

func TestRecordCapsMentionHistory(t *testing.T) {
	tracker := newTestTracker(t)
	ch := ChannelKey{Type: "feed", Name: "arxiv"}

	for i := 0; i < 30; i++ {
		tracker.Record("CRISPR", ch, day("2026-08-01").AddDate(0, 0, i), fmt.Sprintf("item %d", i))
	}

	entry := tracker.Entry("crispr")
	channel := entry.Channels[ch.String()]
	if channel == nil {
		t.Fatal("channel missing")
	}
	if len(channel.Mentions) != maxMentionsPerChannel {
		t.Fatalf("retained %d mentions, want %d", len(channel.Mentions), maxMentionsPerChannel)
	}
	if channel.Total != 30 {
		t.Errorf("channel total = %d, want 30", channel.Total)
	}
	// Oldest mentions fall off first.
	if got := channel.Mentions[0].Context; got != "item 10" {
		t.Errorf("oldest retained mention = %q, want item 10", got)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.json")
	tracker, err := Open(path, logging.NewNop())
	if err != nil {
		t.Fatalf("open tracker: %v", err)
	}

	tracker.Record("climate change", ChannelKey{Type: "podcast", Name: "A"}, day("2026-08-10"), "heat waves")
	tracker.Record("climate change", ChannelKey{Type: "feed", Name: "B"}, day("2026-08-12"), "")
	if err := tracker.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded, err := Open(path, logging.NewNop())
	if err != nil {
		t.Fatalf("reopen tracker: %v", err)
	}
	entry := reloaded.Entry("Climate Change")
	if entry == nil {
		t.Fatal("entry lost across save/reload")
	}
	if entry.TotalMentions != 2 || len(entry.Channels) != 2 {
		t.Errorf("reloaded entry: mentions=%d channels=%d", entry.TotalMentions, len(entry.Channels))
	}
	if got := entry.Channels["podcast:A"].Mentions[0].Context; got != "heat waves" {
		t.Errorf("mention context = %q", got)
	}
}

func TestOpenCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	tracker, err := Open(path, logging.NewNop())
	if err != nil {
		t.Fatalf("open corrupt tracker: %v", err)
	}
	if got := tracker.Topics(); len(got) != 0 {
		t.Fatalf("corrupt file produced topics: %v", got)
	}
}

func TestCrossChannelWindow(t *testing.T) {
	tracker := newTestTracker(t)
	now := day("2026-08-30")

	// Seen in two channels, but the podcast mention is 10 days old.
	tracker.Record("climate change", ChannelKey{Type: "podcast", Name: "A"}, now.AddDate(0, 0, -10), "")
	tracker.Record("climate change", ChannelKey{Type: "feed", Name: "B"}, now.AddDate(0, 0, -2), "")

	// Seen in two channels inside the last week.
	tracker.Record("CRISPR", ChannelKey{Type: "podcast", Name: "A"}, now.AddDate(0, 0, -3), "")
	tracker.Record("crispr", ChannelKey{Type: "feed", Name: "B"}, now.AddDate(0, 0, -1), "")

	// One channel only.
	tracker.Record("fusion", ChannelKey{Type: "feed", Name: "B"}, now, "")

	within14 := tracker.CrossChannel(now, 14)
	if len(within14) != 2 {
		t.Fatalf("14-day window: got %d topics, want 2", len(within14))
	}

	within7 := tracker.CrossChannel(now, 7)
	if len(within7) != 1 {
		t.Fatalf("7-day window: got %d topics, want 1", len(within7))
	}
	if within7[0].CanonicalName != "CRISPR/gene editing" {
		t.Errorf("7-day topic = %q, want CRISPR/gene editing", within7[0].CanonicalName)
	}
	if within7[0].ChannelCount != 2 || within7[0].RecentMentions != 2 {
		t.Errorf("7-day stats: %+v", within7[0])
	}
}

func TestCrossChannelOrdering(t *testing.T) {
	tracker := newTestTracker(t)
	now := day("2026-08-30")

	// Three channels.
	for _, name := range []string{"A", "B", "C"} {
		tracker.Record("quantum computing", ChannelKey{Type: "feed", Name: name}, now, "")
	}
	// Two channels, four mentions.
	for i := 0; i < 2; i++ {
		tracker.Record("microplastics", ChannelKey{Type: "feed", Name: "A"}, now, "")
		tracker.Record("microplastics", ChannelKey{Type: "feed", Name: "B"}, now, "")
	}
	// Two channels, two mentions.
	tracker.Record("fusion", ChannelKey{Type: "feed", Name: "A"}, now, "")
	tracker.Record("fusion", ChannelKey{Type: "feed", Name: "B"}, now, "")

	got := tracker.CrossChannel(now, 7)
	want := []string{"quantum computing", "microplastics", "fusion"}
	if len(got) != len(want) {
		t.Fatalf("got %d topics, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].CanonicalName != name {
			t.Errorf("position %d: got %q, want %q", i, got[i].CanonicalName, name)
		}
	}
}

func TestCrossChannelOrderingUsesLifetimeMentions(t *testing.T) {
	tracker := newTestTracker(t)
	now := day("2026-08-30")
	old := day("2026-07-01")
	chA := ChannelKey{Type: "feed", Name: "A"}
	chB := ChannelKey{Type: "feed", Name: "B"}

	// Long-tracked topic: 22 lifetime mentions, only 2 inside the window.
	for i := 0; i < 10; i++ {
		tracker.Record("climate change", chA, old, "")
		tracker.Record("climate change", chB, old, "")
	}
	tracker.Record("climate change", chA, now, "")
	tracker.Record("climate change", chB, now, "")

	// Fresh topic: all 4 mentions inside the window.
	for i := 0; i < 2; i++ {
		tracker.Record("microplastics", chA, now, "")
		tracker.Record("microplastics", chB, now, "")
	}

	got := tracker.CrossChannel(now, 7)
	if len(got) != 2 {
		t.Fatalf("got %d topics, want 2", len(got))
	}
	// Equal channel counts: the lifetime counter breaks the tie, not the
	// in-window count.
	if got[0].CanonicalName != "climate change" || got[1].CanonicalName != "microplastics" {
		t.Fatalf("order: %q, %q", got[0].CanonicalName, got[1].CanonicalName)
	}
	if got[0].TotalMentions != 22 || got[0].RecentMentions != 2 {
		t.Errorf("climate change counts: total %d recent %d, want 22/2",
			got[0].TotalMentions, got[0].RecentMentions)
	}
	if got[1].TotalMentions != 4 || got[1].RecentMentions != 4 {
		t.Errorf("microplastics counts: total %d recent %d, want 4/4",
			got[1].TotalMentions, got[1].RecentMentions)
	}
}

func TestParseChannelKey(t *testing.T) {
	key, err := ParseChannelKey("podcast:This Week in Science")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if key.Type != "podcast" || key.Name != "This Week in Science" {
		t.Errorf("parsed %+v", key)
	}
	if _, err := ParseChannelKey("noseparator"); err == nil {
		t.Error("expected error for key without separator")
	}
}
