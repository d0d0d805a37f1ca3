package alerts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"sciwatch/internal/logging"
	"sciwatch/internal/summaries"
)

func TestLoadSubscriptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subscriptions.yaml")
	content := `subscriptions:
  - email: ada@example.org
    name: Ada
    keywords: [crispr, "gene editing"]
    active: true
  - email: ""
    name: Nameless
    keywords: [fusion]
    active: true
  - email: bob@example.org
    name: Bob
    keywords: [quantum]
    active: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write subscriptions: %v", err)
	}

	subs, err := LoadSubscriptions(path, logging.NewNop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// The entry without an email is dropped; the inactive one is kept for
	// listing but will not match.
	if len(subs) != 2 {
		t.Fatalf("got %d subscriptions, want 2", len(subs))
	}
	if subs[0].Email != "ada@example.org" || len(subs[0].Keywords) != 2 {
		t.Errorf("first subscription: %+v", subs[0])
	}
}

func TestLoadSubscriptionsMissingFile(t *testing.T) {
	subs, err := LoadSubscriptions(filepath.Join(t.TempDir(), "nope.yaml"), logging.NewNop())
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if subs != nil {
		t.Fatalf("expected nil subscriptions, got %v", subs)
	}
}

func TestMatch(t *testing.T) {
	subs := []Subscription{
		{Email: "ada@example.org", Keywords: []string{"CRISPR"}, Active: true},
		{Email: "bob@example.org", Keywords: []string{"quantum"}, Active: true},
		{Email: "off@example.org", Keywords: []string{"crispr"}, Active: false},
	}
	sums := []summaries.Summary{
		{
			EpisodeTitle: "The CRISPR decade",
			Published:    time.Now(),
			Topics:       []string{"gene editing"},
		},
		{
			EpisodeTitle: "Deep sea mining",
			Published:    time.Now(),
		},
	}

	got := Match(subs, sums)
	if len(got) != 1 {
		t.Fatalf("got %d alerts, want 1", len(got))
	}
	if got[0].Subscription.Email != "ada@example.org" {
		t.Errorf("alert for %q, want ada@example.org", got[0].Subscription.Email)
	}
	if len(got[0].Matched) != 1 || got[0].Matched[0] != "CRISPR" {
		t.Errorf("matched keywords = %v", got[0].Matched)
	}
}
