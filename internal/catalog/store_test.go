package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"sciwatch/internal/logging"
)

func TestLoadCuratedOnlyWhenBulkMissing(t *testing.T) {
	store, err := Load(filepath.Join(t.TempDir(), "absent.json"), logging.NewNop())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(store.Curated()) == 0 {
		t.Fatal("expected embedded curated publications")
	}
	if len(store.Bulk()) != 0 || len(store.Projects()) != 0 {
		t.Fatal("expected empty bulk catalog")
	}
	if store.Enriched() {
		t.Fatal("curated-only store must not report enriched metadata")
	}
}

func TestLoadBulkCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	payload := `{
		"publications": [
			{"id": "30001", "title": "Deep Sea Mining Impacts", "keywords": ["ocean", "mining"], "description": "Seabed ecosystems", "year": 2024, "topics": ["ocean"]},
			{"id": "", "title": "No identifier"},
			{"id": "30002", "title": "Single Keyword Record", "keywords": "fusion"}
		],
		"current_projects": [
			{"title": "Arctic Observing Network", "status": "in_progress", "url": "https://example.org/arctic"},
			{"title": "", "status": "in_progress"}
		]
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := Load(path, logging.NewNop())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := len(store.Bulk()); got != 2 {
		t.Fatalf("expected 2 bulk publications (record without id skipped), got %d", got)
	}
	if got := len(store.Projects()); got != 1 {
		t.Fatalf("expected 1 project (untitled skipped), got %d", got)
	}
	if kws := store.Bulk()[1].Keywords; len(kws) != 1 || kws[0] != "fusion" {
		t.Fatalf("string keyword not promoted to list: %v", kws)
	}
	if !store.Enriched() {
		t.Fatal("store with description/year metadata must report enriched")
	}
}

func TestLoadRejectsMalformedBulkCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, logging.NewNop()); err == nil {
		t.Fatal("expected parse error for malformed bulk catalog")
	}
}

func TestCuratedSetIncludesReferencePublications(t *testing.T) {
	store, err := Load("", logging.NewNop())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	for _, doc := range store.Curated() {
		if doc.ID == "26355" {
			if len(doc.Keywords) == 0 {
				t.Fatal("curated publication 26355 must carry keywords")
			}
			return
		}
	}
	t.Fatal("curated set missing publication 26355")
}
