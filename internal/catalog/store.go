package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed curated.yaml
var curatedData []byte

// Store holds the loaded catalog. It is immutable after Load and safe for
// concurrent readers.
type Store struct {
	curated  []Document
	bulk     []Document
	projects []Document
}

type curatedFile struct {
	Publications []struct {
		ID       string   `yaml:"id"`
		Title    string   `yaml:"title"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"publications"`
}

type bulkFile struct {
	Publications []struct {
		ID          string     `json:"id"`
		Title       string     `json:"title"`
		Keywords    stringList `json:"keywords"`
		Description string     `json:"description"`
		Year        int        `json:"year"`
		Topics      []string   `json:"topics"`
	} `json:"publications"`
	CurrentProjects []struct {
		Title  string `json:"title"`
		Status string `json:"status"`
		URL    string `json:"url"`
	} `json:"current_projects"`
}

// Load builds a Store from the embedded curated set plus the bulk catalog at
// bulkPath. A missing bulk file is not an error; the store then covers the
// curated set only. Records without an identifier or title are skipped with a
// warning.
func Load(bulkPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store := &Store{}

	var curated curatedFile
	if err := yaml.Unmarshal(curatedData, &curated); err != nil {
		return nil, fmt.Errorf("parse curated catalog: %w", err)
	}
	for _, pub := range curated.Publications {
		if strings.TrimSpace(pub.ID) == "" || strings.TrimSpace(pub.Title) == "" {
			logger.Warn("skipping curated publication without id or title", "title", pub.Title)
			continue
		}
		store.curated = append(store.curated, Document{
			ID:       pub.ID,
			Title:    pub.Title,
			Keywords: pub.Keywords,
			Kind:     KindPublication,
		})
	}

	if strings.TrimSpace(bulkPath) == "" {
		return store, nil
	}
	data, err := os.ReadFile(bulkPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("bulk catalog not found, using curated set only", "path", bulkPath)
			return store, nil
		}
		return nil, fmt.Errorf("read bulk catalog: %w", err)
	}

	var bulk bulkFile
	if err := json.Unmarshal(data, &bulk); err != nil {
		return nil, fmt.Errorf("parse bulk catalog %s: %w", bulkPath, err)
	}
	for _, pub := range bulk.Publications {
		if strings.TrimSpace(pub.ID) == "" {
			logger.Warn("skipping bulk publication without id", "title", pub.Title)
			continue
		}
		store.bulk = append(store.bulk, Document{
			ID:          pub.ID,
			Title:       pub.Title,
			Description: pub.Description,
			Year:        pub.Year,
			Keywords:    pub.Keywords,
			Topics:      pub.Topics,
			Kind:        KindPublication,
		})
	}
	for _, proj := range bulk.CurrentProjects {
		if strings.TrimSpace(proj.Title) == "" {
			logger.Warn("skipping project without title")
			continue
		}
		store.projects = append(store.projects, Document{
			Title:  proj.Title,
			Status: proj.Status,
			URL:    proj.URL,
			Kind:   KindProject,
		})
	}

	logger.Info("catalog loaded",
		"curated", len(store.curated),
		"bulk", len(store.bulk),
		"projects", len(store.projects),
		"enriched", store.Enriched(),
	)
	return store, nil
}

// NewStore assembles a Store from explicit document lists. Intended for tests
// and callers that build synthetic catalogs.
func NewStore(curated, bulk, projects []Document) *Store {
	return &Store{curated: curated, bulk: bulk, projects: projects}
}

// Curated returns the hand-authored publication set.
func (s *Store) Curated() []Document { return s.curated }

// Bulk returns the bulk-scraped publication set.
func (s *Store) Bulk() []Document { return s.bulk }

// Projects returns the in-progress project list.
func (s *Store) Projects() []Document { return s.projects }

// Enriched reports whether the bulk catalog carries description or year
// metadata, sampled from its leading records.
func (s *Store) Enriched() bool {
	for i, doc := range s.bulk {
		if i >= 10 {
			break
		}
		if doc.Description != "" || doc.Year != 0 {
			return true
		}
	}
	return false
}
