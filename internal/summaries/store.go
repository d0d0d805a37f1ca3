package summaries

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Summary is one stored episode with its topics and catalog matches.
type Summary struct {
	ID           int64
	PodcastID    string
	PodcastName  string
	EpisodeTitle string
	Published    time.Time
	// InfluenceTier records the podcast's audience tier at ingest time.
	InfluenceTier string
	SummaryText   string
	Topics        []string
	// MatchesJSON holds the per-topic catalog matches as produced by the
	// engine, stored verbatim.
	MatchesJSON string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SearchableText returns the lowercased text an alert keyword is matched
// against.
func (s Summary) SearchableText() string {
	parts := []string{s.EpisodeTitle, s.SummaryText}
	parts = append(parts, s.Topics...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Store manages summary persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the summary database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure summary db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create summary schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save inserts the summary, or updates the existing row when the same episode
// was stored before. It returns the row ID.
func (s *Store) Save(ctx context.Context, summary Summary) (int64, error) {
	topicsJSON, err := json.Marshal(summary.Topics)
	if err != nil {
		return 0, fmt.Errorf("marshal topics: %w", err)
	}
	matchesJSON := strings.TrimSpace(summary.MatchesJSON)
	if matchesJSON == "" {
		matchesJSON = "[]"
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO summaries (
            podcast_id, podcast_name, episode_title, published,
            influence_tier, summary_text, topics_json, matches_json,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(podcast_id, published, episode_title) DO UPDATE SET
            podcast_name = excluded.podcast_name,
            influence_tier = excluded.influence_tier,
            summary_text = excluded.summary_text,
            topics_json = excluded.topics_json,
            matches_json = excluded.matches_json,
            updated_at = excluded.updated_at`,
		summary.PodcastID,
		summary.PodcastName,
		summary.EpisodeTitle,
		summary.Published.UTC().Format(time.RFC3339),
		summary.InfluenceTier,
		summary.SummaryText,
		string(topicsJSON),
		matchesJSON,
		now,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("save summary: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(
		ctx,
		`SELECT id FROM summaries WHERE podcast_id = ? AND published = ? AND episode_title = ?`,
		summary.PodcastID,
		summary.Published.UTC().Format(time.RFC3339),
		summary.EpisodeTitle,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("read summary id: %w", err)
	}
	return id, nil
}

const summaryColumns = "id, podcast_id, podcast_name, episode_title, published, influence_tier, summary_text, topics_json, matches_json, created_at, updated_at"

// All returns every stored summary, most recently published first.
func (s *Store) All(ctx context.Context) ([]Summary, error) {
	return s.query(ctx, `SELECT `+summaryColumns+` FROM summaries ORDER BY published DESC, id DESC`)
}

// Recent returns the summaries published within the last days days, most
// recent first.
func (s *Store) Recent(ctx context.Context, days int) ([]Summary, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)
	return s.query(
		ctx,
		`SELECT `+summaryColumns+` FROM summaries WHERE published >= ? ORDER BY published DESC, id DESC`,
		cutoff,
	)
}

// ByPodcast returns the stored summaries of one podcast, most recent first.
func (s *Store) ByPodcast(ctx context.Context, podcastID string) ([]Summary, error) {
	return s.query(
		ctx,
		`SELECT `+summaryColumns+` FROM summaries WHERE podcast_id = ? ORDER BY published DESC, id DESC`,
		podcastID,
	)
}

// Count returns the number of stored summaries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM summaries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count summaries: %w", err)
	}
	return n, nil
}

func (s *Store) query(ctx context.Context, stmt string, args ...any) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summaries: %w", err)
	}
	return out, nil
}

func scanSummary(scanner interface{ Scan(dest ...any) error }) (Summary, error) {
	var (
		summary       Summary
		podcastName   sql.NullString
		influenceTier sql.NullString
		summaryText   sql.NullString
		topicsJSON    sql.NullString
		matchesJSON   sql.NullString
		publishedRaw  string
		createdRaw    string
		updatedRaw    string
	)
	if err := scanner.Scan(
		&summary.ID,
		&summary.PodcastID,
		&podcastName,
		&summary.EpisodeTitle,
		&publishedRaw,
		&influenceTier,
		&summaryText,
		&topicsJSON,
		&matchesJSON,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return Summary{}, err
	}

	summary.PodcastName = podcastName.String
	summary.InfluenceTier = influenceTier.String
	summary.SummaryText = summaryText.String
	summary.MatchesJSON = matchesJSON.String
	if topicsJSON.Valid && topicsJSON.String != "" {
		if err := json.Unmarshal([]byte(topicsJSON.String), &summary.Topics); err != nil {
			return Summary{}, fmt.Errorf("decode topics: %w", err)
		}
	}

	var err error
	if summary.Published, err = time.Parse(time.RFC3339, publishedRaw); err != nil {
		return Summary{}, fmt.Errorf("parse published %q: %w", publishedRaw, err)
	}
	if summary.CreatedAt, err = time.Parse(time.RFC3339Nano, createdRaw); err != nil {
		return Summary{}, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
	}
	if summary.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedRaw); err != nil {
		return Summary{}, fmt.Errorf("parse updated_at %q: %w", updatedRaw, err)
	}
	return summary, nil
}
