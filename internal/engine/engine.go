package engine

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"sciwatch/internal/logging"
	"sciwatch/internal/match"
	"sciwatch/internal/timeline"
	"sciwatch/internal/topics"
)

// topicPrefixPattern strips list numbering like "TOPIC 3:" that upstream
// extractors sometimes leave on topic lines.
var topicPrefixPattern = regexp.MustCompile(`(?i)^topic\s*\d+\s*:\s*`)

// Result is the full matching outcome for one input topic.
type Result struct {
	Topic      string            `json:"topic"`
	Canonical  string            `json:"canonical"`
	Candidates []match.Candidate `json:"-"`
	Projects   []match.Candidate `json:"-"`
	Matches    []match.Match     `json:"matches"`
	Escalated  bool              `json:"escalated"`
}

// Engine runs topic batches through selection, escalation, and the timeline.
type Engine struct {
	selector    *match.Selector
	escalator   *match.Escalator
	tracker     *timeline.Tracker
	logger      *slog.Logger
	parallelism int
	now         func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithParallelism bounds how many topics are matched concurrently.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// WithTracker attaches a timeline tracker; without one, mentions are not
// recorded.
func WithTracker(tracker *timeline.Tracker) Option {
	return func(e *Engine) {
		e.tracker = tracker
	}
}

// WithEscalator attaches an oracle escalator; without one, weak results ship
// as-is.
func WithEscalator(escalator *match.Escalator) Option {
	return func(e *Engine) {
		e.escalator = escalator
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New builds an Engine over the given selector.
func New(selector *match.Selector, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		selector:    selector,
		logger:      logging.WithComponent(logger, "engine"),
		parallelism: 4,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CleanTopic strips upstream numbering and surrounding whitespace from a raw
// topic line.
func CleanTopic(raw string) string {
	return strings.TrimSpace(topicPrefixPattern.ReplaceAllString(strings.TrimSpace(raw), ""))
}

// ProcessTopic matches one topic against the catalog.
func (e *Engine) ProcessTopic(ctx context.Context, rawTopic string) Result {
	topic := CleanTopic(rawTopic)
	result := Result{
		Topic:     topic,
		Canonical: topics.Normalize(topic),
	}
	if topic == "" {
		return result
	}

	result.Candidates = e.selector.Select(result.Canonical)
	if e.escalator != nil {
		augmented := e.escalator.Augment(ctx, result.Canonical, result.Candidates)
		for _, c := range augmented {
			if c.Breakdown.Oracle {
				result.Escalated = true
				break
			}
		}
		result.Candidates = augmented
	}
	result.Projects = e.selector.SelectProjects(result.Canonical)
	result.Matches = match.BuildMatches(result.Candidates, result.Projects)
	return result
}

// ProcessBatch matches every topic in rawTopics, concurrently up to the
// configured parallelism, and returns results in input order. When a channel
// is supplied and a tracker is attached, each non-empty topic is recorded as
// a mention and the timeline saved once at the end.
func (e *Engine) ProcessBatch(ctx context.Context, rawTopics []string, channel timeline.ChannelKey) ([]Result, error) {
	runID := uuid.NewString()
	logger := e.logger.With("run_id", runID)
	logger.Info("processing topic batch", "topics", len(rawTopics))

	results := make([]Result, len(rawTopics))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i, raw := range rawTopics {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.ProcessTopic(gctx, raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if e.tracker != nil && channel != (timeline.ChannelKey{}) {
		now := e.now()
		for _, result := range results {
			if result.Topic == "" {
				continue
			}
			e.tracker.Record(result.Topic, channel, now, "")
		}
		if err := e.tracker.Save(); err != nil {
			return results, err
		}
	}

	for _, result := range results {
		logger.Info("topic matched",
			"topic", result.Canonical,
			"candidates", len(result.Candidates),
			"matches", len(result.Matches),
			"escalated", result.Escalated)
	}
	return results, nil
}
