package match

import (
	"fmt"
	"sort"
	"time"

	"sciwatch/internal/catalog"
	"sciwatch/internal/topics"
)

const (
	// SelectLimit caps the merged candidate list per topic.
	SelectLimit = 8
	// MaxPublications and MaxProjects cap the shipped result per topic.
	MaxPublications = 5
	MaxProjects     = 2

	curatedBonus   = 5
	bulkTitleFloor = 3
	bulkDescFloor  = 1

	projectWordPoints = 2.0
	projectScoreFloor = 2.0
	projectLimit      = 3
)

// publicationURLFormat synthesizes the canonical page for a publication ID.
const publicationURLFormat = "https://nap.nationalacademies.org/catalog/%s"

// Candidate pairs a catalog document with its computed relevance. Score is the
// breakdown total plus any curated bonus, or the flat oracle score for
// escalated entries.
type Candidate struct {
	Doc       catalog.Document
	Breakdown Breakdown
	Score     float64
	Curated   bool
}

// Match is the shipped result unit for one document.
type Match struct {
	Title   string       `json:"title"`
	URL     string       `json:"url"`
	Type    catalog.Kind `json:"type"`
	Snippet string       `json:"snippet"`
}

// Selector ranks catalog documents for a topic.
type Selector struct {
	store *catalog.Store
	now   func() time.Time
}

// SelectorOption customizes a Selector.
type SelectorOption func(*Selector)

// WithClock overrides the time source used for recency scoring.
func WithClock(now func() time.Time) SelectorOption {
	return func(s *Selector) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSelector builds a Selector over the given catalog store.
func NewSelector(store *catalog.Store, opts ...SelectorOption) *Selector {
	s := &Selector{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select scores the topic against both publication populations, merges by
// document identifier keeping the higher score, and returns the top candidates
// ordered by score. Ordering for equal scores is stable: curated pass
// insertion order first, then bulk.
func (s *Selector) Select(topic string) []Candidate {
	folded := topics.Fold(topic)
	words := topics.Words(topic)
	now := s.now()

	index := make(map[string]int)
	var merged []Candidate
	upsert := func(c Candidate) {
		if i, ok := index[c.Doc.ID]; ok {
			if c.Score > merged[i].Score {
				merged[i] = c
			}
			return
		}
		index[c.Doc.ID] = len(merged)
		merged = append(merged, c)
	}

	for _, doc := range s.store.Curated() {
		b := Score(doc, folded, words, now)
		if b.Keyword <= 0 {
			continue
		}
		upsert(Candidate{Doc: doc, Breakdown: b, Score: b.Total() + curatedBonus, Curated: true})
	}

	// Looser acceptance for the bulk catalog compensates for noisier
	// auto-derived keywords.
	for _, doc := range s.store.Bulk() {
		b := Score(doc, folded, words, now)
		if b.Keyword > 0 || b.Title >= bulkTitleFloor || b.Description >= bulkDescFloor {
			upsert(Candidate{Doc: doc, Breakdown: b, Score: b.Total()})
		}
	}

	sortCandidates(merged)
	if len(merged) > SelectLimit {
		merged = merged[:SelectLimit]
	}
	return merged
}

// SelectProjects ranks in-progress projects by whole-word title hits against
// the unexpanded topic words.
func (s *Selector) SelectProjects(topic string) []Candidate {
	words := topics.BaseWords(topic)

	var out []Candidate
	for _, doc := range s.store.Projects() {
		titleFolded := topics.Fold(doc.Title)
		var score float64
		for word := range words {
			if containsWord(titleFolded, word) {
				score += projectWordPoints
			}
		}
		if score >= projectScoreFloor {
			out = append(out, Candidate{Doc: doc, Score: score})
		}
	}

	sortCandidates(out)
	if len(out) > projectLimit {
		out = out[:projectLimit]
	}
	return out
}

func sortCandidates(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score > cands[j].Score
	})
}

func bestScore(cands []Candidate) float64 {
	if len(cands) == 0 {
		return 0
	}
	best := cands[0].Score
	for _, c := range cands[1:] {
		if c.Score > best {
			best = c.Score
		}
	}
	return best
}

// BuildMatches assembles the shipped per-topic result: the top publications
// with synthesized catalog URLs followed by the top projects with a status
// snippet.
func BuildMatches(publications, projects []Candidate) []Match {
	matches := make([]Match, 0, MaxPublications+MaxProjects)

	for i, c := range publications {
		if i >= MaxPublications {
			break
		}
		matches = append(matches, Match{
			Title: c.Doc.Title,
			URL:   fmt.Sprintf(publicationURLFormat, c.Doc.ID),
			Type:  catalog.KindPublication,
		})
	}

	for i, c := range projects {
		if i >= MaxProjects {
			break
		}
		status := c.Doc.Status
		if status == "" {
			status = "in_progress"
		}
		matches = append(matches, Match{
			Title:   c.Doc.Title,
			URL:     c.Doc.URL,
			Type:    catalog.KindProject,
			Snippet: "Status: " + status,
		})
	}

	return matches
}
