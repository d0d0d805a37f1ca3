package match

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"sciwatch/internal/catalog"
	"sciwatch/internal/logging"
	"sciwatch/internal/topics"
)

const (
	escalateMinCandidates = 2
	escalateMinScore      = 6.0
	oracleCandidateLimit  = 20
	oracleRecentWindow    = 400
	oracleScore           = 3.0
)

// Oracle is the external semantic-relevance endpoint: one prompt in, one text
// response out.
type Oracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// categoryTriggers maps topic-text fragments to the bulk-catalog category tags
// prioritized during oracle candidate assembly.
var categoryTriggers = []struct {
	words      []string
	categories []string
}{
	{[]string{"ai", "artificial", "intelligence", "machine", "learning", "robot"}, []string{"technology", "computing", "artificial-intelligence"}},
	{[]string{"climate", "warming", "carbon", "emissions", "environment"}, []string{"climate", "environment", "energy"}},
	{[]string{"cancer", "tumor", "oncology", "immunotherapy"}, []string{"cancer", "biomedical", "health"}},
	{[]string{"gene", "genetic", "dna", "crispr", "genome"}, []string{"biomedical", "genetics"}},
	{[]string{"vaccine", "virus", "infectious", "pandemic", "outbreak"}, []string{"covid", "global-health", "infectious-disease"}},
	{[]string{"brain", "neuro", "mental", "dementia", "alzheimer"}, []string{"mental-health", "behavioral-health", "neuroscience"}},
	{[]string{"space", "nasa", "planet", "asteroid", "mars", "moon"}, []string{"astronomy", "space", "planetary"}},
	{[]string{"ocean", "marine", "sea", "coastal", "fish"}, []string{"ocean", "environment", "marine"}},
}

var digitPattern = regexp.MustCompile(`\d+`)

// Escalator augments weak selector results through the oracle. A nil oracle
// disables escalation entirely.
type Escalator struct {
	store   *catalog.Store
	oracle  Oracle
	logger  *slog.Logger
	timeout time.Duration
}

// NewEscalator builds an Escalator. timeout bounds each oracle call; zero
// means the caller's context governs alone.
func NewEscalator(store *catalog.Store, oracle Oracle, logger *slog.Logger, timeout time.Duration) *Escalator {
	return &Escalator{
		store:   store,
		oracle:  oracle,
		logger:  logging.WithComponent(logger, "escalator"),
		timeout: timeout,
	}
}

// Augment returns the selector result unchanged when it is already strong
// (two or more candidates with a best score of at least six) and otherwise
// asks the oracle to vet up to twenty additional bulk candidates. Any oracle
// failure (transport error, timeout, unparseable response) degrades to
// returning the input unchanged.
func (e *Escalator) Augment(ctx context.Context, topic string, selected []Candidate) []Candidate {
	if e == nil || e.oracle == nil {
		return selected
	}
	if len(selected) >= escalateMinCandidates && bestScore(selected) >= escalateMinScore {
		return selected
	}

	candidates := e.assembleCandidates(topic)
	if len(candidates) == 0 {
		return selected
	}
	titles := make([]string, len(candidates))
	for i, doc := range candidates {
		titles[i] = doc.Title
	}

	callCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	response, err := e.oracle.Complete(callCtx, oraclePrompt(topic, titles))
	if err != nil {
		e.logger.Warn("oracle call failed, keeping algorithmic matches", "topic", topic, "error", err)
		return selected
	}

	indices := parseIndices(response, len(titles))
	if len(indices) == 0 {
		return selected
	}

	present := make(map[string]struct{}, len(selected))
	for _, c := range selected {
		present[c.Doc.ID] = struct{}{}
	}
	out := slices.Clone(selected)
	for _, idx := range indices {
		doc := candidates[idx]
		if _, ok := present[doc.ID]; ok {
			continue
		}
		present[doc.ID] = struct{}{}
		out = append(out, Candidate{Doc: doc, Breakdown: Breakdown{Oracle: true}, Score: oracleScore})
	}

	e.logger.Info("oracle added candidates", "topic", topic, "added", len(out)-len(selected))
	sortCandidates(out)
	if len(out) > SelectLimit {
		out = out[:SelectLimit]
	}
	return out
}

// assembleCandidates gathers up to twenty bulk documents for oracle review:
// category-tag matches from the most recently added publications first, then
// titles sharing a long token with the topic.
func (e *Escalator) assembleCandidates(topic string) []catalog.Document {
	folded := topics.Fold(topic)
	words := topics.Words(topic)

	var categories []string
	for _, trigger := range categoryTriggers {
		for _, w := range trigger.words {
			if strings.Contains(folded, w) {
				categories = append(categories, trigger.categories...)
				break
			}
		}
	}

	recent := slices.Clone(e.store.Bulk())
	sort.SliceStable(recent, func(i, j int) bool {
		return numericID(recent[i].ID) > numericID(recent[j].ID)
	})
	if len(recent) > oracleRecentWindow {
		recent = recent[:oracleRecentWindow]
	}

	var out []catalog.Document
	for _, doc := range recent {
		if categoryMatch(doc.Topics, categories) {
			out = append(out, doc)
		} else if titleSharesWord(doc.Title, words) {
			out = append(out, doc)
		}
		if len(out) >= oracleCandidateLimit {
			break
		}
	}
	return out
}

func numericID(id string) int {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return 0
	}
	return n
}

func categoryMatch(docTopics, categories []string) bool {
	for _, cat := range categories {
		if slices.Contains(docTopics, cat) {
			return true
		}
	}
	return false
}

func titleSharesWord(title string, words map[string]struct{}) bool {
	folded := topics.Fold(title)
	for word := range words {
		if len(word) >= 5 && strings.Contains(folded, word) {
			return true
		}
	}
	return false
}

func oraclePrompt(topic string, titles []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Given this trending news topic: %q\n\n", topic)
	b.WriteString("Rate which of these publications are most relevant (0-10 scale):\n\n")
	for i, title := range titles {
		fmt.Fprintf(&b, "%d. %s\n", i+1, title)
	}
	b.WriteString("\nReturn ONLY a comma-separated list of the publication numbers that score 7 or higher.\n")
	b.WriteString(`For example: "1, 4, 7" or "none" if no publications are relevant.` + "\n")
	b.WriteString("No explanation needed.")
	return b.String()
}

// parseIndices leniently extracts zero-based candidate indices from an oracle
// response: code fences are stripped, integers pulled out wherever they sit,
// out-of-range values dropped. "none" or anything unparseable yields nil.
func parseIndices(response string, count int) []int {
	cleaned := strings.ToLower(strings.TrimSpace(stripCodeFence(response)))
	if cleaned == "" || strings.Contains(cleaned, "none") {
		return nil
	}

	var indices []int
	seen := make(map[int]struct{})
	for _, raw := range digitPattern.FindAllString(cleaned, -1) {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > count {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		indices = append(indices, n-1)
	}
	return indices
}

func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	body := strings.TrimLeft(trimmed[3:], " \t\r\n")
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}
