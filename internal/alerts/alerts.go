package alerts

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"sciwatch/internal/summaries"
	"sciwatch/internal/topics"
)

// Subscription is one subscriber's standing keyword interest.
type Subscription struct {
	Email    string   `yaml:"email"`
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Active   bool     `yaml:"active"`
}

type subscriptionsFile struct {
	Subscriptions []Subscription `yaml:"subscriptions"`
}

// LoadSubscriptions reads the subscriber list. A missing or empty path yields
// no subscriptions, which disables alerting.
func LoadSubscriptions(path string, logger *slog.Logger) ([]Subscription, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("subscriptions file not found, alerts disabled", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("read subscriptions %s: %w", path, err)
	}

	var file subscriptionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse subscriptions %s: %w", path, err)
	}

	var out []Subscription
	for _, sub := range file.Subscriptions {
		if strings.TrimSpace(sub.Email) == "" {
			logger.Warn("skipping subscription without email", "name", sub.Name)
			continue
		}
		out = append(out, sub)
	}
	return out, nil
}

// Alert pairs one subscriber with one summary that matched their keywords.
type Alert struct {
	Subscription Subscription
	Summary      summaries.Summary
	Matched      []string
}

// Match returns an alert for every (active subscriber, summary) pair where at
// least one subscriber keyword appears in the summary's searchable text.
// Keyword comparison is case-folded.
func Match(subs []Subscription, sums []summaries.Summary) []Alert {
	var out []Alert
	for _, sub := range subs {
		if !sub.Active {
			continue
		}
		for _, summary := range sums {
			text := summary.SearchableText()
			var matched []string
			for _, keyword := range sub.Keywords {
				folded := topics.Fold(strings.TrimSpace(keyword))
				if folded == "" {
					continue
				}
				if strings.Contains(text, folded) {
					matched = append(matched, keyword)
				}
			}
			if len(matched) > 0 {
				out = append(out, Alert{Subscription: sub, Summary: summary, Matched: matched})
			}
		}
	}
	return out
}
