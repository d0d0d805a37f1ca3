package timeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"sciwatch/internal/logging"
	"sciwatch/internal/topics"
)

// Tracker owns the timeline file. All mutation goes through Record and is
// made durable by Save; readers get copies, never internal state.
type Tracker struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]*Entry
}

// Open loads the timeline at path. A missing file yields an empty tracker; a
// corrupt one is logged and replaced on the next Save rather than aborting the
// run.
func Open(path string, logger *slog.Logger) (*Tracker, error) {
	if path == "" {
		return nil, errors.New("timeline path required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tracker{
		path:    path,
		lock:    flock.New(path + ".lock"),
		logger:  logging.WithComponent(logger, "timeline"),
		entries: make(map[string]*Entry),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			t.logger.Info("timeline file not found, starting empty", "path", path)
			return t, nil
		}
		return nil, fmt.Errorf("read timeline %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &t.entries); err != nil {
		t.logger.Warn("timeline file corrupt, starting empty", "path", path, "error", err)
		t.entries = make(map[string]*Entry)
	}
	return t, nil
}

// Record books one observation of topic in channel on the given date. The
// topic is canonicalized first, so synonym variants land on the same entry.
func (t *Tracker) Record(topic string, channel ChannelKey, when time.Time, context string) {
	key := topics.CanonicalKey(topic)
	if key == "" {
		return
	}
	date := DateOf(when)

	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[key]
	if !ok {
		entry = &Entry{
			CanonicalName: topics.Normalize(topic),
			FirstSeen:     date,
			Channels:      make(map[string]*Channel),
		}
		t.entries[key] = entry
	}
	if date.Before(entry.FirstSeen.Time) {
		entry.FirstSeen = date
	}
	entry.TotalMentions++

	ch, ok := entry.Channels[channel.String()]
	if !ok {
		ch = &Channel{Type: channel.Type, Name: channel.Name, FirstSeen: date}
		entry.Channels[channel.String()] = ch
	}
	if date.Before(ch.FirstSeen.Time) {
		ch.FirstSeen = date
	}
	ch.Total++
	ch.Mentions = append(ch.Mentions, Mention{Date: date, Context: context})
	if len(ch.Mentions) > maxMentionsPerChannel {
		ch.Mentions = ch.Mentions[len(ch.Mentions)-maxMentionsPerChannel:]
	}
}

// Entry returns a deep copy of the history for topic, or nil when the topic
// has never been seen.
func (t *Tracker) Entry(topic string) *Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[topics.CanonicalKey(topic)]
	if !ok {
		return nil
	}
	return copyEntry(entry)
}

// Topics returns the canonical names of every tracked topic, sorted.
func (t *Tracker) Topics() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	names := make([]string, 0, len(t.entries))
	for _, entry := range t.entries {
		names = append(names, entry.CanonicalName)
	}
	sort.Strings(names)
	return names
}

// Save writes the timeline atomically under the file lock: marshal to a
// sibling temp file, fsync, rename over the target.
func (t *Tracker) Save() error {
	t.mu.Lock()
	data, err := json.MarshalIndent(t.entries, "", "  ")
	t.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encode timeline: %w", err)
	}

	if err := t.lock.Lock(); err != nil {
		return fmt.Errorf("lock timeline %s: %w", t.path, err)
	}
	defer func() {
		if err := t.lock.Unlock(); err != nil {
			t.logger.Warn("unlock timeline failed", "path", t.path, "error", err)
		}
	}()

	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("create timeline directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(t.path), ".timeline-*.json")
	if err != nil {
		return fmt.Errorf("create timeline temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write timeline: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync timeline: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close timeline temp file: %w", err)
	}
	if err := os.Rename(tmpName, t.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace timeline: %w", err)
	}
	return nil
}

// CrossChannelTopic summarizes one topic seen in at least two channels within
// the query window.
type CrossChannelTopic struct {
	CanonicalName  string   `json:"canonical_name"`
	Channels       []string `json:"channels"`
	ChannelCount   int      `json:"channel_count"`
	TotalMentions  int      `json:"total_mentions"`
	RecentMentions int      `json:"recent_mentions"`
	FirstSeen      Date     `json:"first_seen"`
}

// CrossChannel returns the topics mentioned in two or more channels within the
// last windowDays, the busiest first: channel count descending, then lifetime
// mentions descending, then name.
func (t *Tracker) CrossChannel(now time.Time, windowDays int) []CrossChannelTopic {
	cutoff := DateOf(now.AddDate(0, 0, -windowDays))

	t.mu.Lock()
	defer t.mu.Unlock()

	var out []CrossChannelTopic
	for _, entry := range t.entries {
		var channels []string
		recent := 0
		for key, ch := range entry.Channels {
			n := 0
			for _, m := range ch.Mentions {
				if !m.Date.Before(cutoff.Time) {
					n++
				}
			}
			if n > 0 {
				channels = append(channels, key)
				recent += n
			}
		}
		if len(channels) < 2 {
			continue
		}
		sort.Strings(channels)
		out = append(out, CrossChannelTopic{
			CanonicalName:  entry.CanonicalName,
			Channels:       channels,
			ChannelCount:   len(channels),
			TotalMentions:  entry.TotalMentions,
			RecentMentions: recent,
			FirstSeen:      entry.FirstSeen,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ChannelCount != out[j].ChannelCount {
			return out[i].ChannelCount > out[j].ChannelCount
		}
		if out[i].TotalMentions != out[j].TotalMentions {
			return out[i].TotalMentions > out[j].TotalMentions
		}
		return out[i].CanonicalName < out[j].CanonicalName
	})
	return out
}

func copyEntry(entry *Entry) *Entry {
	dup := &Entry{
		CanonicalName: entry.CanonicalName,
		FirstSeen:     entry.FirstSeen,
		TotalMentions: entry.TotalMentions,
		Channels:      make(map[string]*Channel, len(entry.Channels)),
	}
	for key, ch := range entry.Channels {
		c := *ch
		c.Mentions = append([]Mention(nil), ch.Mentions...)
		dup.Channels[key] = &c
	}
	return dup
}
