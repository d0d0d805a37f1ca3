package timeline

import (
	"fmt"
	"strings"
	"time"
)

// maxMentionsPerChannel bounds the retained mention history of one channel.
// Totals keep counting past the cap.
const maxMentionsPerChannel = 20

// dateLayout is the on-disk representation of observation dates.
const dateLayout = "2006-01-02"

// Date is a calendar day stored as YYYY-MM-DD in the timeline file.
type Date struct {
	time.Time
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return Date{time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return fmt.Errorf("parse timeline date %q: %w", raw, err)
	}
	d.Time = parsed
	return nil
}

// Mention is one observation of a topic in a channel.
type Mention struct {
	Date    Date   `json:"date"`
	Context string `json:"context,omitempty"`
}

// Channel accumulates the mentions of a topic from one source.
type Channel struct {
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	FirstSeen Date      `json:"first_seen"`
	Total     int       `json:"total_mentions"`
	Mentions  []Mention `json:"mentions"`
}

// Entry is the full cross-channel history of one canonical topic.
type Entry struct {
	CanonicalName string              `json:"canonical_name"`
	FirstSeen     Date                `json:"first_seen"`
	TotalMentions int                 `json:"total_mentions"`
	Channels      map[string]*Channel `json:"channels"`
}

// ChannelKey identifies one source, keyed in the timeline file as
// "type:name".
type ChannelKey struct {
	Type string
	Name string
}

func (k ChannelKey) String() string {
	return k.Type + ":" + k.Name
}

// ParseChannelKey splits a "type:name" channel key. Names may themselves
// contain colons; only the first separates the type.
func ParseChannelKey(s string) (ChannelKey, error) {
	kind, name, ok := strings.Cut(s, ":")
	if !ok || kind == "" || name == "" {
		return ChannelKey{}, fmt.Errorf("malformed channel key %q", s)
	}
	return ChannelKey{Type: kind, Name: name}, nil
}
