// Package influence ranks channels by audience size.
package influence

import "sort"

// Tier buckets a channel's reach.
type Tier string

const (
	TierHigh     Tier = "high"
	TierMedium   Tier = "medium"
	TierEmerging Tier = "emerging"
	TierNiche    Tier = "niche"
)

// Follower thresholds for the tiers.
const (
	highFollowerFloor     = 50000
	mediumFollowerFloor   = 10000
	emergingFollowerFloor = 1000
)

// Source is one channel with a known audience size.
type Source struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Followers int    `json:"followers"`
}

// TierForFollowers maps a follower count to its tier.
func TierForFollowers(followers int) Tier {
	switch {
	case followers >= highFollowerFloor:
		return TierHigh
	case followers >= mediumFollowerFloor:
		return TierMedium
	case followers >= emergingFollowerFloor:
		return TierEmerging
	default:
		return TierNiche
	}
}

// Tier returns the source's tier.
func (s Source) Tier() Tier {
	return TierForFollowers(s.Followers)
}

// SortByInfluence orders sources by follower count descending, name ascending
// on ties.
func SortByInfluence(sources []Source) {
	sort.SliceStable(sources, func(i, j int) bool {
		if sources[i].Followers != sources[j].Followers {
			return sources[i].Followers > sources[j].Followers
		}
		return sources[i].Name < sources[j].Name
	})
}
