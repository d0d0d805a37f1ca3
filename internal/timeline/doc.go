// Package timeline persists the first-seen and mention history of every
// canonical topic across channels.
//
// A channel is one concrete source a topic was observed in, identified by a
// "type:name" pair such as "podcast:Science Friday" or "feed:arxiv-cs". The
// tracker groups observations under the canonical topic key, so synonym
// variants of the same topic accumulate into a single entry. Per channel only
// the most recent mentions are retained; the running totals are kept
// separately and never truncated.
//
// The timeline lives in a single JSON file guarded by a file lock, so
// concurrent invocations on the same data directory cannot interleave writes.
package timeline
