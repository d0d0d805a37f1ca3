// Package engine orchestrates topic matching end to end: canonicalize each
// incoming topic, rank catalog candidates, escalate weak results to the
// oracle, and book the mention into the timeline.
//
// Batches fan out across a bounded worker group; results come back in input
// order regardless of completion order.
package engine
