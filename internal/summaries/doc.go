// Package summaries persists episode summaries together with their extracted
// topics and catalog matches, backed by SQLite.
//
// One row is one episode of one channel. Re-ingesting the same episode
// updates the existing row instead of duplicating it, so feeds can be
// re-processed safely.
package summaries
