// Package alerts matches stored episode summaries against subscriber keyword
// lists.
package alerts
