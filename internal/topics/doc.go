// Package topics normalizes free-text topic phrases into canonical labels and
// derives the expanded word-sets used for catalog scoring.
//
// Normalization is table-driven: a synonym map folds surface variants
// ("machine learning", "llm", "generative ai") onto one canonical label, and a
// topic-expansion map widens broad terms ("space") with related specific terms
// ("mars", "nasa", "asteroid") so keyword scoring catches indirect matches.
// Both tables are static package data; the functions over them are pure and
// never fail.
//
// The canonical key returned by CanonicalKey is the grouping key the timeline
// tracker uses, so any two raw phrases with the same canonical form are
// tracked as one topic everywhere downstream.
package topics
