// Package catalog owns the read-only universe of reference documents that
// topics are ranked against.
//
// Two publication populations exist: a small curated set embedded in the
// binary with hand-chosen keywords, and a large bulk-scraped catalog loaded
// from a JSON file with auto-derived keywords plus optional enriched
// description, year, and topic-category fields. A third list holds in-progress
// projects. The bulk file is optional; when it is missing the store degrades
// to curated-only matching.
//
// A Store is built once with Load and is immutable afterwards, so it may be
// shared across concurrent scoring without locking. Records lacking an
// identifier are skipped at load time with a warning rather than failing the
// load.
package catalog
