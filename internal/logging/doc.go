// Package logging assembles the structured slog loggers used across sciwatch.
//
// It centralizes level parsing, output routing, and the console/JSON handler
// choice so every component emits records with the same shape, and provides a
// no-op logger for tests and wiring code that cannot fail. Prefer these
// constructors over hand-rolled slog setup.
package logging
