// Package logging assembles structured slog loggers for circosgen.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with the run id and the track being built. A no-op logger is provided
// for tests and wiring code that cannot fail.
package logging
