// Package logging assembles structured slog loggers used across pngsafe.
//
// It owns the console and JSON handlers, routes output to the log file and
// optionally stderr, and exposes context helpers so every line emitted during
// a normalization run carries the run identifier. NewNop provides a discarding
// logger for tests and wiring code that cannot fail.
package logging
