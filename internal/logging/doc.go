// Package logging assembles structured slog loggers and formatting helpers used
// across biblioteca commands.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes helpers so command code can tag log lines with a
// component and the run identifier of the current invocation. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
//
// Logs go to stderr by default; stdout is reserved for command results.
package logging
