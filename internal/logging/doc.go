// Package logging assembles the structured slog loggers used across
// promptcast services.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and standardizes attribute keys so connection handlers and the
// event router tag log lines consistently. A no-op logger is provided for
// tests and wiring code that cannot fail.
package logging
