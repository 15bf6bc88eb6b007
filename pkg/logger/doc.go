// Package logger builds the slog logger used for diagnostics. Output goes to
// the given writer as text or JSON, at a configurable level.
package logger
