// Package sloghandler provides a log/slog.Handler that renders records
// through a formatter.Formatter, allowing the layouts to serve as the
// output format for the standard library's structured logging.
package sloghandler
