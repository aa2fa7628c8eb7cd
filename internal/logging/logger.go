// Package logging builds the structured logger shared by the worklog
// packages. Components take a *slog.Logger and treat nil as "discard".
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w. Verbose lowers the level from
// Warn to Debug, which surfaces every line the parsers skip.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// OrDiscard returns l, or a logger that drops everything when l is nil
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
