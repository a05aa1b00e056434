// Package logging builds the diagnostic logger shared by the trinity commands.
//
// Diagnostics go to stderr and never mix with command output on stdout.
// Without verbose mode the logger discards everything.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w at debug level when verbose is set,
// or a silent logger otherwise.
func New(w io.Writer, verbose bool) *slog.Logger {
	if !verbose || w == nil {
		return Discard()
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
