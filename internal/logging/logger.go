package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates the application logger. It writes to stderr so stdout stays
// free for charts and exports, and normalises the "error" key to "err".
func New(level slog.Level) *slog.Logger {
	return NewWriter(os.Stderr, level)
}

func NewWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Level maps the CLI verbosity flag to a slog level.
func Level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
