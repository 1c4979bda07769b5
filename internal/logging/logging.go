package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// Options configures the process logger.
type Options struct {
	Verbose bool // debug level
	NoColor bool
}

// New returns a tinted slog logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    opts.NoColor,
	}))
}

// Setup installs the logger on stderr as the slog default.
func Setup(opts Options) *slog.Logger {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		opts.NoColor = true
	}
	logger := New(os.Stderr, opts)
	slog.SetDefault(logger)
	return logger
}
