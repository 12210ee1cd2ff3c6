package logger

import (
	"log/slog"
	"os"
)

// Log is the application logger. It is usable before Init.
var Log *slog.Logger = slog.Default()

// Init installs the process logger: JSON at info level in production, text
// at debug level elsewhere.
func Init(production bool) {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	var handler slog.Handler
	if production {
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	Log = slog.New(handler).With("service", "alumni-network")
	slog.SetDefault(Log)
}
