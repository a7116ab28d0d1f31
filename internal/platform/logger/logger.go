package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Services receive it by
// injection; nothing in this codebase logs through a package global.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
