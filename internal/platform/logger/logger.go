package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Components receive it via
// constructor options rather than reaching for a package global.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
