package lume

import (
	"log/slog"

	"github.com/gogpu/lume/backend"
)

// SetLogger configures logging for lume and all its sub-packages. By
// default nothing is logged. Pass nil to restore the silent default.
//
// Example:
//
//	lume.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//		Level: slog.LevelDebug,
//	})))
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	backend.SetLogger(l)
}

// Logger returns the current shared logger.
func Logger() *slog.Logger {
	return backend.Logger()
}
