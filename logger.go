package easyfont

import (
	"log/slog"

	"github.com/gogpu/easyfont/internal/logging"
)

// SetLogger configures the logger for easyfont and all its sub-packages.
// By default, easyfont produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by easyfont:
//   - [slog.LevelDebug]: atlas size, truncation, staged instance counts
//   - [slog.LevelInfo]: the font source that was chosen
//   - [slog.LevelWarn]: characters replaced by the placeholder glyph
//
// Example:
//
//	easyfont.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by easyfont.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
