// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logger := logging.Setup(os.Stderr, "warn")
//	logger.Warn("skipping row", "line", 3)
//
// Levels: debug, info, warn, error. The CLI reads the level from the
// --log-level flag or the LOG_LEVEL environment variable.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Levels lists the accepted level names.
var Levels = []string{"debug", "info", "warn", "error"}

// ParseLevel maps a level name to a slog.Level. The empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q: use one of %s", s, strings.Join(Levels, ", "))
}

// New returns a tint logger writing to w. Colors are only used when w is a
// terminal.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}))
}

// Setup installs a logger for the named level as the slog default and
// returns it. Unknown names fall back to info.
func Setup(w io.Writer, levelName string) *slog.Logger {
	level, err := ParseLevel(levelName)
	logger := New(w, level)
	slog.SetDefault(logger)

	if err != nil {
		logger.Warn("falling back to info logging", "error", err)
	}

	return logger
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
