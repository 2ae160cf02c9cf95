// Package logging builds the zerolog loggers used by mailprep.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// TimeFormat is the timestamp layout written to the log.
const TimeFormat = "2006-01-02 15:04:05"

// New returns a leveled, timestamped text logger writing to w.
func New(w io.Writer, level string) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: TimeFormat,
	}
	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Open returns a logger appending to the file at path. When the file
// cannot be opened the logger writes to stderr instead and the open
// error is logged as a warning; the returned closer is always safe to
// call.
func Open(path, level string) (zerolog.Logger, io.Closer) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logger := New(os.Stderr, level)
		logger.Warn().Err(err).Str("path", path).Msg("log file unavailable, logging to stderr")
		return logger, nopCloser{}
	}
	return New(f, level), f
}

// ParseLevel maps a level name to a zerolog level. Unknown names map
// to debug.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.DebugLevel
	}
	return lvl
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
