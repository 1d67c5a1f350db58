package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Format selects how log lines are encoded
type Format int

const (
	// FormatAuto picks console output on a terminal and JSON elsewhere
	FormatAuto Format = iota
	FormatJSON
	FormatConsole
)

// New builds a timestamped logger writing to w at the named level.
// An unknown or empty level falls back to info.
func New(w io.Writer, level string, format Format) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if format == FormatAuto {
		format = FormatJSON
		if IsTerminal(w) {
			format = FormatConsole
		}
	}

	out := w
	if format == FormatConsole {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.DateTime,
			NoColor:    !IsTerminal(w),
		}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Level resolves the effective level from the configured name and the
// verbose/debug switches. Debug wins; verbose lowers warn and above to info.
func Level(configured string, verbose, debug bool) string {
	if debug {
		return zerolog.LevelDebugValue
	}
	lvl, err := zerolog.ParseLevel(configured)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if verbose && lvl > zerolog.InfoLevel {
		lvl = zerolog.InfoLevel
	}
	return lvl.String()
}

// IsTerminal reports whether w is a file attached to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
