// Package logger builds the process logger from the logging settings.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"blogengine/config"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// DefaultLevel applies when the configured level is empty or unknown.
const DefaultLevel = zerolog.WarnLevel

// New sets the global level from cfg and returns a logger writing to w.
// Console output is coloured only when w is a terminal.
func New(cfg config.LoggingConf, w io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))
	if !cfg.Enabled {
		return zerolog.Nop()
	}
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime, NoColor: !isTerminal(w)}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level, ignoring case.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil || name == "" {
		return DefaultLevel
	}
	return level
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
