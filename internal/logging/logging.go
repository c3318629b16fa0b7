// Package logging builds the zerolog loggers used across badbasic.
package logging

import (
	"io"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/thomasrohde/badbasic/pkg/config"
)

// New builds a logger writing to w. An unknown level falls back to info.
func New(w io.Writer, cfg config.LogConfig, component string) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if cfg.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, NoColor: !isTerminal(w)}
	}
	return zerolog.New(w).
		With().Timestamp().Str("component", component).Logger().
		Level(level)
}

// Nop returns a disabled logger.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

type fdWriter interface {
	Fd() uintptr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
