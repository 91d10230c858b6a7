// Package logging configures charmbracelet/log for gomdfmt and carries a
// logger through a context.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

//nolint:gochecknoglobals // Process-wide default, replaced by the root command.
var defaultLogger atomic.Pointer[log.Logger]

//nolint:gochecknoglobals // Read-only lookup table.
var levels = map[string]log.Level{
	"debug":   log.DebugLevel,
	"info":    log.InfoLevel,
	"warn":    log.WarnLevel,
	"warning": log.WarnLevel,
	"error":   log.ErrorLevel,
}

// ParseLevel maps a level name, in any case, to a log level. Unknown names
// mean info.
func ParseLevel(name string) log.Level {
	if level, ok := levels[strings.ToLower(name)]; ok {
		return level
	}
	return log.InfoLevel
}

// New returns a stderr logger at level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger on w at level. Unless w is a terminal the
// lines are logfmt.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	var opts log.Options
	if !isTerminal(w) {
		opts.Formatter = log.LogfmtFormatter
	}
	logger := log.NewWithOptions(w, opts)
	logger.SetLevel(ParseLevel(level))
	return logger
}

// NewInteractive returns the logger used by commands that talk to a person
// (init, migrate, restore). It follows the default logger's level, and on a
// terminal info lines start with a bullet instead of INFO.
func NewInteractive() *log.Logger {
	logger := NewWithWriter(os.Stderr, "info")
	logger.SetLevel(Default().GetLevel())
	if isTerminal(os.Stderr) {
		styles := log.DefaultStyles()
		styles.Levels[log.InfoLevel] = styles.Levels[log.InfoLevel].SetString("•")
		logger.SetStyles(styles)
	}
	return logger
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Default returns the process-wide logger, creating an info-level one on
// first use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
