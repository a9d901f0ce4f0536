// Package logging builds the stderr logger shared by all commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"devkit/internal/appinfo"

	"github.com/charmbracelet/log"
)

// ParseLevel accepts debug, info, warn/warning, error and fatal.
func ParseLevel(level string) (log.Level, error) {
	l := strings.ToLower(strings.TrimSpace(level))
	if l == "warning" {
		l = "warn"
	}
	lvl, err := log.ParseLevel(l)
	if err != nil {
		return log.WarnLevel, fmt.Errorf("log level %q: %w", level, err)
	}
	return lvl, nil
}

// New returns a key/value logger writing to w (stderr when nil). Timestamps
// are only shown at debug level.
func New(w io.Writer, level string) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := ParseLevel(level)
	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          appinfo.Name,
		ReportTimestamp: lvl <= log.DebugLevel,
		TimeFormat:      "15:04:05",
	})
	return logger, err
}

// Discard drops everything; tests and library callers use it as a default.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
