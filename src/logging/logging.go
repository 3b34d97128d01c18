// Package logging builds the structured logger shared by the CLI and core.
package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Prefix tags every diagnostic line.
const Prefix = "whistler"

// New returns a logger writing to w at the named level
// (debug, info, warn, error).
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           lvl,
		ReportTimestamp: false,
	}), nil
}

// ParseLevel accepts the level names charmbracelet/log understands; an empty
// string means warn.
func ParseLevel(level string) (log.Level, error) {
	if level == "" {
		return log.WarnLevel, nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
