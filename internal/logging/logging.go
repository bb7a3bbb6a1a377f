// Package logging builds the logrus logger used by tail-chaser.  Logs go to
// stderr (or a file) so they never mix with the followed text on stdout.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Config selects level, format and destination.
type Config struct {
	Level  string // logrus level name, e.g. "warn"
	Format string // "text" or "json"
	File   string // empty means Fallback
	// Fallback is used when File is empty.  Nil means stderr.
	Fallback io.Writer
}

// New returns a configured logger.  The returned close function releases
// the log file, if one was opened, and is never nil.
func New(cfg Config) (*logrus.Logger, func() error, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var formatter logrus.Formatter
	switch cfg.Format {
	case "", "text":
		formatter = &logrus.TextFormatter{FullTimestamp: true}
	case "json":
		formatter = &logrus.JSONFormatter{}
	default:
		return nil, nil, fmt.Errorf("log format %q: must be text or json", cfg.Format)
	}

	out := cfg.Fallback
	if out == nil {
		out = os.Stderr
	}
	closeFn := func() error { return nil }
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(formatter)
	logger.SetOutput(out)
	return logger, closeFn, nil
}
