package tailer

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultPollInterval is the delay between two poll cycles.
	DefaultPollInterval = 100 * time.Millisecond

	// DefaultRotateAfter is how long the size must stay unchanged before the
	// path is re-opened to look for a rotated file.
	DefaultRotateAfter = 5 * time.Second
)

// Option configures a TailedFile.
type Option func(*options)

type options struct {
	pollInterval time.Duration
	rotateAfter  time.Duration
	out          io.Writer
	notify       <-chan struct{}
	now          func() time.Time
	logger       *logrus.Entry
}

func defaults() options {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return options{
		pollInterval: DefaultPollInterval,
		rotateAfter:  DefaultRotateAfter,
		out:          os.Stdout,
		now:          time.Now,
		logger:       logrus.NewEntry(discard),
	}
}

// WithPollInterval sets the delay used by Sleep and Wait.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		o.pollInterval = d
	}
}

// WithRotateAfter sets the quiet period after which the path is re-opened to
// detect rotation.
func WithRotateAfter(d time.Duration) Option {
	return func(o *options) {
		o.rotateAfter = d
	}
}

// WithOutput sets where followed text is written.  Default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

/*
WithNotify gives Wait a channel that signals the file may have changed, so
the next cycle runs without waiting for the full poll interval.  A Watcher
provides one; polling still runs when no hint arrives.
*/
func WithNotify(ch <-chan struct{}) Option {
	return func(o *options) {
		o.notify = ch
	}
}

// WithClock replaces time.Now for the rotation threshold.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithLogger sets the logger.  By default nothing is logged.
func WithLogger(l *logrus.Entry) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
