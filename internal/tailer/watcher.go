package tailer

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher turns filesystem events on one path into wake-up hints for Wait.
// It watches the parent directory so renames and re-creations of the path
// are seen as well as writes.
type Watcher struct {
	path string
	fsw  *fsnotify.Watcher
	c    chan struct{}
	done chan struct{}
	log  *logrus.Entry
}

// NewWatcher starts watching the directory containing path.
func NewWatcher(path string, logger *logrus.Entry) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	if logger == nil {
		logger = defaults().logger
	}
	w := &Watcher{
		path: abs,
		fsw:  fsw,
		c:    make(chan struct{}, 1),
		done: make(chan struct{}),
		log:  logger.WithField("file", path),
	}
	go w.run()
	return w, nil
}

// C returns the hint channel.  Hints are coalesced: a burst of events
// produces at most one pending value.
func (w *Watcher) C() <-chan struct{} {
	return w.c
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			w.log.WithField("op", ev.Op.String()).Trace("filesystem event")
			select {
			case w.c <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("filesystem watch")
		}
	}
}
