// Package tailer follows a single growing file by polling it.  A TailedFile
// remembers the identity and size of the file it has open and, on every
// cycle, decides whether the file grew, was truncated in place, was replaced
// by a new file at the same path (rotation), or did not change at all.
//
// A TailedFile is not safe for concurrent use.  The host drives it from one
// goroutine:
//
//	for {
//		if err := t.Follow(); err != nil {
//			return err
//		}
//		if err := t.Wait(ctx); err != nil {
//			return nil
//		}
//	}
package tailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrNotRegular is returned by New when path names a directory or another
// non-regular file.
var ErrNotRegular = errors.New("not a regular file")

// TailedFile owns an open handle on the followed file together with the
// last metadata observed for it.
type TailedFile struct {
	path string
	file *os.File
	id   Identity
	size int64

	// changed is the last time the size moved (or the handle was swapped).
	changed time.Time

	// offset is the next byte read from file.
	offset int64

	delay     time.Duration
	threshold time.Duration
	out       io.Writer
	notify    <-chan struct{}
	now       func() time.Time
	log       *logrus.Entry

	last        Status
	rotations   int
	truncations int
	emitted     int64
}

// New opens path and positions the follower at its current end, so only
// content appended afterwards is emitted.
func New(path string, opts ...Option) (*TailedFile, error) {
	o := defaults()
	for _, opt := range opts {
		opt(&o)
	}

	f, info, err := open(path)
	if err != nil {
		return nil, err
	}

	t := &TailedFile{
		path:      path,
		file:      f,
		id:        info.ID,
		size:      info.Size,
		changed:   o.now(),
		offset:    info.Size,
		delay:     o.pollInterval,
		threshold: o.rotateAfter,
		out:       o.out,
		notify:    o.notify,
		now:       o.now,
		log:       o.logger.WithField("file", path),
	}
	t.log.WithFields(logrus.Fields{
		"id":     info.ID,
		"offset": info.Size,
	}).Debug("following file")
	return t, nil
}

// open opens path read-only and probes the handle.  The returned file is
// closed again on any error.
func open(path string) (*os.File, fileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fileInfo{}, fmt.Errorf("open: %w", err)
	}
	info, err := probe(f)
	if err != nil {
		f.Close()
		return nil, fileInfo{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Regular {
		f.Close()
		return nil, fileInfo{}, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}
	return f, info, nil
}

// Path returns the path given to New.
func (t *TailedFile) Path() string { return t.path }

// Offset returns the position the next Read starts from.
func (t *TailedFile) Offset() int64 { return t.offset }

// SetDelay changes the poll interval used by Sleep and Wait.
func (t *TailedFile) SetDelay(d time.Duration) { t.delay = d }

// Close releases the open handle.
func (t *TailedFile) Close() error {
	if t.file == nil {
		return nil
	}
	err := t.file.Close()
	t.file = nil
	return err
}

// CheckUpdates probes the open handle and classifies what happened since the
// previous probe.  Stored size and identity are refreshed accordingly; on
// Rotated the freshly opened file replaces the current handle.  The offset is
// left alone, see UpdateStatus.
func (t *TailedFile) CheckUpdates() (Status, error) {
	current := t.now()

	info, err := probe(t.file)
	if err != nil {
		return Unchanged, fmt.Errorf("stat %s: %w", t.path, err)
	}

	if info.Size != t.size && info.ID == t.id {
		status := Updated
		if info.Size < t.size || info.Size < t.offset {
			status = Truncated
		}
		t.size = info.Size
		t.changed = current
		return status, nil
	}

	if info.Size != t.size || current.Sub(t.changed) <= t.threshold {
		return Unchanged, nil
	}

	// Quiet for longer than the threshold: see whether path still names the
	// file we have open.
	f, fresh, err := open(t.path)
	if err != nil {
		return Unchanged, fmt.Errorf("reopen: %w", err)
	}
	if fresh.ID == t.id {
		f.Close()
		t.log.WithField("id", fresh.ID).Trace("path still names the open file")
		return Unchanged, nil
	}

	old := t.file
	t.file = f
	t.id = fresh.ID
	t.size = fresh.Size
	t.changed = current
	if err := old.Close(); err != nil {
		t.log.WithError(err).Warn("closing rotated file")
	}
	return Rotated, nil
}

// UpdateStatus runs CheckUpdates and moves the offset.  consumed is the
// number of bytes the caller took from the last Read; it is added to the
// offset unless the file was truncated or rotated, in which case reading
// restarts at the beginning.
func (t *TailedFile) UpdateStatus(consumed int64) (Status, error) {
	status, err := t.CheckUpdates()
	if err != nil {
		return status, err
	}

	switch status {
	case Unchanged, Updated:
		t.offset += consumed
		if t.offset > t.size {
			t.offset = t.size
		}
	case Truncated:
		t.offset = 0
		t.truncations++
	case Rotated:
		t.offset = 0
		t.rotations++
	}
	t.last = status

	entry := t.log.WithFields(logrus.Fields{
		"size":   t.size,
		"offset": t.offset,
	})
	switch status {
	case Updated:
		entry.Debug("file grew")
	case Truncated:
		entry.Info("file truncated, reading from start")
	case Rotated:
		entry.WithField("id", t.id).Info("file rotated, reading new file from start")
	}
	return status, nil
}

// Read returns everything between the offset and the end of the open file.
// It never moves the offset, so calling it twice without a write in between
// returns the same bytes.
func (t *TailedFile) Read() ([]byte, error) {
	if _, err := t.file.Seek(t.offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s: %w", t.path, err)
	}
	data, err := io.ReadAll(t.file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.path, err)
	}
	return data, nil
}

// Follow runs one poll cycle: read what is new, update the status and write
// the text to the output.  Invalid UTF-8 fails with a *DecodeError and leaves
// the state untouched.
func (t *TailedFile) Follow() error {
	data, err := t.Read()
	if err != nil {
		return err
	}

	text, err := decode(data, t.offset)
	if err != nil {
		return fmt.Errorf("%s: %w", t.path, err)
	}

	status, err := t.UpdateStatus(int64(len(text)))
	if err != nil {
		return err
	}
	if held := len(data) - len(text); held > 0 && (status == Truncated || status == Rotated) {
		t.log.WithFields(logrus.Fields{
			"bytes":  held,
			"status": status.String(),
		}).Warn("dropping incomplete UTF-8 sequence at end of previous file")
	}
	if len(text) == 0 {
		return nil
	}

	n, err := t.out.Write(text)
	t.emitted += int64(n)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Sleep blocks for the poll interval.
func (t *TailedFile) Sleep() {
	time.Sleep(t.delay)
}

// Wait is Sleep with an early exit: it returns nil when the poll interval
// elapses or a notify hint arrives, and ctx.Err() when ctx is done.
func (t *TailedFile) Wait(ctx context.Context) error {
	timer := time.NewTimer(t.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	case <-t.notify:
	}
	return nil
}
