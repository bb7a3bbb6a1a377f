package tailer

// Status is the outcome of one status check.
type Status int

const (
	// Unchanged means nothing observable happened since the last check.
	Unchanged Status = iota
	// Updated means the open file changed size.
	Updated
	// Truncated means the open file shrank in place (copytruncate).
	Truncated
	// Rotated means path now names a different file, which replaced the
	// open handle.
	Rotated
)

func (s Status) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Updated:
		return "updated"
	case Truncated:
		return "truncated"
	case Rotated:
		return "rotated"
	default:
		return "unknown"
	}
}

// State is a point-in-time copy of a TailedFile's bookkeeping.
type State struct {
	Path        string
	ID          Identity
	Size        int64
	Offset      int64
	Last        Status
	Rotations   int
	Truncations int
	Emitted     int64
}

// Snapshot returns a copy of the follower's current state.  The copy can be
// handed to other goroutines.
func (t *TailedFile) Snapshot() State {
	return State{
		Path:        t.path,
		ID:          t.id,
		Size:        t.size,
		Offset:      t.offset,
		Last:        t.last,
		Rotations:   t.rotations,
		Truncations: t.truncations,
		Emitted:     t.emitted,
	}
}
