//go:build unix

package tailer

import (
	"os"

	"golang.org/x/sys/unix"
)

func probe(f *os.File) (fileInfo, error) {
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return fileInfo{}, &os.PathError{Op: "fstat", Path: f.Name(), Err: err}
	}
	return fileInfo{
		ID: Identity{
			Dev: uint64(st.Dev),
			Ino: uint64(st.Ino),
		},
		Size:    st.Size,
		Regular: st.Mode&unix.S_IFMT == unix.S_IFREG,
	}, nil
}
