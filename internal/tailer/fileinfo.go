package tailer

import "fmt"

// Identity tells file instances apart: two handles with the same Identity
// refer to the same file on disk, whatever path they were opened through.
type Identity struct {
	Dev uint64
	Ino uint64
}

func (id Identity) String() string {
	return fmt.Sprintf("%d:%d", id.Dev, id.Ino)
}

// fileInfo is what a probe of an open handle reports.
type fileInfo struct {
	ID      Identity
	Size    int64
	Regular bool
}
