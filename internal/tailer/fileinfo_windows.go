//go:build windows

package tailer

import (
	"os"

	"golang.org/x/sys/windows"
)

// probe on Windows uses the volume serial number and the file index, which
// together play the part of device and inode.
func probe(f *os.File) (fileInfo, error) {
	var fi windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(windows.Handle(f.Fd()), &fi); err != nil {
		return fileInfo{}, &os.PathError{Op: "GetFileInformationByHandle", Path: f.Name(), Err: err}
	}
	return fileInfo{
		ID: Identity{
			Dev: uint64(fi.VolumeSerialNumber),
			Ino: uint64(fi.FileIndexHigh)<<32 | uint64(fi.FileIndexLow),
		},
		Size:    int64(fi.FileSizeHigh)<<32 | int64(fi.FileSizeLow),
		Regular: fi.FileAttributes&windows.FILE_ATTRIBUTE_DIRECTORY == 0,
	}, nil
}
