//go:build linux && (amd64 || arm64)

package shmqueue

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// createBackingFile creates a new backing file of exactly size bytes at
// path, failing if it already exists — the filesystem-level analogue of
// an "already in use" check for the region and for each named
// primitive's backing file.
func createBackingFile(path string, size int64) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}
	if err := file.Truncate(size); err != nil {
		file.Close()
		os.Remove(path)
		return nil, errors.Wrap(err, "truncate backing file")
	}
	return file, nil
}

// openBackingFile opens an existing backing file for read/write.
func openBackingFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDWR, 0)
}

// mmapFile memory-maps the first size bytes of file, shared across
// processes.
func mmapFile(file *os.File, size int) ([]byte, error) {
	data, err := unix.Mmap(int(file.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrap(err, "mmap")
	}
	return data, nil
}

// munmapFile unmaps a previously mapped region.
func munmapFile(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	return errors.Wrap(unix.Munmap(mem), "munmap")
}

// removeBackingFile removes a named backing file, treating "does not
// exist" as success.
func removeBackingFile(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// isPermissionError reports whether err indicates the OS rejected the
// caller against a backing file's permission bits.
func isPermissionError(err error) bool {
	return errors.Is(err, os.ErrPermission)
}

// isExistError reports whether err indicates a backing file already
// exists (O_EXCL collision).
func isExistError(err error) bool {
	return errors.Is(err, os.ErrExist)
}

// isNotExistError reports whether err indicates a backing file is
// missing.
func isNotExistError(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
