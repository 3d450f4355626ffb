//go:build !linux || !(amd64 || arm64)

package shmqueue

import "os"

func createBackingFile(path string, size int64) (*os.File, error) {
	return nil, ErrFutexNotSupported
}

func openBackingFile(path string) (*os.File, error) {
	return nil, ErrFutexNotSupported
}

func mmapFile(file *os.File, size int) ([]byte, error) {
	return nil, ErrFutexNotSupported
}

func munmapFile(mem []byte) error {
	return ErrFutexNotSupported
}

func removeBackingFile(path string) error {
	return ErrFutexNotSupported
}

func isPermissionError(err error) bool { return false }
func isExistError(err error) bool      { return false }
func isNotExistError(err error) bool   { return false }
