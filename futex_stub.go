//go:build !linux || !(amd64 || arm64)

package shmqueue

import "github.com/pkg/errors"

// ErrFutexNotSupported is returned by every futex primitive on platforms
// other than linux/amd64 and linux/arm64, where this module's named
// primitives have no backing implementation.
var ErrFutexNotSupported = errors.New("shmqueue: futex operations not supported on this platform")

// ErrFutexTimeout is declared on every platform so callers can compare
// against it uniformly even though the stub never returns it.
var ErrFutexTimeout = errors.New("shmqueue: futex wait timed out")

func futexWait(addr *uint32, val uint32) error {
	return ErrFutexNotSupported
}

func futexWaitTimeout(addr *uint32, val uint32, timeoutNs int64) error {
	return ErrFutexNotSupported
}

func futexWake(addr *uint32, n int) (int, error) {
	return 0, ErrFutexNotSupported
}
