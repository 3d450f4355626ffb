//go:build linux && (amd64 || arm64)

package shmqueue

import (
	"sync/atomic"
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
)

// Linux futex constants, per futex(2). These are the shared (non-private)
// operations: the futex words live in MAP_SHARED file mappings and the
// waiter and the waker may be in different processes.
const (
	futexWaitShared = 0 // FUTEX_WAIT
	futexWakeShared = 1 // FUTEX_WAKE
)

// ErrFutexTimeout is returned by futexWaitTimeout when the wait times out.
var ErrFutexTimeout = errors.New("shmqueue: futex wait timed out")

// futexWait blocks until *addr no longer equals val or another thread
// wakes this address. Callers must re-check their condition after this
// returns: spurious wakeups are possible and expected.
func futexWait(addr *uint32, val uint32) error {
	// Re-check before entering the syscall: otherwise a wake that lands
	// between the caller's snapshot and this call is lost.
	if atomic.LoadUint32(addr) != val {
		return nil
	}

	_, _, errno := syscall.RawSyscall6(
		syscall.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWaitShared,
		uintptr(val),
		0,
		0,
		0,
	)
	if errno != 0 && errno != syscall.EAGAIN && errno != syscall.EINTR {
		return errors.Wrap(errno, "futex wait")
	}
	return nil
}

// futexWaitTimeout is futexWait bounded by timeoutNs nanoseconds. It
// returns ErrFutexTimeout when the wait expires without a wake.
func futexWaitTimeout(addr *uint32, val uint32, timeoutNs int64) error {
	if timeoutNs <= 0 {
		return futexWait(addr, val)
	}
	if atomic.LoadUint32(addr) != val {
		return nil
	}

	ts := syscall.Timespec{Sec: timeoutNs / 1e9, Nsec: timeoutNs % 1e9}

	_, _, errno := syscall.RawSyscall6(
		syscall.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWaitShared,
		uintptr(val),
		uintptr(unsafe.Pointer(&ts)),
		0,
		0,
	)
	switch errno {
	case 0, syscall.EAGAIN, syscall.EINTR:
		return nil
	case syscall.ETIMEDOUT:
		return ErrFutexTimeout
	default:
		return errors.Wrap(errno, "futex wait")
	}
}

// futexWake wakes up to n waiters blocked on addr, returning how many it
// actually woke.
func futexWake(addr *uint32, n int) (int, error) {
	r1, _, errno := syscall.RawSyscall6(
		syscall.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWakeShared,
		uintptr(n),
		0,
		0,
		0,
	)
	if errno != 0 {
		return 0, errors.Wrap(errno, "futex wake")
	}
	return int(r1), nil
}
