package shmqueue

import (
	"math"
	"os"
	"sync/atomic"
	"time"
	"unsafe"
)

// controlBlockSize is the size, in bytes, of the backing file for every
// named primitive. It holds one state word plus one futex-waited
// sequence word, padded out to a page-friendly size the way a ring
// buffer header reserves room beyond its live fields.
const controlBlockSize = 64

// controlBlock is the in-memory layout shared by every named primitive:
// a state word (lock: held/free; event: set/clear) and a sequence word
// that is incremented and futex-woken on every transition a waiter might
// care about.
type controlBlock struct {
	state uint32
	seq   uint32
}

func controlBlockAt(mem []byte) *controlBlock {
	return (*controlBlock)(unsafe.Pointer(&mem[0]))
}

// primitive is the common handle for a named, file-backed, futex-waited
// cross-process object: a counting lock with max count 1, or a
// manual-reset event. Both are the same control block interpreted two
// different ways, in the same spirit as a ring buffer header reusing one
// dataSeq/spaceSeq futex pair for two distinct signaling roles.
type primitive struct {
	path string
	file *os.File
	mem  []byte
}

func (p *primitive) block() *controlBlock {
	return controlBlockAt(p.mem)
}

func (p *primitive) Close() error {
	var firstErr error
	if p.mem != nil {
		if err := munmapFile(p.mem); err != nil && firstErr == nil {
			firstErr = err
		}
		p.mem = nil
	}
	if p.file != nil {
		if err := p.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.file = nil
	}
	return firstErr
}

// createPrimitive creates a brand-new backing file for a named
// primitive, failing with os.ErrExist if one already exists at path.
func createPrimitive(path string) (*primitive, error) {
	file, err := createBackingFile(path, controlBlockSize)
	if err != nil {
		return nil, err
	}
	mem, err := mmapFile(file, controlBlockSize)
	if err != nil {
		file.Close()
		removeBackingFile(path)
		return nil, err
	}
	return &primitive{path: path, file: file, mem: mem}, nil
}

// openPrimitive opens an existing named primitive's backing file.
func openPrimitive(path string) (*primitive, error) {
	file, err := openBackingFile(path)
	if err != nil {
		return nil, err
	}
	mem, err := mmapFile(file, controlBlockSize)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &primitive{path: path, file: file, mem: mem}, nil
}

// countingLock is a cross-process mutual-exclusion primitive with max
// count 1, used for the writer-registration, reader-registration, and
// exclusive-access primitives (`_ws`, `_rs`, `_eas`).
type countingLock struct{ *primitive }

// tryAcquire attempts to take the lock without blocking.
func (l countingLock) tryAcquire() bool {
	return atomic.CompareAndSwapUint32(&l.block().state, 0, 1)
}

// acquire blocks until the lock is free or timeout/cancel fires.
// timeout <= 0 means wait indefinitely.
func (l countingLock) acquire(timeout time.Duration, cancel <-chan struct{}) Status {
	return waitFor(l.tryAcquire, &l.block().seq, timeout, cancel)
}

// release frees the lock and wakes one waiter.
func (l countingLock) release() {
	atomic.StoreUint32(&l.block().state, 0)
	atomic.AddUint32(&l.block().seq, 1)
	futexWake(&l.block().seq, 1)
}

func (l countingLock) held() bool {
	return atomic.LoadUint32(&l.block().state) != 0
}

// manualResetEvent is the manual-reset signal primitive used for
// has-messages, no-messages, and client-connected (`_hme`, `_nme`,
// `_cce`).
type manualResetEvent struct{ *primitive }

func (e manualResetEvent) set() {
	if atomic.SwapUint32(&e.block().state, 1) == 0 {
		atomic.AddUint32(&e.block().seq, 1)
		futexWake(&e.block().seq, math.MaxInt32)
	}
}

func (e manualResetEvent) clear() {
	atomic.StoreUint32(&e.block().state, 0)
}

func (e manualResetEvent) isSet() bool {
	return atomic.LoadUint32(&e.block().state) != 0
}

// wait blocks until the event is set or timeout/cancel fires. timeout
// <= 0 means wait indefinitely.
func (e manualResetEvent) wait(timeout time.Duration, cancel <-chan struct{}) Status {
	return waitFor(e.isSet, &e.block().seq, timeout, cancel)
}

// waitFor composes a condition, a futex sequence word, a timeout and a
// cancel channel into a three-outcome wait (Completed/Timeout/Cancelled):
// each loop iteration re-checks the condition and the cancel channel
// before recomputing the remaining timeout and issuing one futex wait,
// bounded by that remainder and, when a cancel channel is given, by a
// short poll slice. With neither a deadline nor a cancel channel the
// futex wait is unbounded.
func waitFor(cond func() bool, seq *uint32, timeout time.Duration, cancel <-chan struct{}) Status {
	hasDeadline := timeout > 0
	var deadline time.Time
	if hasDeadline {
		deadline = time.Now().Add(timeout)
	}

	for {
		if cond() {
			return Completed
		}

		select {
		case <-cancel:
			return Cancelled
		default:
		}

		var remainingNs int64
		if hasDeadline {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return Timeout
			}
			remainingNs = remaining.Nanoseconds()
		}

		before := atomic.LoadUint32(seq)
		if cond() {
			return Completed
		}

		// With a cancel channel, wait in short slices so a cancel that
		// fires while blocked is seen on the next iteration.
		const cancelPoll = 10 * time.Millisecond
		if cancel != nil && (remainingNs <= 0 || remainingNs > cancelPoll.Nanoseconds()) {
			remainingNs = cancelPoll.Nanoseconds()
		}

		var err error
		if remainingNs > 0 {
			err = futexWaitTimeout(seq, before, remainingNs)
		} else {
			err = futexWait(seq, before)
		}
		switch err {
		case nil, ErrFutexTimeout:
			// Woken, condition changed, or the slice expired; loop back
			// and re-check the condition, cancel and deadline.
		default:
			// futex unsupported on this platform (or another OS-level
			// error): avoid busy-spinning the caller until the deadline.
			time.Sleep(time.Millisecond)
		}
	}
}
