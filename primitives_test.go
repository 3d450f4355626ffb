//go:build linux && (amd64 || arm64)

package shmqueue

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrimitive(t *testing.T) *primitive {
	t.Helper()
	path := filepath.Join(t.TempDir(), "primitive")
	p, err := createPrimitive(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		p.Close()
		os.Remove(path)
	})
	return p
}

func TestCountingLockTryAcquireIsExclusive(t *testing.T) {
	l := countingLock{newTestPrimitive(t)}

	assert.True(t, l.tryAcquire())
	assert.False(t, l.tryAcquire())
	l.release()
	assert.True(t, l.tryAcquire())
}

func TestCountingLockAcquireBlocksUntilReleased(t *testing.T) {
	l := countingLock{newTestPrimitive(t)}
	require.True(t, l.tryAcquire())

	done := make(chan Status, 1)
	go func() {
		done <- l.acquire(0, nil)
	}()

	time.Sleep(20 * time.Millisecond)
	l.release()

	select {
	case st := <-done:
		assert.Equal(t, Completed, st)
	case <-time.After(time.Second):
		t.Fatal("acquire never woke up after release")
	}
}

func TestCountingLockAcquireTimesOut(t *testing.T) {
	l := countingLock{newTestPrimitive(t)}
	require.True(t, l.tryAcquire())

	st := l.acquire(20*time.Millisecond, nil)
	assert.Equal(t, Timeout, st)
}

func TestCountingLockAcquireCancels(t *testing.T) {
	l := countingLock{newTestPrimitive(t)}
	require.True(t, l.tryAcquire())

	cancel := make(chan struct{})
	done := make(chan Status, 1)
	go func() { done <- l.acquire(0, cancel) }()

	time.Sleep(10 * time.Millisecond)
	close(cancel)

	select {
	case st := <-done:
		assert.Equal(t, Cancelled, st)
	case <-time.After(time.Second):
		t.Fatal("acquire never observed cancellation")
	}
}

func TestManualResetEventSetIsSticky(t *testing.T) {
	e := manualResetEvent{newTestPrimitive(t)}

	assert.False(t, e.isSet())
	e.set()
	assert.True(t, e.isSet())
	e.set() // idempotent
	assert.True(t, e.isSet())
	e.clear()
	assert.False(t, e.isSet())
}

func TestManualResetEventWaitWakesOnSet(t *testing.T) {
	e := manualResetEvent{newTestPrimitive(t)}

	done := make(chan Status, 1)
	go func() { done <- e.wait(0, nil) }()

	time.Sleep(20 * time.Millisecond)
	e.set()

	select {
	case st := <-done:
		assert.Equal(t, Completed, st)
	case <-time.After(time.Second):
		t.Fatal("wait never woke up after set")
	}
}
