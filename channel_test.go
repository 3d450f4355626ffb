//go:build linux && (amd64 || arm64)

package shmqueue

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueChannelName(t *testing.T) string {
	t.Helper()
	return fmt.Sprintf("shmqueue-test-%d-%s", os.Getpid(), t.Name())
}

func cleanupChannelFiles(t *testing.T, name string) {
	t.Helper()
	t.Cleanup(func() {
		for _, p := range allPrimitivePaths(Local, name) {
			os.Remove(p)
		}
	})
}

func TestCreateOutboundThenOpenInboundRoundTrip(t *testing.T) {
	name := uniqueChannelName(t)
	cleanupChannelFiles(t, name)

	writer, err := CreateOutbound(name, DefaultCapacity, Local)
	require.NoError(t, err)
	defer writer.Close()

	reader, err := OpenInbound(name, Local)
	require.NoError(t, err)
	defer reader.Close()

	payload := []byte("hello")
	state, status := writer.Write(int64(len(payload)), 0, nil, func(window []byte) Status {
		copy(window, payload)
		return Completed
	})
	require.Equal(t, Completed, status)
	assert.Equal(t, int64(1), state.ActiveNodes)

	var got []byte
	state, status = reader.Read(0, nil, func(window []byte) Status {
		got = append(got, window...)
		return Completed
	})
	require.Equal(t, Completed, status)
	assert.Equal(t, payload, got)
	assert.Equal(t, int64(0), state.ActiveNodes)
}

func TestCreateOutboundTwiceReportsAlreadyInUse(t *testing.T) {
	name := uniqueChannelName(t)
	cleanupChannelFiles(t, name)

	writer, err := CreateOutbound(name, DefaultCapacity, Local)
	require.NoError(t, err)
	defer writer.Close()

	_, err = CreateOutbound(name, DefaultCapacity, Local)
	status, ok := AsStatus(err)
	require.True(t, ok)
	assert.Equal(t, ObjectAlreadyInUse, status)
}

func TestOpenOutboundTwiceReportsAlreadyInUse(t *testing.T) {
	name := uniqueChannelName(t)
	cleanupChannelFiles(t, name)

	writer, err := CreateOutbound(name, DefaultCapacity, Local)
	require.NoError(t, err)
	defer writer.Close()

	second, err := OpenOutbound(name, Local)
	if err == nil {
		second.Close()
		t.Fatal("expected ObjectAlreadyInUse, got nil error")
	}
	status, ok := AsStatus(err)
	require.True(t, ok)
	assert.Equal(t, ObjectAlreadyInUse, status)
}

func TestOpenNonexistentChannelReportsObjectDoesNotExist(t *testing.T) {
	name := uniqueChannelName(t)

	_, err := OpenOutbound(name, Local)
	status, ok := AsStatus(err)
	require.True(t, ok)
	assert.Equal(t, ObjectDoesNotExist, status)
}

func TestWaitHasMessagesWakesAfterWrite(t *testing.T) {
	name := uniqueChannelName(t)
	cleanupChannelFiles(t, name)

	writer, err := CreateOutbound(name, DefaultCapacity, Local)
	require.NoError(t, err)
	defer writer.Close()

	reader, err := OpenInbound(name, Local)
	require.NoError(t, err)
	defer reader.Close()

	done := make(chan Status, 1)
	go func() { done <- reader.WaitHasMessages(time.Second, nil) }()

	time.Sleep(20 * time.Millisecond)
	_, status := writer.Write(4, 0, nil, func(window []byte) Status {
		copy(window, []byte("ping"))
		return Completed
	})
	require.Equal(t, Completed, status)

	select {
	case st := <-done:
		assert.Equal(t, Completed, st)
	case <-time.After(2 * time.Second):
		t.Fatal("WaitHasMessages never woke up after Write")
	}
}

func TestOpenSetsClientConnected(t *testing.T) {
	name := uniqueChannelName(t)
	cleanupChannelFiles(t, name)

	writer, err := CreateOutbound(name, DefaultCapacity, Local)
	require.NoError(t, err)
	defer writer.Close()

	assert.Equal(t, Timeout, writer.WaitClientConnected(10*time.Millisecond, nil))

	reader, err := OpenInbound(name, Local)
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, Completed, writer.WaitClientConnected(time.Second, nil))
}
