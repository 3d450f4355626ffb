package shmqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderRoundTrip(t *testing.T) {
	r := newMemRegion(4096)

	got := r.Header()
	assert.Equal(t, Header{
		Capacity:     4096,
		TotalSpace:   HeaderSize,
		ActiveNodes:  0,
		HeadNode:     noNode,
		TailNode:     noNode,
		FreeListNode: noNode,
	}, got)

	want := Header{
		Capacity:     4096,
		TotalSpace:   200,
		ActiveNodes:  3,
		HeadNode:     48,
		TailNode:     120,
		FreeListNode: 64,
	}
	r.SetHeader(want)
	assert.Equal(t, want, r.Header())
}

func TestNodeRoundTrip(t *testing.T) {
	r := newMemRegion(4096)

	want := Node{Next: 96, Length: 32}
	r.SetNode(48, want)
	assert.Equal(t, want, r.Node(48))

	assert.Equal(t, int64(4096), r.Len())
}

func TestNodeRoundTripAtUnalignedOffset(t *testing.T) {
	r := newMemRegion(4096)

	// A 5-byte payload leaves the next node descriptor at offset 69,
	// which is not a multiple of 8.
	want := Node{Next: -1, Length: 7}
	r.SetNode(69, want)
	assert.Equal(t, want, r.Node(69))
}
