package shmqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateGrowsHighWaterMark(t *testing.T) {
	r := newMemRegion(1024)
	h := r.Header()

	offset, status := allocate(r, &h, 32)
	require.Equal(t, Completed, status)
	assert.Equal(t, int64(HeaderSize), offset)
}

func TestAllocateOutOfSpace(t *testing.T) {
	r := newMemRegion(HeaderSize + NodeSize + 8)
	h := r.Header()

	_, status := allocate(r, &h, 100)
	assert.Equal(t, OutOfSpace, status)
}

func TestAllocateExactMatchReuse(t *testing.T) {
	r := newMemRegion(4096)
	h := r.Header()
	h.TotalSpace = 256
	h.FreeListNode = 48
	r.SetNode(48, Node{Next: noNode, Length: 32})

	offset, status := allocate(r, &h, 32)
	require.Equal(t, Completed, status)
	assert.Equal(t, int64(48), offset)
	assert.Equal(t, noNode, h.FreeListNode)
}

func TestAllocateSplitsLargeFreeNode(t *testing.T) {
	r := newMemRegion(4096)
	h := r.Header()
	h.TotalSpace = 256
	h.FreeListNode = 48
	r.SetNode(48, Node{Next: noNode, Length: 100})

	offset, status := allocate(r, &h, 16)
	require.Equal(t, Completed, status)
	assert.Equal(t, int64(48), offset)

	// remainder: 100 - 16 - 16 = 68 bytes, at offset 48+16+16=80
	remaining := r.Node(80)
	assert.Equal(t, int64(68), remaining.Length)
	assert.Equal(t, noNode, remaining.Next)
	assert.Equal(t, int64(80), h.FreeListNode)
}

func TestAllocateRightmostNodeCanExtend(t *testing.T) {
	r := newMemRegion(4096)
	h := r.Header()
	h.TotalSpace = 48 + NodeSize + 16 // one active-turned-free rightmost node
	h.FreeListNode = 48
	r.SetNode(48, Node{Next: noNode, Length: 16})

	// Requesting more than the rightmost node currently holds is allowed:
	// it is the region's growable edge.
	offset, status := allocate(r, &h, 40)
	require.Equal(t, Completed, status)
	assert.Equal(t, int64(48), offset)
}

func TestFreeStandaloneNode(t *testing.T) {
	r := newMemRegion(4096)
	h := r.Header()
	h.TotalSpace = 300

	free(r, &h, 96, NodeSize+32)

	assert.Equal(t, int64(96), h.FreeListNode)
	assert.Equal(t, Node{Next: noNode, Length: 32}, r.Node(96))
}

func TestFreeCoalescesWithPrevAndNext(t *testing.T) {
	r := newMemRegion(4096)
	h := r.Header()
	h.TotalSpace = 400

	// prev free node: [48, 48+16+16) = [48,80)
	r.SetNode(48, Node{Next: 112, Length: 16})
	// next free node starts at 112: [112, 112+16+8) = [112,136)
	r.SetNode(112, Node{Next: noNode, Length: 8})
	h.FreeListNode = 48

	// freed extent exactly fills the gap [80,112)
	free(r, &h, 80, 112-80)

	prev := r.Node(48)
	assert.Equal(t, noNode, prev.Next)
	// merged length: 16 (prev payload) + (112-80) + 16 (next descriptor) + 8 (next payload)
	assert.Equal(t, int64(16+(112-80)+NodeSize+8), prev.Length)
}

func TestFreeInsertsBeforeNonAdjacentNext(t *testing.T) {
	r := newMemRegion(4096)
	h := r.Header()
	h.TotalSpace = 400

	r.SetNode(200, Node{Next: noNode, Length: 8})
	h.FreeListNode = 200

	// freed extent [96, 96+16+40) = [96,152), abuts nothing before it but
	// nothing after either (152 != 200), so this should NOT join next.
	free(r, &h, 96, NodeSize+40)

	assert.Equal(t, Node{Next: 200, Length: 40}, r.Node(96))
	assert.Equal(t, int64(96), h.FreeListNode)
}

func TestFreeJoinsOnlyNext(t *testing.T) {
	r := newMemRegion(4096)
	h := r.Header()
	h.TotalSpace = 400

	// next free node starts exactly where the freed extent ends.
	r.SetNode(112, Node{Next: noNode, Length: 8})
	h.FreeListNode = 112

	free(r, &h, 80, 112-80)

	assert.Equal(t, Node{Next: noNode, Length: (112 - 80) + 8}, r.Node(80))
	assert.Equal(t, int64(80), h.FreeListNode)
}
