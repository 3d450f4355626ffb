package shmqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMappedRegionRejectsUndersizedMapping(t *testing.T) {
	_, err := newMappedRegion(make([]byte, HeaderSize-1))
	assert.ErrorIs(t, err, ErrRegionTooSmall)
}

func TestNewMappedRegionFormatsHeaderOnFormat(t *testing.T) {
	mem := make([]byte, 4096)
	r, err := newMappedRegion(mem)
	require.NoError(t, err)

	r.hdrView().format(4096)
	h := r.Header()
	assert.Equal(t, int64(4096), h.Capacity)
	assert.Equal(t, int64(HeaderSize), h.TotalSpace)
	assert.Equal(t, noNode, h.HeadNode)
}

func TestMemRegionAndMappedRegionAgree(t *testing.T) {
	capacity := int64(4096)
	mem := newMemRegion(capacity)

	backing := make([]byte, capacity)
	mapped, err := newMappedRegion(backing)
	require.NoError(t, err)
	mapped.hdrView().format(capacity)

	h := Header{Capacity: capacity, TotalSpace: 200, ActiveNodes: 2, HeadNode: 48, TailNode: 96, FreeListNode: noNode}
	mem.SetHeader(h)
	mapped.SetHeader(h)
	assert.Equal(t, mem.Header(), mapped.Header())

	n := Node{Next: 96, Length: 40}
	mem.SetNode(48, n)
	mapped.SetNode(48, n)
	assert.Equal(t, mem.Node(48), mapped.Node(48))
}
