package shmqueue

import (
	"encoding/binary"
	"sync/atomic"
)

// Region layout constants.
const (
	// HeaderSize is the fixed size, in bytes, of the region header.
	HeaderSize = 48

	// NodeSize is the fixed size, in bytes, of a node descriptor.
	NodeSize = 16

	// noNode is the sentinel offset meaning "no such node".
	noNode int64 = -1
)

// Header mirrors the 48-byte header block at region offset 0: six
// little-endian signed 64-bit fields in a fixed order.
type Header struct {
	Capacity      int64
	TotalSpace    int64
	ActiveNodes   int64
	HeadNode      int64
	TailNode      int64
	FreeListNode  int64
}

// headerView is a typed, atomic-field view over the first HeaderSize
// bytes of a mapped region: every field access goes through sync/atomic
// so that a reader mid-scan of a header written by the other process
// never observes a torn field.
type headerView struct {
	capacity     int64
	totalSpace   int64
	activeNodes  int64
	headNode     int64
	tailNode     int64
	freeListNode int64
}

func (h *headerView) read() Header {
	return Header{
		Capacity:     atomic.LoadInt64(&h.capacity),
		TotalSpace:   atomic.LoadInt64(&h.totalSpace),
		ActiveNodes:  atomic.LoadInt64(&h.activeNodes),
		HeadNode:     atomic.LoadInt64(&h.headNode),
		TailNode:     atomic.LoadInt64(&h.tailNode),
		FreeListNode: atomic.LoadInt64(&h.freeListNode),
	}
}

func (h *headerView) write(hdr Header) {
	atomic.StoreInt64(&h.capacity, hdr.Capacity)
	atomic.StoreInt64(&h.totalSpace, hdr.TotalSpace)
	atomic.StoreInt64(&h.activeNodes, hdr.ActiveNodes)
	atomic.StoreInt64(&h.headNode, hdr.HeadNode)
	atomic.StoreInt64(&h.tailNode, hdr.TailNode)
	atomic.StoreInt64(&h.freeListNode, hdr.FreeListNode)
}

// format writes a fresh header for a newly created region: total_space
// starts at HeaderSize, the queue is empty, and the free list is empty.
func (h *headerView) format(capacity int64) {
	h.write(Header{
		Capacity:     capacity,
		TotalSpace:   HeaderSize,
		ActiveNodes:  0,
		HeadNode:     noNode,
		TailNode:     noNode,
		FreeListNode: noNode,
	})
}

// Node mirrors a 16-byte node descriptor: the offset of the next node in
// whichever list it belongs to (or -1), and its payload length in bytes
// (never including the 16-byte descriptor itself).
type Node struct {
	Next   int64
	Length int64
}

// A node descriptor sits at offset 48 + Σ(16+length) of every node ahead
// of it, which is not 8-byte aligned once a payload length isn't a
// multiple of 8 — an atomic int64 load/store over that address faults on
// arm64. readNode/writeNode go through encoding/binary instead, which
// only asks for byte alignment.
func readNode(b []byte) Node {
	return Node{
		Next:   int64(binary.LittleEndian.Uint64(b[0:8])),
		Length: int64(binary.LittleEndian.Uint64(b[8:16])),
	}
}

func writeNode(b []byte, node Node) {
	binary.LittleEndian.PutUint64(b[0:8], uint64(node.Next))
	binary.LittleEndian.PutUint64(b[8:16], uint64(node.Length))
}
