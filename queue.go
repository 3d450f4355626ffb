package shmqueue

import "math"

// ChannelState is the projection of the header returned by every queue
// operation and by State.
type ChannelState struct {
	Capacity    int64
	ActiveNodes int64
	TotalSpace  int64
}

func stateOf(h Header) ChannelState {
	return ChannelState{
		Capacity:    h.Capacity,
		ActiveNodes: h.ActiveNodes,
		TotalSpace:  h.TotalSpace,
	}
}

// maxWindowLength is the largest byte-window length this platform can
// represent as a signed 64-bit node length while leaving room for the
// 16-byte descriptor and the header. On a 64-bit platform the logical
// and virtual address space checks collapse to this single bound and to
// whatever the region's own Bytes() slicing rejects.
const maxWindowLength = math.MaxInt64 - NodeSize - HeaderSize

// writeLocked appends a length-byte message to the tail of the queue,
// assuming the caller already holds the exclusive-access lock. It never
// blocks.
func writeLocked(r Region, length int64, cb WriteFunc) (ChannelState, Status) {
	h := r.Header()

	if length < 0 || length > maxWindowLength {
		return stateOf(h), RequestedLengthIsGreaterThanLogicalAddressSpace
	}

	offset, status := allocate(r, &h, length)
	if status == OutOfSpace {
		return stateOf(h), OutOfSpace
	}
	// A high-water allocation (offset == h.TotalSpace) hasn't touched the
	// free list at all and defers the total_space bump to the commit
	// below; rolling it back must leave the header and free list exactly
	// as they were. Only a free-list allocation has anything to give back.
	fromFreeList := offset < h.TotalSpace

	window, mapErr := safeWindow(r, offset+NodeSize, length)
	if mapErr {
		if fromFreeList {
			free(r, &h, offset, NodeSize+length)
			r.SetHeader(h)
		}
		return stateOf(h), RequestedLengthIsGreaterThanVirtualAddressSpace
	}

	cbStatus := cb(window)

	if isRollback(cbStatus) {
		if fromFreeList {
			free(r, &h, offset, NodeSize+length)
			r.SetHeader(h)
		}
		return stateOf(h), cbStatus
	}

	r.SetNode(offset, Node{Next: noNode, Length: length})

	if h.TailNode >= 0 {
		tail := r.Node(h.TailNode)
		tail.Next = offset
		r.SetNode(h.TailNode, tail)
	}
	h.TailNode = offset
	if h.HeadNode < 0 {
		h.HeadNode = offset
	}
	h.ActiveNodes++

	allocated := (offset + NodeSize + length) - h.TotalSpace
	if allocated > 0 {
		h.TotalSpace += allocated
	}

	r.SetHeader(h)
	return stateOf(h), cbStatus
}

// readLocked pops the message at the head of the queue, assuming the
// caller already holds the exclusive-access lock. It never blocks.
func readLocked(r Region, cb ReadFunc) (ChannelState, Status) {
	h := r.Header()

	if h.HeadNode < 0 {
		return stateOf(h), QueueIsEmpty
	}

	head := r.Node(h.HeadNode)

	window, mapErr := safeWindow(r, h.HeadNode+NodeSize, head.Length)
	if mapErr {
		return stateOf(h), RequestedLengthIsGreaterThanVirtualAddressSpace
	}

	cbStatus := cb(window)

	if isRollback(cbStatus) {
		return stateOf(h), cbStatus
	}

	freedOffset := h.HeadNode
	freedExtent := NodeSize + head.Length

	h.HeadNode = head.Next
	h.ActiveNodes--
	if h.HeadNode < 0 {
		// An empty queue must have no tail either, or the next write
		// would chain onto a node that's already been freed.
		h.TailNode = noNode
	}

	free(r, &h, freedOffset, freedExtent)
	r.SetHeader(h)

	return stateOf(h), cbStatus
}

// stateLocked returns a snapshot of the queue's current state, assuming
// the caller already holds the exclusive-access lock.
func stateLocked(r Region) ChannelState {
	return stateOf(r.Header())
}

// safeWindow opens a byte window over the region, reporting whether the
// window could not be produced (a stand-in, on a 64-bit platform, for
// the platform being unable to map a view of the requested size).
func safeWindow(r Region, offset, length int64) (window []byte, mapFailed bool) {
	if offset < 0 || length < 0 || offset+length > r.Len() {
		return nil, true
	}
	return r.Bytes(offset, length), false
}
