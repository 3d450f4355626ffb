package shmqueue

// allocate finds space for a length-byte payload in the region's free
// list, or at the high-water mark if nothing on the free list fits. It
// takes the header by pointer and mutates it in place (only
// FreeListNode ever changes here); the caller is responsible for
// persisting the header exactly once, at the point the write operation
// calls for.
//
// Free-list nodes touched by a split are written to the region
// immediately, since nothing else can observe the region while the
// caller holds the exclusive-access lock. The walk below tracks the
// predecessor as the offset one iteration behind the current node, which
// every extent's non-overlap invariant depends on getting right.
func allocate(r Region, h *Header, length int64) (offset int64, status Status) {
	prevOffset := noNode
	curOffset := h.FreeListNode

	chosenOffset := noNode
	chosenPrevOffset := noNode
	var chosenNode Node
	chosenIsRightmost := false

	for curOffset != noNode {
		node := r.Node(curOffset)

		rightmost := curOffset+NodeSize+node.Length >= h.TotalSpace
		exact := node.Length == length
		large := node.Length+NodeSize >= length+2*NodeSize

		if rightmost || exact || large {
			chosenOffset = curOffset
			chosenPrevOffset = prevOffset
			chosenNode = node
			chosenIsRightmost = rightmost
			break
		}

		prevOffset = curOffset
		curOffset = node.Next
	}

	if chosenOffset == noNode {
		// No free-list candidate: fall back to the high-water mark. The
		// total_space increment itself is deferred to the queue
		// operation's commit step.
		if h.TotalSpace+NodeSize+length <= h.Capacity {
			return h.TotalSpace, Completed
		}
		return 0, OutOfSpace
	}

	if chosenIsRightmost && chosenOffset+NodeSize+length > h.Capacity {
		return 0, OutOfSpace
	}

	large := chosenNode.Length+NodeSize >= length+2*NodeSize

	var delivered int64
	if large {
		splitOffset := chosenOffset + NodeSize + length
		splitLength := chosenNode.Length - length - NodeSize
		r.SetNode(splitOffset, Node{Next: chosenNode.Next, Length: splitLength})
		delivered = splitOffset
	} else {
		delivered = chosenNode.Next
	}

	if chosenPrevOffset != noNode {
		predecessor := r.Node(chosenPrevOffset)
		predecessor.Next = delivered
		r.SetNode(chosenPrevOffset, predecessor)
	} else {
		h.FreeListNode = delivered
	}

	return chosenOffset, Completed
}

// free returns a block to the free list, coalescing with an adjacent
// predecessor and/or successor where possible. extent is the FULL size in
// bytes of the block being returned, i.e. NodeSize plus the freed node's
// payload length — matching the callers in queue.go, which always free a
// whole node extent [offset, offset+NodeSize+L).
//
// The accounting below is deliberately asymmetric: a brand-new free node
// (cases 3 and 4) subtracts
// NodeSize from a fully-standalone extent (case 4) but not when it is
// absorbing a successor's descriptor bytes into its own payload (case
// 3), and a node being extended by coalescing (cases 1 and 2) grows by
// the merged-in extent's full byte count, descriptor included.
func free(r Region, h *Header, offset, extent int64) {
	prevOffset := noNode
	curOffset := h.FreeListNode

	for curOffset != noNode {
		if curOffset > offset {
			break
		}
		prevOffset = curOffset
		curOffset = r.Node(curOffset).Next
	}

	nextOffset := curOffset

	joinPrev := prevOffset != noNode && func() bool {
		p := r.Node(prevOffset)
		return prevOffset+NodeSize+p.Length == offset
	}()
	joinNext := nextOffset != noNode && offset+extent == nextOffset

	switch {
	case joinPrev && joinNext:
		p := r.Node(prevOffset)
		n := r.Node(nextOffset)
		p.Length += extent + NodeSize + n.Length
		p.Next = n.Next
		r.SetNode(prevOffset, p)

	case joinPrev:
		p := r.Node(prevOffset)
		p.Length += extent
		r.SetNode(prevOffset, p)

	case joinNext:
		n := r.Node(nextOffset)
		newNode := Node{Next: n.Next, Length: extent + n.Length}
		r.SetNode(offset, newNode)
		link(r, h, prevOffset, offset)

	default:
		newNode := Node{Next: nextOffset, Length: extent - NodeSize}
		r.SetNode(offset, newNode)
		link(r, h, prevOffset, offset)
	}
}

// link points prevOffset's Next at target, or updates the header's
// free-list head when there is no predecessor.
func link(r Region, h *Header, prevOffset, target int64) {
	if prevOffset == noNode {
		h.FreeListNode = target
		return
	}
	p := r.Node(prevOffset)
	p.Next = target
	r.SetNode(prevOffset, p)
}
