package shmqueue

import (
	"unsafe"

	"github.com/pkg/errors"
)

// ErrRegionTooSmall is returned when a mapped region is smaller than
// HeaderSize and therefore cannot hold a valid header.
var ErrRegionTooSmall = errors.New("shmqueue: region smaller than header size")

// Region is the storage-engine's view of the mapped bytes: a header at
// offset 0 followed by a sequence of nodes. It is deliberately narrow so
// that the allocator and queue operations in this package can be
// exercised against an in-memory stub in tests without touching the OS.
type Region interface {
	// Header returns the current header snapshot.
	Header() Header
	// SetHeader persists a header snapshot.
	SetHeader(Header)
	// Node returns the node descriptor at offset.
	Node(offset int64) Node
	// SetNode persists a node descriptor at offset.
	SetNode(offset int64, node Node)
	// Bytes returns the raw window of length bytes starting at offset;
	// callers pass the offset just past a node's descriptor to get its
	// payload. Callers must not retain the slice past the critical
	// section that produced it.
	Bytes(offset, length int64) []byte
	// Len returns the total mapped length in bytes.
	Len() int64
}

// memRegion is a Region backed by a plain Go byte slice. It is used by
// unit tests to exercise the allocator and queue operations without a
// real memory mapping, and is not exported: production code always goes
// through mappedRegion.
type memRegion struct {
	buf []byte
}

// newMemRegion allocates and formats an in-memory region of the given
// capacity, for use in tests.
func newMemRegion(capacity int64) *memRegion {
	r := &memRegion{buf: make([]byte, capacity)}
	r.hdrView().format(capacity)
	return r
}

func (r *memRegion) hdrView() *headerView {
	return (*headerView)(unsafe.Pointer(&r.buf[0]))
}

func (r *memRegion) Header() Header    { return r.hdrView().read() }
func (r *memRegion) SetHeader(h Header) { r.hdrView().write(h) }
func (r *memRegion) Node(offset int64) Node {
	return readNode(r.buf[offset : offset+NodeSize])
}
func (r *memRegion) SetNode(offset int64, node Node) {
	writeNode(r.buf[offset:offset+NodeSize], node)
}
func (r *memRegion) Len() int64 { return int64(len(r.buf)) }
func (r *memRegion) Bytes(offset, length int64) []byte {
	return r.buf[offset : offset+length]
}

// mappedRegion is a Region backed by a real memory mapping shared across
// processes. The mapping itself is made in mmap_unix.go; this file only
// knows how to interpret the mapped bytes via typed accessors.
type mappedRegion struct {
	mem []byte
}

func newMappedRegion(mem []byte) (*mappedRegion, error) {
	if int64(len(mem)) < HeaderSize {
		return nil, ErrRegionTooSmall
	}
	return &mappedRegion{mem: mem}, nil
}

func (r *mappedRegion) hdrView() *headerView {
	return (*headerView)(unsafe.Pointer(&r.mem[0]))
}

func (r *mappedRegion) Header() Header    { return r.hdrView().read() }
func (r *mappedRegion) SetHeader(h Header) { r.hdrView().write(h) }
func (r *mappedRegion) Node(offset int64) Node {
	return readNode(r.mem[offset : offset+NodeSize])
}
func (r *mappedRegion) SetNode(offset int64, node Node) {
	writeNode(r.mem[offset:offset+NodeSize], node)
}
func (r *mappedRegion) Len() int64 { return int64(len(r.mem)) }
func (r *mappedRegion) Bytes(offset, length int64) []byte {
	return r.mem[offset : offset+length]
}
