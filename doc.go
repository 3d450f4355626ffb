// Package shmqueue provides a cross-process, shared-memory message queue
// for one producer and one consumer running in separate processes on the
// same host.
//
// A named backing region (a memory-mapped shared-memory file) is paired
// with a small set of named cross-process synchronization primitives; a
// writer appends variable-length byte messages, a reader consumes them in
// FIFO order, and both sides observe a consistent view of a linked-list
// allocator embedded in that region.
//
// The engine is built around a hand-managed allocator over a fixed
// capacity region with header-only metadata, a registration protocol that
// admits exactly one writer and one reader per channel name, and a
// callback-driven commit/rollback discipline: user code is handed a byte
// window into the region and reports back a Status that drives whether
// the operation is committed or rolled back.
package shmqueue
