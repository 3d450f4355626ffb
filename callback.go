package shmqueue

// Every callback in this package has one shape: given a byte window,
// produce a status. WriteFunc and ReadFunc are the only callback types;
// Write/Read in channel.go and the context-driven variants in wait.go all
// take them directly. There are no adapters for other shapes (void-
// returning, with a user parameter, or asynchronous callbacks).

// WriteFunc is invoked with a byte window of exactly the requested
// length during Write. It must report Completed to commit the new
// message, or Cancelled/DelegateFailed to roll the allocation back. Any
// other Status is treated as an application-defined commit outcome and
// is returned to the caller unchanged.
type WriteFunc func(window []byte) Status

// ReadFunc is invoked with a byte window over the head message's payload
// during Read. It must report Completed to consume the message, or
// Cancelled/DelegateFailed to leave it at the head of the queue.
type ReadFunc func(window []byte) Status
