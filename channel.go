package shmqueue

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Direction is which end of a channel a session holds: the side that
// writes, or the side that reads. Exactly one writer and one reader may
// ever be registered on a given channel name.
type Direction int

const (
	Writer Direction = iota
	Reader
)

func (d Direction) String() string {
	if d == Reader {
		return "reader"
	}
	return "writer"
}

// DefaultCapacity is used by the cmd/shmqctl convenience commands when the
// caller does not specify one explicitly.
const DefaultCapacity = 1 << 20 // 1 MiB

// Channel is one process's open session on a named, cross-process FIFO
// queue: the mapped region plus handles to the six named synchronization
// primitives that back it. A Channel is not safe for concurrent
// use by multiple goroutines performing Write/Read at once on the same
// direction — exactly as only one writer and one reader may ever hold the
// role in the first place.
type Channel struct {
	name      string
	scope     Scope
	direction Direction
	sessionID uuid.UUID

	region     Region
	regionFile *os.File
	regionMem  []byte

	writerReg       countingLock
	readerReg       countingLock
	exclusive       countingLock
	hasMessages     manualResetEvent
	noMessages      manualResetEvent
	clientConnected manualResetEvent

	log *logrus.Entry
}

// CreateOutbound creates a brand-new channel and registers this session as
// its writer. It fails with ObjectAlreadyInUse if a channel of this name
// already exists.
func CreateOutbound(name string, capacity int64, scope Scope) (*Channel, error) {
	return create(name, capacity, scope, Writer)
}

// CreateInbound creates a brand-new channel and registers this session as
// its reader.
func CreateInbound(name string, capacity int64, scope Scope) (*Channel, error) {
	return create(name, capacity, scope, Reader)
}

// OpenOutbound opens an existing channel and registers this session as its
// writer. It fails with ObjectDoesNotExist if no channel of this name has
// been created, or ObjectAlreadyInUse if a writer is already registered.
func OpenOutbound(name string, scope Scope) (*Channel, error) {
	return open(name, scope, Writer)
}

// OpenInbound opens an existing channel and registers this session as its
// reader.
func OpenInbound(name string, scope Scope) (*Channel, error) {
	return open(name, scope, Reader)
}

func create(name string, capacity int64, scope Scope, dir Direction) (*Channel, error) {
	if name == "" {
		return nil, errors.New("shmqueue: channel name must not be empty")
	}
	if capacity < 0 {
		return nil, &StatusError{CapacityIsGreaterThanLogicalAddressSpace}
	}
	if capacity < HeaderSize {
		return nil, errors.Errorf("shmqueue: capacity must be at least %d bytes", HeaderSize)
	}
	if scope == Global && os.Geteuid() != 0 {
		return nil, &StatusError{ElevationRequired}
	}

	paths := allPrimitivePaths(scope, name)

	regionFile, err := createBackingFile(paths[suffixRegion], capacity)
	if err != nil {
		return nil, classifySetupErr(err, "create region")
	}
	mem, err := mmapFile(regionFile, int(capacity))
	if err != nil {
		regionFile.Close()
		removeBackingFile(paths[suffixRegion])
		return nil, errors.Wrap(err, "mmap region")
	}
	region, err := newMappedRegion(mem)
	if err != nil {
		munmapFile(mem)
		regionFile.Close()
		removeBackingFile(paths[suffixRegion])
		return nil, err
	}
	region.hdrView().format(capacity)

	ch := &Channel{
		name:       name,
		scope:      scope,
		direction:  dir,
		sessionID:  uuid.New(),
		region:     region,
		regionFile: regionFile,
		regionMem:  mem,
		log:        newChannelLogger(name, scope, dir),
	}

	var created []*primitive
	rollback := func() {
		for _, p := range created {
			p.Close()
			removeBackingFile(p.path)
		}
		munmapFile(mem)
		regionFile.Close()
		removeBackingFile(paths[suffixRegion])
	}

	mk := func(suffix string) (*primitive, error) {
		p, err := createPrimitive(paths[suffix])
		if err != nil {
			return nil, err
		}
		created = append(created, p)
		return p, nil
	}

	wsP, err := mk(suffixWriterRegistration)
	if err != nil {
		rollback()
		return nil, classifySetupErr(err, "create writer registration")
	}
	rsP, err := mk(suffixReaderRegistration)
	if err != nil {
		rollback()
		return nil, classifySetupErr(err, "create reader registration")
	}
	easP, err := mk(suffixExclusiveAccess)
	if err != nil {
		rollback()
		return nil, classifySetupErr(err, "create exclusive-access lock")
	}
	hmeP, err := mk(suffixHasMessages)
	if err != nil {
		rollback()
		return nil, classifySetupErr(err, "create has-messages event")
	}
	nmeP, err := mk(suffixNoMessages)
	if err != nil {
		rollback()
		return nil, classifySetupErr(err, "create no-messages event")
	}
	cceP, err := mk(suffixClientConnected)
	if err != nil {
		rollback()
		return nil, classifySetupErr(err, "create client-connected event")
	}

	ch.writerReg = countingLock{wsP}
	ch.readerReg = countingLock{rsP}
	ch.exclusive = countingLock{easP}
	ch.hasMessages = manualResetEvent{hmeP}
	ch.noMessages = manualResetEvent{nmeP}
	ch.clientConnected = manualResetEvent{cceP}

	ch.noMessages.set()

	if !ch.registrationLock().tryAcquire() {
		rollback()
		return nil, &StatusError{ObjectAlreadyInUse}
	}

	ch.log.WithField("session", ch.sessionID).Info("channel created")
	return ch, nil
}

func open(name string, scope Scope, dir Direction) (*Channel, error) {
	if name == "" {
		return nil, errors.New("shmqueue: channel name must not be empty")
	}

	paths := allPrimitivePaths(scope, name)

	regionFile, err := openBackingFile(paths[suffixRegion])
	if err != nil {
		return nil, classifySetupErr(err, "open region")
	}
	info, err := regionFile.Stat()
	if err != nil {
		regionFile.Close()
		return nil, errors.Wrap(err, "stat region")
	}
	mem, err := mmapFile(regionFile, int(info.Size()))
	if err != nil {
		regionFile.Close()
		return nil, errors.Wrap(err, "mmap region")
	}
	region, err := newMappedRegion(mem)
	if err != nil {
		munmapFile(mem)
		regionFile.Close()
		return nil, err
	}

	ch := &Channel{
		name:       name,
		scope:      scope,
		direction:  dir,
		sessionID:  uuid.New(),
		region:     region,
		regionFile: regionFile,
		regionMem:  mem,
		log:        newChannelLogger(name, scope, dir),
	}

	var opened []*primitive
	rollback := func() {
		for _, p := range opened {
			p.Close()
		}
		munmapFile(mem)
		regionFile.Close()
	}

	op := func(suffix string) (*primitive, error) {
		p, err := openPrimitive(paths[suffix])
		if err != nil {
			return nil, err
		}
		opened = append(opened, p)
		return p, nil
	}

	wsP, err := op(suffixWriterRegistration)
	if err != nil {
		rollback()
		return nil, classifySetupErr(err, "open writer registration")
	}
	rsP, err := op(suffixReaderRegistration)
	if err != nil {
		rollback()
		return nil, classifySetupErr(err, "open reader registration")
	}
	easP, err := op(suffixExclusiveAccess)
	if err != nil {
		rollback()
		return nil, classifySetupErr(err, "open exclusive-access lock")
	}
	hmeP, err := op(suffixHasMessages)
	if err != nil {
		rollback()
		return nil, classifySetupErr(err, "open has-messages event")
	}
	nmeP, err := op(suffixNoMessages)
	if err != nil {
		rollback()
		return nil, classifySetupErr(err, "open no-messages event")
	}
	cceP, err := op(suffixClientConnected)
	if err != nil {
		rollback()
		return nil, classifySetupErr(err, "open client-connected event")
	}

	ch.writerReg = countingLock{wsP}
	ch.readerReg = countingLock{rsP}
	ch.exclusive = countingLock{easP}
	ch.hasMessages = manualResetEvent{hmeP}
	ch.noMessages = manualResetEvent{nmeP}
	ch.clientConnected = manualResetEvent{cceP}

	if !ch.registrationLock().tryAcquire() {
		rollback()
		return nil, &StatusError{ObjectAlreadyInUse}
	}

	ch.clientConnected.set()

	ch.log.WithField("session", ch.sessionID).Info("channel opened")
	return ch, nil
}

// registrationLock returns the direction-appropriate registration lock:
// _ws for a writer session, _rs for a reader session.
func (c *Channel) registrationLock() countingLock {
	if c.direction == Writer {
		return c.writerReg
	}
	return c.readerReg
}

// Name returns the channel's name.
func (c *Channel) Name() string { return c.name }

// Scope returns the channel's visibility scope.
func (c *Channel) Scope() Scope { return c.scope }

// Direction returns which side of the channel this session holds.
func (c *Channel) Direction() Direction { return c.direction }

// Write acquires the exclusive-access lock and appends one message,
// blocking up to timeout (or indefinitely if timeout <= 0) for the lock to
// become free, and returning Cancelled early if cancel fires first.
func (c *Channel) Write(length int64, timeout time.Duration, cancel <-chan struct{}, cb WriteFunc) (ChannelState, Status) {
	if st := c.exclusive.acquire(timeout, cancel); st != Completed {
		return ChannelState{}, st
	}
	defer c.exclusive.release()

	state, status := writeLocked(c.region, length, cb)
	c.syncMessageSignals(state)
	recordState(c.name, state)
	recordOperation(c.name, "write", status)
	return state, status
}

// Read acquires the exclusive-access lock and removes the oldest message,
// with the same blocking semantics as Write.
func (c *Channel) Read(timeout time.Duration, cancel <-chan struct{}, cb ReadFunc) (ChannelState, Status) {
	if st := c.exclusive.acquire(timeout, cancel); st != Completed {
		return ChannelState{}, st
	}
	defer c.exclusive.release()

	state, status := readLocked(c.region, cb)
	c.syncMessageSignals(state)
	recordState(c.name, state)
	recordOperation(c.name, "read", status)
	return state, status
}

// State acquires the exclusive-access lock and returns a consistent
// snapshot of the channel's header fields.
func (c *Channel) State(timeout time.Duration, cancel <-chan struct{}) (ChannelState, Status) {
	if st := c.exclusive.acquire(timeout, cancel); st != Completed {
		return ChannelState{}, st
	}
	defer c.exclusive.release()

	state := stateLocked(c.region)
	recordState(c.name, state)
	return state, Completed
}

// syncMessageSignals updates _hme/_nme to reflect the queue's emptiness,
// inside the same critical section Write/Read already hold the
// exclusive-access lock for.
func (c *Channel) syncMessageSignals(state ChannelState) {
	if state.ActiveNodes > 0 {
		c.hasMessages.set()
		c.noMessages.clear()
	} else {
		c.noMessages.set()
		c.hasMessages.clear()
	}
}

// Close releases this session's registration and drops every handle this
// process holds open, in order: the registration lock, then the three
// event handles (has-messages, no-messages, client-connected), then both
// registration lock handles, then the exclusive-access lock handle, then
// the region mapping, then the region file.
func (c *Channel) Close() error {
	c.registrationLock().release()

	var firstErr error
	note := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	note(c.hasMessages.Close())
	note(c.noMessages.Close())
	note(c.clientConnected.Close())
	note(c.writerReg.Close())
	note(c.readerReg.Close())
	note(c.exclusive.Close())
	note(munmapFile(c.regionMem))
	note(c.regionFile.Close())

	c.log.WithField("session", c.sessionID).Info("channel closed")
	return firstErr
}
