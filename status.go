package shmqueue

// Status is the closed taxonomy of outcomes every channel operation
// returns. The channel itself never fails via panic/exception for an
// expected outcome; every operation yields exactly one Status value.
type Status int

const (
	// Completed indicates the operation (or wait) finished cleanly.
	Completed Status = iota

	// QueueIsEmpty is returned by Read when head_node == -1.
	QueueIsEmpty

	// OutOfSpace is returned by Write when neither the free list nor the
	// high-water mark can accommodate the requested length.
	OutOfSpace

	// Timeout is returned by any blocking API whose wait expired.
	Timeout

	// Cancelled is returned by any blocking API whose cancel handle fired,
	// or by a callback that signals cancellation.
	Cancelled

	// ObjectAlreadyInUse is returned when a registration lock is already
	// held by another process (a second writer or reader tried to
	// register) or when segment creation collides with an existing name.
	ObjectAlreadyInUse

	// ObjectDoesNotExist is returned by Open* when the named region or any
	// of its primitives was never created.
	ObjectDoesNotExist

	// AccessDenied is returned when the OS rejects the caller against the
	// channel's backing files (permission bits).
	AccessDenied

	// ElevationRequired is returned by creation with global visibility
	// scope when the caller lacks the privilege that scope requires.
	ElevationRequired

	// CapacityIsGreaterThanLogicalAddressSpace is returned by region
	// creation when the requested capacity cannot be represented as a
	// signed 64-bit byte offset.
	CapacityIsGreaterThanLogicalAddressSpace

	// RequestedLengthIsGreaterThanLogicalAddressSpace is returned by
	// Write when the requested byte-window length cannot be represented
	// as a signed 64-bit offset delta.
	RequestedLengthIsGreaterThanLogicalAddressSpace

	// RequestedLengthIsGreaterThanVirtualAddressSpace is returned by
	// Write when the requested byte-window length is representable but
	// the platform cannot map a view of it.
	RequestedLengthIsGreaterThanVirtualAddressSpace

	// DelegateFailed is returned when the user callback reports an
	// unexpected, application-defined failure.
	DelegateFailed
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "Completed"
	case QueueIsEmpty:
		return "QueueIsEmpty"
	case OutOfSpace:
		return "OutOfSpace"
	case Timeout:
		return "Timeout"
	case Cancelled:
		return "Cancelled"
	case ObjectAlreadyInUse:
		return "ObjectAlreadyInUse"
	case ObjectDoesNotExist:
		return "ObjectDoesNotExist"
	case AccessDenied:
		return "AccessDenied"
	case ElevationRequired:
		return "ElevationRequired"
	case CapacityIsGreaterThanLogicalAddressSpace:
		return "CapacityIsGreaterThanLogicalAddressSpace"
	case RequestedLengthIsGreaterThanLogicalAddressSpace:
		return "RequestedLengthIsGreaterThanLogicalAddressSpace"
	case RequestedLengthIsGreaterThanVirtualAddressSpace:
		return "RequestedLengthIsGreaterThanVirtualAddressSpace"
	case DelegateFailed:
		return "DelegateFailed"
	default:
		return "Unknown"
	}
}

// isRollback reports whether a callback-reported status rolls back the
// operation that invoked it.
func isRollback(s Status) bool {
	return s == Cancelled || s == DelegateFailed
}
