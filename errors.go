package shmqueue

import "github.com/pkg/errors"

// StatusError wraps one of the setup-path Status values from status.go
// (ObjectAlreadyInUse, ObjectDoesNotExist, AccessDenied,
// ElevationRequired, CapacityIsGreaterThanLogicalAddressSpace) as a Go
// error, so Create*/Open* can return the idiomatic (value, error) shape
// while still surfacing the closed status taxonomy callers can switch on.
type StatusError struct {
	Status Status
}

func (e *StatusError) Error() string {
	return "shmqueue: " + e.Status.String()
}

// AsStatus extracts the Status carried by a StatusError, if err is (or
// wraps) one.
func AsStatus(err error) (Status, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status, true
	}
	return Completed, false
}

// classifySetupErr maps an OS-level error encountered while creating or
// opening a backing file to the Status taxonomy, falling back to a
// pkg/errors-wrapped opaque error for anything unexpected.
func classifySetupErr(err error, op string) error {
	switch {
	case isExistError(err):
		return &StatusError{ObjectAlreadyInUse}
	case isNotExistError(err):
		return &StatusError{ObjectDoesNotExist}
	case isPermissionError(err):
		return &StatusError{AccessDenied}
	default:
		return errors.Wrap(err, op)
	}
}
