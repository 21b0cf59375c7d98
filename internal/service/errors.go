package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies storage failures surfaced on the store snapshot.
// Storage failures are absorbed at the store boundary rather than returned:
// the in-memory state still advances, and the failure is recorded here so
// observers can render a non-fatal warning.
type ErrorKind string

const (
	// StorageReadFailure means the initial load could not retrieve or parse
	// the persisted collection; the inventory starts empty.
	StorageReadFailure ErrorKind = "storage_read_failure"

	// StorageWriteFailure means a mutation's persistence step failed; the
	// in-memory change was kept and the next successful write reconciles.
	StorageWriteFailure ErrorKind = "storage_write_failure"
)

var (
	// ErrDuplicateID indicates an AddItem call reusing an existing item ID
	ErrDuplicateID = errors.New("duplicate item ID")
)

func duplicateIDError(id string) error {
	return fmt.Errorf("%w: %s", ErrDuplicateID, id)
}
