package syncer

import (
	"errors"
	"fmt"
)

// ProviderError reports a failed embedding or index call where the two stores
// were left consistent: either nothing was written, or the write was fully
// compensated. Safe to retry the whole operation.
type ProviderError struct {
	Op  string
	UID string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("sync %s for %q failed, no partial state remains: %v", e.Op, e.UID, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// PartialSyncError reports that the primary store was changed but the vector
// index was not. The primary write is kept; re-running the same operation
// converges the index.
type PartialSyncError struct {
	Op  string
	UID string
	Err error
}

func (e *PartialSyncError) Error() string {
	return fmt.Sprintf("sync %s for %q applied to primary store but not to vector index: %v", e.Op, e.UID, e.Err)
}

func (e *PartialSyncError) Unwrap() error { return e.Err }

// CompensationError reports the worst case of a failed create: the vector
// write failed and the compensating primary delete also kept failing, so an
// orphaned document may remain in the primary store. Cause is the original
// failure, Err the final compensation failure.
type CompensationError struct {
	UID   string
	Cause error
	Err   error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("sync create for %q failed (%v) and compensation could not remove the document: %v", e.UID, e.Cause, e.Err)
}

func (e *CompensationError) Unwrap() error { return e.Err }

// IsPartial reports whether err left the index behind the primary store.
func IsPartial(err error) bool {
	var partial *PartialSyncError
	return errors.As(err, &partial)
}

// IsCompensationFailure reports whether err may have left an orphaned
// primary document behind.
func IsCompensationFailure(err error) bool {
	var comp *CompensationError
	return errors.As(err, &comp)
}
