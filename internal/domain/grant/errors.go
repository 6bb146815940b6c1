package grant

import (
	"errors"
	"fmt"
)

var ErrGrantNotFound = errors.New("grant record not found")

// PersistenceError wraps a store failure during load or save. The resolution
// engine never touches storage, so this is the only failure mode the edit
// flow has to recover from: the caller keeps its draft and retries.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("grant store: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
