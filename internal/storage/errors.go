// Package storage implements the drive group reconciliation core. This
// module defines the typed errors surfaced by mutation and persistence
// operations.
package storage

import "fmt"

// DuplicateSerialError reports a rejected serial number during Add or Edit.
//
// Three variants exist: a within-group duplicate (always fatal, never
// overridable), a cross-group duplicate in non-interactive mode (fatal), and
// a cross-group duplicate the operator declined to confirm (fatal, operator
// said no).
type DuplicateSerialError struct {
	SerialNumber string
	GroupID      string // conflicting group, empty for within-group duplicates
	WithinGroup  bool
	Declined     bool
}

func (e *DuplicateSerialError) Error() string {
	switch {
	case e.WithinGroup:
		return fmt.Sprintf("serial number %q appears more than once in the same group", e.SerialNumber)
	case e.Declined:
		return fmt.Sprintf("serial number %q is already used by group %s, operator declined to share it", e.SerialNumber, e.GroupID)
	default:
		return fmt.Sprintf("serial number %q is already used by group %s", e.SerialNumber, e.GroupID)
	}
}

// GroupNotFoundError reports an Edit or Remove that referenced a group
// identifier absent from the configuration. The configuration is unchanged.
type GroupNotFoundError struct {
	GroupID string
}

func (e *GroupNotFoundError) Error() string {
	return fmt.Sprintf("storage group %q does not exist", e.GroupID)
}

// PersistenceError reports a failed file write or reload. The in-memory
// configuration prior to the failed mutation remains the last known-good
// state.
type PersistenceError struct {
	Op   string // "save" or "load"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s storage configuration at %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
