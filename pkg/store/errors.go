package store

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// ErrNotFound is returned by Get and Update when no record has the
// requested id. Match with errors.Is.
var ErrNotFound = errors.New("task not found")

// ❌ DuplicateIDError reports a create with an id that already exists in the
// document. The document is left unchanged.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("task with id %s already exists", e.ID)
}

// 💥 IntegrityError reports a checksum failure on load: either the stored
// checksum is missing or it does not match the recomputed digest. The
// document content must not be trusted; it is never repaired automatically.
type IntegrityError struct {
	Path     string
	Stored   string // empty when the checksum field is missing
	Computed string
}

func (e *IntegrityError) Error() string {
	if e.Stored == "" {
		return fmt.Sprintf("integrity failure: %s has no checksum", e.Path)
	}
	return fmt.Sprintf("integrity failure: %s checksum mismatch (stored %s, computed %s)", e.Path, e.Stored, e.Computed)
}
