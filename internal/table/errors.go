package table

import "errors"

// Validation failures surfaced to the UI event source. None are fatal;
// the table is left unchanged whenever one is returned.
var (
	ErrBlankName     = errors.New("entry name cannot be blank")
	ErrDuplicateName = errors.New("entry name already in use")
	ErrReservedName  = errors.New("entry name is a reserved placeholder")
	ErrInvalidName   = errors.New("entry name is not a valid CSS identifier")
	ErrNotFound      = errors.New("entry not found")
	ErrNothingToUndo = errors.New("no pending clear to undo")
	ErrUndoExpired   = errors.New("undo window has expired")
)
