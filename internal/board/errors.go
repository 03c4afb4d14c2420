package board

import (
	"errors"
	"fmt"
)

// Every command error means the document was left untouched.
var (
	ErrEmptyTitle   = errors.New("board: title is required")
	ErrCardNotFound = errors.New("board: card not found")
	ErrUnknownList  = errors.New("board: unknown list")
	ErrInvalidDue   = errors.New("board: due date must be YYYY-MM-DD")
	ErrAtBoundary   = errors.New("board: card is already at the edge of the board")
	ErrNotConfirmed = errors.New("board: delete not confirmed")
	ErrNoDrag       = errors.New("board: no card is being dragged")
)

// ImportError is shown to the user when an import is rejected.
type ImportError struct {
	Err error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import failed: %v", e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }
