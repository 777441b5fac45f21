package denylist

import (
	"errors"
	"fmt"
)

// ErrUnsupportedCategory indicates an unknown category name.
var ErrUnsupportedCategory = errors.New("unsupported category")

// SourceReadError reports a list source that could not be opened or read.
type SourceReadError struct {
	// Category is the list being loaded; unset for auxiliary merge sources.
	Category *Category
	// Location describes the source, e.g. a file path or a Redis key.
	Location string
	Err      error
}

func (e *SourceReadError) Error() string {
	if e.Category != nil {
		return fmt.Sprintf("read %s list from %s: %v", e.Category, e.Location, e.Err)
	}
	return fmt.Sprintf("read list from %s: %v", e.Location, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}
