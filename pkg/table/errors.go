package table

import (
	"errors"
	"fmt"
)

// Invalid-argument errors raised synchronously to the caller.
var (
	// ErrNegativeCount is returned when a pagination count is negative.
	ErrNegativeCount = errors.New("count must be a non-negative integer")

	// ErrNegativeOffset is returned when a pagination offset is negative.
	ErrNegativeOffset = errors.New("offset must be a non-negative integer")

	// ErrLazyFrame is returned by operations that refuse to run against
	// uncollected data.
	ErrLazyFrame = errors.New("cannot operate on a lazy frame, collect the data first")
)

// ColumnNotFoundError is returned when a required column name cannot be
// resolved against the wrapped value's schema.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found in table", e.Column)
}
