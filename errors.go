package golden

import (
	"errors"
	"fmt"
)

var (
	// ErrPageRangeOutOfBounds is matched by every *PageRangeError
	ErrPageRangeOutOfBounds = errors.New("page range out of bounds")

	// ErrDuplicatePage is returned when two pages of one document share an index
	ErrDuplicatePage = errors.New("duplicate page index")

	// ErrInvalidPageIndex is returned when a page index is negative or not
	// below the document's page count
	ErrInvalidPageIndex = errors.New("invalid page index")
)

// PageRangeError describes a requested page range that cannot be compared.
type PageRangeError struct {
	Start       int
	End         int
	GoldenPages int
	TargetPages int
}

func (e *PageRangeError) Error() string {
	return fmt.Sprintf("%s: pages %d-%d requested, golden has %d, target has %d",
		ErrPageRangeOutOfBounds, e.Start, e.End, e.GoldenPages, e.TargetPages)
}

// Unwrap lets errors.Is match ErrPageRangeOutOfBounds
func (e *PageRangeError) Unwrap() error {
	return ErrPageRangeOutOfBounds
}
