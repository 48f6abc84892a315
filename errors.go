package closematch

import "github.com/pkg/errors"

var (
	// ErrInvalidInput is returned when a precondition on the shape or range of an
	// input does not hold: negative symbols without renumbering, a suffix array
	// with out-of-range entries, a query length outside [0, n).
	ErrInvalidInput = errors.New("closematch: invalid input")

	// ErrOverflow is returned when the symbol type has no room for a sentinel
	// strictly greater than every symbol of the sequence.
	ErrOverflow = errors.New("closematch: alphabet too large for a sentinel")
)
