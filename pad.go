package closematch

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// numPadding zero symbols follow the sentinel so that construction algorithms
// reading triples (DC3) never index past the end of the working array.
const numPadding = 3

// maxOf returns the largest value representable by T.
func maxOf[T constraints.Integer]() T {
	var x T
	x = ^x
	if x > 0 {
		return x
	}
	bits := unsafe.Sizeof(x) * 8
	return T(uint64(1)<<(bits-1) - 1)
}

// Pad returns seq ++ [eos, 0, 0, 0] where eos is one more than the largest
// symbol of seq. The working array keeps the element type of seq, so Pad
// fails with ErrOverflow when max(seq) >= maxOf(T)-1. An empty seq gets eos 0.
func Pad[T constraints.Integer](seq []T) (padded []T, eos T, err error) {
	var maxSym T
	for i, v := range seq {
		if v < 0 {
			return nil, 0, errors.Wrapf(ErrInvalidInput, "negative symbol %d at position %d", v, i)
		}
		if v > maxSym {
			maxSym = v
		}
	}

	if len(seq) > 0 {
		if limit := maxOf[T](); maxSym >= limit-1 {
			return nil, 0, errors.Wrapf(ErrOverflow, "max symbol %d, type max %d", maxSym, limit)
		}
		eos = maxSym + 1
	}

	padded = make([]T, len(seq)+1+numPadding)
	copy(padded, seq)
	padded[len(seq)] = eos
	return padded, eos, nil
}
