package closematch

import (
	"cmp"
	"math"
	"slices"

	"golang.org/x/exp/constraints"
)

// Width is the storage width picked for a renumbered sequence.
type Width uint8

const (
	Width8  Width = 8
	Width32 Width = 32
	Width64 Width = 64
)

func (w Width) String() string {
	switch w {
	case Width8:
		return "uint8"
	case Width32:
		return "uint32"
	case Width64:
		return "int64"
	default:
		return "unknown"
	}
}

// Symbols is a renumbered sequence. Exactly one of the backing slices is
// non-nil, matching Width.
type Symbols struct {
	width    Width
	distinct int
	u8       []uint8
	u32      []uint32
	i64      []int64
}

// Renumber maps seq onto [0, M), M being the number of distinct values in seq,
// so that seq[i] < seq[j] iff out[i] < out[j] and seq[i] == seq[j] iff
// out[i] == out[j].
//
// The output is stored as uint8 when M < 255 and as uint32 when M < 2^32-1,
// which always leaves room for a sentinel above the largest rank. The int64
// fallback only triggers for alphabets with billions of distinct values.
func Renumber[T constraints.Integer](seq []T) *Symbols {
	order := sortedOrder(seq)

	distinct := 0
	for i, pos := range order {
		if i == 0 || seq[pos] != seq[order[i-1]] {
			distinct++
		}
	}

	s := &Symbols{distinct: distinct}
	switch {
	case distinct < math.MaxUint8:
		s.width = Width8
		s.u8 = make([]uint8, len(seq))
		assignRanks(seq, order, s.u8)
	case int64(distinct) < math.MaxUint32:
		s.width = Width32
		s.u32 = make([]uint32, len(seq))
		assignRanks(seq, order, s.u32)
	default:
		s.width = Width64
		s.i64 = make([]int64, len(seq))
		assignRanks(seq, order, s.i64)
	}
	return s
}

// sortedOrder returns the positions of seq sorted by value, ties broken by
// position.
func sortedOrder[T constraints.Integer](seq []T) []int {
	order := make([]int, len(seq))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		if c := cmp.Compare(seq[a], seq[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return order
}

func assignRanks[T constraints.Integer, U constraints.Integer](seq []T, order []int, out []U) {
	var rank U
	for i, pos := range order {
		if i > 0 && seq[pos] != seq[order[i-1]] {
			rank++
		}
		out[pos] = rank
	}
}

// Len returns the length of the sequence.
func (s *Symbols) Len() int {
	switch s.width {
	case Width8:
		return len(s.u8)
	case Width32:
		return len(s.u32)
	default:
		return len(s.i64)
	}
}

// Width returns the storage width chosen for the ranks.
func (s *Symbols) Width() Width { return s.width }

// Distinct returns M, the number of distinct values of the original sequence.
func (s *Symbols) Distinct() int { return s.distinct }

// Max returns the largest rank, or -1 for an empty sequence.
func (s *Symbols) Max() int64 { return int64(s.distinct) - 1 }

func (s *Symbols) Uint8s() []uint8   { return s.u8 }
func (s *Symbols) Uint32s() []uint32 { return s.u32 }
func (s *Symbols) Int64s() []int64   { return s.i64 }

// Int64 returns a widened copy of the ranks.
func (s *Symbols) Int64() []int64 {
	out := make([]int64, s.Len())
	switch s.width {
	case Width8:
		for i, v := range s.u8 {
			out[i] = int64(v)
		}
	case Width32:
		for i, v := range s.u32 {
			out[i] = int64(v)
		}
	default:
		copy(out, s.i64)
	}
	return out
}
