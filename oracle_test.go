package closematch

import (
	"cmp"
	"slices"

	"golang.org/x/exp/constraints"
)

// compareSuffixes compares the suffixes of seq ++ [EOS] starting at a and b,
// EOS being greater than any symbol.
func compareSuffixes[T constraints.Integer](seq []T, a, b int) int {
	eos := len(seq)
	for {
		switch {
		case a == eos && b == eos:
			return 0
		case a == eos:
			return 1
		case b == eos:
			return -1
		}
		if c := cmp.Compare(seq[a], seq[b]); c != 0 {
			return c
		}
		a++
		b++
	}
}

func naiveSuffixArray[T constraints.Integer](seq []T) []int64 {
	sa := make([]int64, len(seq)+1)
	for i := range sa {
		sa[i] = int64(i)
	}
	slices.SortFunc(sa, func(a, b int64) int {
		return compareSuffixes(seq, int(a), int(b))
	})
	return sa
}

// naiveNeighbors finds the reference suffixes immediately before and after
// the suffix at p by comparing against every reference suffix. -1 means none.
func naiveNeighbors[T constraints.Integer](seq []T, queryLen, p int) (pred, succ int) {
	pred, succ = -1, -1
	for r := queryLen; r < len(seq); r++ {
		c := compareSuffixes(seq, r, p)
		if c < 0 && (pred == -1 || compareSuffixes(seq, r, pred) > 0) {
			pred = r
		}
		if c > 0 && (succ == -1 || compareSuffixes(seq, r, succ) < 0) {
			succ = r
		}
	}
	return pred, succ
}

func naiveCloseMatches[T constraints.Integer](seq []T, queryLen int) []int64 {
	n := len(seq) + 1
	out := make([]int64, 2*queryLen)
	for p := 0; p < queryLen; p++ {
		pred, succ := naiveNeighbors(seq, queryLen, p)
		out[2*p], out[2*p+1] = NoMatch(n), NoMatch(n)
		if pred != -1 {
			out[2*p] = int64(pred)
		}
		if succ != -1 {
			out[2*p+1] = int64(succ)
		}
	}
	return out
}

// naiveCommonPrefix counts the symbols shared by the suffixes at a and b,
// the sentinel included.
func naiveCommonPrefix[T constraints.Integer](seq []T, a, b int) int {
	if a == b {
		return len(seq) + 1 - a
	}
	l := 0
	for a+l < len(seq) && b+l < len(seq) && seq[a+l] == seq[b+l] {
		l++
	}
	return l
}

var allAlgorithms = []Algorithm{
	AlgorithmAuto,
	AlgorithmSAIS,
	AlgorithmDC3,
	AlgorithmDoubling,
}
