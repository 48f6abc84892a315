package closematch

import "github.com/pkg/errors"

// NoMatch returns the value reported for a missing neighbour when the suffix
// array has n entries. It is reserved: the same value is also the last real
// position of the sequence, so a consumer cannot tell "no predecessor" from
// "no successor" (or from a genuine match at n-2) by value alone. Index
// keeps that information in Neighbors.
func NoMatch(n int) int64 {
	return int64(n - 2)
}

// FindCloseMatches treats positions [0, queryLen) of the text behind sa as the
// query and positions [queryLen, n-1) as the reference (n-1 is the sentinel).
// For every query position p it reports, at out[2p] and out[2p+1], the
// reference positions whose suffixes come immediately before and after p's
// suffix in sa, or NoMatch(n) when a side has none.
func FindCloseMatches(sa []int64, queryLen int) ([]int64, error) {
	out, _, err := closeMatches(sa, queryLen)
	return out, err
}

// closeMatches also returns, for each output slot, whether a real reference
// position was found.
func closeMatches(sa []int64, queryLen int) ([]int64, []bool, error) {
	n := len(sa)
	if n == 0 {
		return nil, nil, errors.Wrap(ErrInvalidInput, "empty suffix array")
	}
	if queryLen < 0 || queryLen >= n {
		return nil, nil, errors.Wrapf(ErrInvalidInput, "query length %d out of [0, %d)", queryLen, n)
	}
	seen := make([]bool, n)
	for i, pos := range sa {
		if pos < 0 || pos >= int64(n) {
			return nil, nil, errors.Wrapf(ErrInvalidInput, "suffix array entry %d is %d, want [0, %d)", i, pos, n)
		}
		if seen[pos] {
			return nil, nil, errors.Wrapf(ErrInvalidInput, "suffix array entry %d repeats position %d", i, pos)
		}
		seen[pos] = true
	}

	out := make([]int64, 2*queryLen)
	found := make([]bool, 2*queryLen)
	noMatch := NoMatch(n)
	for i := range out {
		out[i] = noMatch
	}

	q := int64(queryLen)
	eos := int64(n - 1)
	lastRef := -1

	// settle assigns neighbours to the query entries of sa[from:to], all of
	// which lie between two consecutive reference entries.
	settle := func(from, to int, succ int64, hasSucc bool) {
		for _, pos := range sa[from:to] {
			if pos >= q {
				continue
			}
			if lastRef >= 0 {
				out[2*pos] = sa[lastRef]
				found[2*pos] = true
			}
			if hasSucc {
				out[2*pos+1] = succ
				found[2*pos+1] = true
			}
		}
	}

	for i, pos := range sa {
		if pos < q || pos == eos {
			continue
		}
		settle(lastRef+1, i, pos, true)
		lastRef = i
	}
	settle(lastRef+1, n, 0, false)

	return out, found, nil
}
