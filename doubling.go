package closematch

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/itchio/headway/state"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// below this many suffixes a single goroutine sorts faster than a fan-out
const parallelSortThreshold = 16 * 1024

// doublingSort returns the suffix array of text by prefix doubling: after the
// round for h, rank orders suffixes by their first 2h symbols. Suffixes are
// pairwise distinct once EOS is included, so the loop stops as soon as every
// rank is unique.
//
// With workers > 1 each round sorts chunks concurrently and merges them. The
// comparator breaks ties by position, so the result never depends on
// scheduling.
func doublingSort(text []int64, workers int, consumer *state.Consumer) ([]int64, error) {
	n := len(text)
	sa := make([]int64, n)
	rank := make([]int64, n)
	next := make([]int64, n)
	buf := make([]int64, n)
	for i := range sa {
		sa[i] = int64(i)
		rank[i] = text[i]
	}

	for h := 1; ; h *= 2 {
		consumer.ProgressLabel(fmt.Sprintf("Suffix sorting (%d-order)", h))

		second := func(p int64) int64 {
			if q := int(p) + h; q < n {
				return rank[q]
			}
			return -1
		}
		compare := func(a, b int64) int {
			if c := cmp.Compare(rank[a], rank[b]); c != 0 {
				return c
			}
			if c := cmp.Compare(second(a), second(b)); c != 0 {
				return c
			}
			return cmp.Compare(a, b)
		}
		if err := sortRuns(sa, buf, compare, workers); err != nil {
			return nil, errors.Wrapf(err, "sorting %d-order ranks", h)
		}

		next[sa[0]] = 0
		for i := 1; i < n; i++ {
			a, b := sa[i-1], sa[i]
			next[b] = next[a]
			if rank[a] != rank[b] || second(a) != second(b) {
				next[b]++
			}
		}
		rank, next = next, rank

		distinct := rank[sa[n-1]] + 1
		consumer.Debugf("%d-order: %d of %d suffixes ranked apart", h, distinct, n)
		consumer.Progress(float64(distinct) / float64(n))
		if distinct == int64(n) || h >= n {
			break
		}
	}
	return sa, nil
}

// sortRuns sorts sa with compare, splitting the work across workers
// goroutines. buf must be as long as sa.
func sortRuns(sa, buf []int64, compare func(a, b int64) int, workers int) error {
	n := len(sa)
	if workers <= 1 || n < parallelSortThreshold {
		slices.SortFunc(sa, compare)
		return nil
	}

	bounds := make([]int, workers+1)
	for w := range bounds {
		bounds[w] = w * n / workers
	}

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		run := sa[bounds[w]:bounds[w+1]]
		g.Go(func() error {
			slices.SortFunc(run, compare)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	src, dst := sa, buf[:n]
	for len(bounds) > 2 {
		merged := []int{0}
		var g errgroup.Group
		for i := 0; i+1 < len(bounds); i += 2 {
			lo := bounds[i]
			if i+2 < len(bounds) {
				mid, hi := bounds[i+1], bounds[i+2]
				g.Go(func() error {
					mergeRuns(dst[lo:hi], src[lo:mid], src[mid:hi], compare)
					return nil
				})
				merged = append(merged, hi)
			} else {
				hi := bounds[i+1]
				copy(dst[lo:hi], src[lo:hi])
				merged = append(merged, hi)
			}
		}
		if err := g.Wait(); err != nil {
			return err
		}
		bounds = merged
		src, dst = dst, src
	}
	if &src[0] != &sa[0] {
		copy(sa, src)
	}
	return nil
}

// mergeRuns merges the sorted runs a and b into dst.
func mergeRuns(dst, a, b []int64, compare func(a, b int64) int) {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		if compare(a[i], b[j]) <= 0 {
			dst[k] = a[i]
			i++
		} else {
			dst[k] = b[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], a[i:])
	copy(dst[k:], b[j:])
}
