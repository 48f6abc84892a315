package closematch

import (
	"cmp"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortRuns(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	keys := make([]int64, 2*parallelSortThreshold+17)
	for i := range keys {
		keys[i] = int64(r.Intn(50))
	}
	compare := func(a, b int64) int {
		if c := cmp.Compare(keys[a], keys[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	}

	want := make([]int64, len(keys))
	for i := range want {
		want[i] = int64(i)
	}
	slices.SortFunc(want, compare)

	for _, workers := range []int{1, 2, 5, 7} {
		sa := make([]int64, len(keys))
		for i := range sa {
			sa[i] = int64(len(sa) - 1 - i)
		}
		buf := make([]int64, len(sa))
		require.NoError(t, sortRuns(sa, buf, compare, workers))
		assert.Equal(t, want, sa, "%d workers", workers)
	}
}
