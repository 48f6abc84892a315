package closematch

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestIndexScenario(t *testing.T) {
	ix, err := NewIndex([]int{1, 2, 1}, []int{3, 2, 4})
	require.NoError(t, err)

	assert.Equal(t, 3, ix.QueryLen())
	assert.Equal(t, 7, ix.Len())
	assert.Equal(t, []int64{0, 2, 1, 4, 3, 5, 6}, ix.SuffixArray())
	assert.Equal(t, []int64{5, 4, 5, 4, 5, 4}, ix.CloseMatches())

	pred, succ, err := ix.Neighbors(1)
	require.NoError(t, err)
	assert.Equal(t, Neighbor{Position: 5, Valid: false}, pred)
	assert.Equal(t, Neighbor{Position: 4, Valid: true}, succ)

	lengths, err := ix.MatchLengths(ix.CloseMatches())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 1, 0, 0}, lengths)
}

func TestIndexReturnsCopies(t *testing.T) {
	ix, err := NewIndex([]byte("ab"), []byte("ba"))
	require.NoError(t, err)

	sa := ix.SuffixArray()
	sa[0] = 99
	matches := ix.CloseMatches()
	matches[0] = 99

	assert.NotEqual(t, sa, ix.SuffixArray())
	assert.NotEqual(t, matches, ix.CloseMatches())
}

func TestIndexOptions(t *testing.T) {
	query := []int32("abracadabra")
	reference := []int32("cadabra abracadabra")
	seq := slices.Concat(query, reference)

	for _, algorithm := range allAlgorithms {
		ix, err := NewIndex(query, reference, func(b *Builder[int32]) *Builder[int32] {
			return b.WithAlgorithm(algorithm).WithConcurrency(2)
		})
		require.NoError(t, err)
		assert.Equal(t, naiveSuffixArray(seq), ix.SuffixArray(), algorithm.String())
		assert.Equal(t, naiveCloseMatches(seq, len(query)), ix.CloseMatches(), algorithm.String())
	}

	_, err := NewIndex([]int32{-1}, []int32{2}, func(b *Builder[int32]) *Builder[int32] {
		return b.SkipRenumbering()
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIndexEmpty(t *testing.T) {
	ix, err := NewIndex([]int{}, []int{})
	require.NoError(t, err)
	assert.Equal(t, 1, ix.Len())
	assert.Empty(t, ix.CloseMatches())

	lengths, err := ix.MatchLengths(nil)
	require.NoError(t, err)
	assert.Empty(t, lengths)

	ix, err = NewIndex([]int{1, 2}, []int{})
	require.NoError(t, err)
	for p := 0; p < 2; p++ {
		pred, succ, err := ix.Neighbors(p)
		require.NoError(t, err)
		assert.False(t, pred.Valid)
		assert.False(t, succ.Valid)
		assert.EqualValues(t, 1, pred.Position)
	}
}

func TestIndexErrors(t *testing.T) {
	ix, err := NewIndex([]int{1, 2}, []int{2, 1})
	require.NoError(t, err)

	_, _, err = ix.Neighbors(-1)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, _, err = ix.Neighbors(2)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ix.MatchLengths([]int64{2})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ix.MatchLengths([]int64{2, 3, 5, 3})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ix.MatchLengths([]int64{2, 3, -1, 3})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIndexProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		query := rapid.SliceOfN(rapid.IntRange(0, 3), 0, 20).Draw(t, "query")
		reference := rapid.SliceOfN(rapid.IntRange(0, 3), 0, 30).Draw(t, "reference")
		seq := slices.Concat(query, reference)

		ix, err := NewIndex(query, reference)
		require.NoError(t, err)

		matches := ix.CloseMatches()
		assert.Equal(t, naiveCloseMatches(seq, len(query)), matches)

		for p := range query {
			wantPred, wantSucc := naiveNeighbors(seq, len(query), p)
			pred, succ, err := ix.Neighbors(p)
			require.NoError(t, err)
			assert.Equal(t, wantPred != -1, pred.Valid, "pred of %d", p)
			assert.Equal(t, wantSucc != -1, succ.Valid, "succ of %d", p)
		}

		lengths, err := ix.MatchLengths(matches)
		require.NoError(t, err)
		for i, m := range matches {
			assert.Equal(t, naiveCommonPrefix(seq, i/2, int(m)), lengths[i], "slot %d", i)
		}

		// any position can be measured, not only close matches
		arbitrary := make([]int64, 2*len(query))
		for i := range arbitrary {
			arbitrary[i] = int64(rapid.IntRange(0, ix.Len()-1).Draw(t, "pos"))
		}
		lengths, err = ix.MatchLengths(arbitrary)
		require.NoError(t, err)
		for i, m := range arbitrary {
			assert.Equal(t, naiveCommonPrefix(seq, i/2, int(m)), lengths[i], "slot %d", i)
		}
	})
}

func TestBuildLCPArray(t *testing.T) {
	seq := []int64{1, 0, 2, 0, 2, 0}
	text := append(slices.Clone(seq), 3)
	sa := naiveSuffixArray(seq)

	lcp, rank := BuildLCPArray(sa, text)
	require.Len(t, lcp, len(sa)-1)
	for i := range lcp {
		assert.Equal(t, naiveCommonPrefix(seq, int(sa[i]), int(sa[i+1])), lcp[i], "entry %d", i)
	}
	for i, pos := range sa {
		assert.Equal(t, i, rank[pos])
	}

	lcp, rank = BuildLCPArray(nil, nil)
	assert.Nil(t, lcp)
	assert.Empty(t, rank)
}
