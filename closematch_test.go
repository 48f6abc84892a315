package closematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFindCloseMatchesScenario(t *testing.T) {
	sa, err := BuildSuffixArray([]int{1, 2, 1, 3, 2, 4}, true)
	require.NoError(t, err)

	out, err := FindCloseMatches(sa, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 4, 5, 4, 5, 4}, out)
}

func TestFindCloseMatchesBanana(t *testing.T) {
	seq := []byte("bananas")
	sa, err := BuildSuffixArray(seq, true)
	require.NoError(t, err)

	// query "ban", reference "anas"
	out, err := FindCloseMatches(sa, 3)
	require.NoError(t, err)
	assert.Equal(t, naiveCloseMatches(seq, 3), out)
}

func TestFindCloseMatchesBoundaries(t *testing.T) {
	sa, err := BuildSuffixArray([]int{4, 4, 1, 0}, true)
	require.NoError(t, err)
	n := len(sa)

	out, err := FindCloseMatches(sa, 0)
	require.NoError(t, err)
	assert.Empty(t, out)

	// everything is query: no side can be found
	out, err = FindCloseMatches(sa, n-1)
	require.NoError(t, err)
	require.Len(t, out, 2*(n-1))
	for _, v := range out {
		assert.EqualValues(t, n-2, v)
	}

	// the sentinel alone
	out, err = FindCloseMatches([]int64{0}, 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFindCloseMatchesTrailingQuery(t *testing.T) {
	// query [9] sorts after every reference suffix
	seq := []int{9, 1, 2, 3}
	sa, err := BuildSuffixArray(seq, true)
	require.NoError(t, err)

	out, err := FindCloseMatches(sa, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, NoMatch(len(sa))}, out)
}

func TestFindCloseMatchesInvalid(t *testing.T) {
	tests := []struct {
		name     string
		sa       []int64
		queryLen int
	}{
		{"empty", nil, 0},
		{"negative query", []int64{0, 1, 2}, -1},
		{"query covers sentinel", []int64{0, 1, 2}, 3},
		{"entry too large", []int64{0, 3, 2}, 1},
		{"entry negative", []int64{0, -1, 2}, 1},
		{"repeated entry", []int64{1, 1, 2}, 1},
		{"repeated sentinel", []int64{2, 0, 2}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FindCloseMatches(tc.sa, tc.queryLen)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestFindCloseMatchesProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seq := rapid.SliceOfN(rapid.IntRange(0, 3), 0, 40).Draw(t, "seq")
		queryLen := rapid.IntRange(0, len(seq)).Draw(t, "queryLen")
		algorithm := rapid.SampledFrom(allAlgorithms).Draw(t, "algorithm")

		sa, err := NewBuilder(seq).WithAlgorithm(algorithm).Build()
		require.NoError(t, err)

		out, err := FindCloseMatches(sa, queryLen)
		require.NoError(t, err)
		require.Len(t, out, 2*queryLen)
		assert.Equal(t, naiveCloseMatches(seq, queryLen), out)

		n := int64(len(sa))
		for _, v := range out {
			assert.True(t, v == n-2 || (v >= int64(queryLen) && v < n-1), "%d is neither a reference position nor NoMatch", v)
		}
	})
}

func TestNoMatch(t *testing.T) {
	assert.EqualValues(t, 5, NoMatch(7))
	assert.EqualValues(t, -1, NoMatch(1))
}
