package closematch

import (
	"slices"
	"sync"

	"github.com/pkg/errors"
	"github.com/viniciusth/rmq"
	"golang.org/x/exp/constraints"
)

// Index is the suffix array of query ++ reference ++ [EOS] together with the
// close matches of every query position.
type Index struct {
	queryLen int
	text     []int64
	sa       []int64
	matches  []int64
	found    []bool

	lcpOnce sync.Once
	rank    []int
	lcp     []int
	lcpRMQ  *rmq.RMQHybridNaive[int]
}

// Neighbor is one side of a close match. Valid is false when the position is
// only the NoMatch placeholder.
type Neighbor struct {
	Position int64
	Valid    bool
}

// NewIndex concatenates query and reference and indexes the result. opts
// configure the underlying Builder, e.g.
//
//	NewIndex(q, r, func(b *Builder[int32]) *Builder[int32] { return b.WithAlgorithm(AlgorithmDC3) })
func NewIndex[T constraints.Integer](query, reference []T, opts ...func(*Builder[T]) *Builder[T]) (*Index, error) {
	seq := make([]T, 0, len(query)+len(reference))
	seq = append(seq, query...)
	seq = append(seq, reference...)

	b := NewBuilder(seq)
	for _, opt := range opts {
		b = opt(b)
	}

	sa, text, err := b.build()
	if err != nil {
		return nil, errors.Wrap(err, "building suffix array")
	}

	matches, found, err := closeMatches(sa, len(query))
	if err != nil {
		return nil, errors.Wrap(err, "finding close matches")
	}

	return &Index{
		queryLen: len(query),
		text:     text,
		sa:       sa,
		matches:  matches,
		found:    found,
	}, nil
}

// QueryLen returns the number of query positions.
func (ix *Index) QueryLen() int { return ix.queryLen }

// Len returns n, the number of suffixes including the sentinel's.
func (ix *Index) Len() int { return len(ix.sa) }

func (ix *Index) SuffixArray() []int64 { return slices.Clone(ix.sa) }

// CloseMatches returns the FindCloseMatches output for the query.
func (ix *Index) CloseMatches() []int64 { return slices.Clone(ix.matches) }

// Neighbors returns the predecessor and successor of query position p.
func (ix *Index) Neighbors(p int) (pred, succ Neighbor, err error) {
	if p < 0 || p >= ix.queryLen {
		return pred, succ, errors.Wrapf(ErrInvalidInput, "query position %d out of [0, %d)", p, ix.queryLen)
	}
	pred = Neighbor{Position: ix.matches[2*p], Valid: ix.found[2*p]}
	succ = Neighbor{Position: ix.matches[2*p+1], Valid: ix.found[2*p+1]}
	return pred, succ, nil
}

// MatchLengths returns, for every entry of matches (laid out as returned by
// CloseMatches), the length of the common prefix between the query suffix
// and the suffix at the reported position. Placeholder entries are measured
// against position n-2 like any other.
func (ix *Index) MatchLengths(matches []int64) ([]int, error) {
	if len(matches) != 2*ix.queryLen {
		return nil, errors.Wrapf(ErrInvalidInput, "got %d matches, want %d", len(matches), 2*ix.queryLen)
	}
	n := int64(ix.Len())
	for i, m := range matches {
		if m < 0 || m >= n {
			return nil, errors.Wrapf(ErrInvalidInput, "match %d is %d, want [0, %d)", i, m, n)
		}
	}

	ix.lcpOnce.Do(ix.buildLCP)

	lengths := make([]int, len(matches))
	for i, m := range matches {
		lengths[i] = ix.commonPrefix(i/2, int(m))
	}
	return lengths, nil
}

func (ix *Index) buildLCP() {
	ix.lcp, ix.rank = BuildLCPArray(ix.sa, ix.text)
	if len(ix.lcp) > 0 {
		ix.lcpRMQ = rmq.NewRMQHybridNaive(ix.lcp)
	}
}

// commonPrefix returns the length of the common prefix of the suffixes
// starting at a and b.
func (ix *Index) commonPrefix(a, b int) int {
	if a == b {
		return len(ix.text) - a
	}
	lo, hi := ix.rank[a], ix.rank[b]
	if lo > hi {
		lo, hi = hi, lo
	}
	return ix.lcp[ix.lcpRMQ.Query(lo, hi-1)]
}
