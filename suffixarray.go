package closematch

import (
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/itchio/headway/state"
	"github.com/jgallagher/gosaca"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Algorithm selects how the suffix array is constructed. Every algorithm
// returns the same array.
type Algorithm int

const (
	// AlgorithmAuto uses gosaca for 8-bit symbols and SA-IS otherwise.
	AlgorithmAuto Algorithm = iota
	AlgorithmSAIS
	AlgorithmDC3
	AlgorithmDoubling
	// AlgorithmGoSACA only accepts sequences whose working array is []uint8.
	AlgorithmGoSACA
)

var algorithmNames = map[Algorithm]string{
	AlgorithmAuto:     "auto",
	AlgorithmSAIS:     "sais",
	AlgorithmDC3:      "dc3",
	AlgorithmDoubling: "doubling",
	AlgorithmGoSACA:   "gosaca",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAlgorithm returns the algorithm with the given name.
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range algorithmNames {
		if n == name {
			return a, nil
		}
	}
	return AlgorithmAuto, errors.Wrapf(ErrInvalidInput, "unknown algorithm %q", name)
}

type Builder[T constraints.Integer] struct {
	seq         []T
	renumber    bool
	algorithm   Algorithm
	concurrency int
	consumer    *state.Consumer
}

func NewBuilder[T constraints.Integer](seq []T) *Builder[T] {
	return &Builder[T]{
		seq:       seq,
		renumber:  true,
		algorithm: AlgorithmAuto,
		consumer:  &state.Consumer{},
	}
}

// Sorts the sequence as given. The sentinel must then fit in T above the
// largest symbol, and symbols must be non-negative.
func (b *Builder[T]) SkipRenumbering() *Builder[T] {
	b.renumber = false
	return b
}

func (b *Builder[T]) WithAlgorithm(a Algorithm) *Builder[T] {
	b.algorithm = a
	return b
}

// Number of goroutines used by the doubling sorter. 0 and 1 mean sequential.
func (b *Builder[T]) WithConcurrency(workers int) *Builder[T] {
	b.concurrency = workers
	return b
}

// Receives debug lines and progress. A nil consumer is ignored.
func (b *Builder[T]) WithConsumer(consumer *state.Consumer) *Builder[T] {
	if consumer != nil {
		b.consumer = consumer
	}
	return b
}

// Build returns the suffix array of the sequence followed by its sentinel:
// len(seq)+1 positions, ordered so that the sentinel compares greater than
// every symbol. The last entry is always len(seq).
func (b *Builder[T]) Build() ([]int64, error) {
	sa, _, err := b.build()
	return sa, err
}

// build also returns the dense symbols the array was sorted on, sentinel
// included, which preserve every comparison of the original sequence.
func (b *Builder[T]) build() ([]int64, []int64, error) {
	opts := buildOptions{
		algorithm:   b.algorithm,
		concurrency: b.concurrency,
		consumer:    b.consumer,
	}

	if !b.renumber {
		return buildPadded(b.seq, opts)
	}

	symbols := Renumber(b.seq)
	b.consumer.Debugf("Renumbered %s symbols into %d distinct values (%s)",
		humanize.Comma(int64(symbols.Len())), symbols.Distinct(), symbols.Width())

	switch symbols.Width() {
	case Width8:
		return buildPadded(symbols.Uint8s(), opts)
	case Width32:
		return buildPadded(symbols.Uint32s(), opts)
	default:
		b.consumer.Infof("Alphabet of %s symbols does not fit 32 bits, falling back to int64",
			humanize.Comma(int64(symbols.Distinct())))
		return buildPadded(symbols.Int64s(), opts)
	}
}

// BuildSuffixArray is NewBuilder(seq).Build(), with renumbering toggled by
// enableRenumbering.
func BuildSuffixArray[T constraints.Integer](seq []T, enableRenumbering bool) ([]int64, error) {
	b := NewBuilder(seq)
	if !enableRenumbering {
		b.SkipRenumbering()
	}
	return b.Build()
}

type buildOptions struct {
	algorithm   Algorithm
	concurrency int
	consumer    *state.Consumer
}

func buildPadded[T constraints.Integer](seq []T, opts buildOptions) ([]int64, []int64, error) {
	padded, eos, err := Pad(seq)
	if err != nil {
		return nil, nil, err
	}

	n := len(seq) + 1
	dense, alphabet := densify(padded, n, eos)
	if n == 1 {
		return []int64{0}, dense[:n], nil
	}

	algorithm := opts.algorithm
	if algorithm == AlgorithmAuto {
		algorithm = AlgorithmSAIS
		if _, ok := any(padded).([]uint8); ok {
			algorithm = AlgorithmGoSACA
		}
	}
	opts.consumer.Debugf("Sorting %s suffixes over %d symbols with %s",
		humanize.Comma(int64(n)), alphabet, algorithm)

	var sa []int64
	switch algorithm {
	case AlgorithmSAIS:
		sa = saisSort(dense[:n], alphabet)
	case AlgorithmDC3:
		sa = dc3Sort(dense, n, alphabet)
	case AlgorithmDoubling:
		sa, err = doublingSort(dense[:n], opts.concurrency, opts.consumer)
		if err != nil {
			return nil, nil, err
		}
	case AlgorithmGoSACA:
		text, ok := any(padded).([]uint8)
		if !ok {
			return nil, nil, errors.Wrapf(ErrInvalidInput, "gosaca needs 8-bit symbols, got %T", padded)
		}
		sa = gosacaSort(text[:n])
	default:
		return nil, nil, errors.Wrapf(ErrInvalidInput, "unknown algorithm %d", int(algorithm))
	}
	return sa, dense[:n], nil
}

// densify widens the working array to int64. When the sentinel is large
// compared to n, symbols are replaced by their ranks first so that bucket
// arrays stay O(n); ranks keep every comparison intact. The returned
// alphabet bounds the dense symbols: all of them lie in [0, alphabet).
func densify[T constraints.Integer](padded []T, n int, eos T) ([]int64, int64) {
	dense := make([]int64, len(padded))

	if uint64(eos) <= uint64(2*n+256) {
		for i := 0; i < n; i++ {
			dense[i] = int64(padded[i])
		}
		return dense, int64(eos) + 1
	}

	text := padded[:n]
	order := sortedOrder(text)
	assignRanks(text, order, dense[:n])
	return dense, dense[n-1] + 1
}

func gosacaSort(text []byte) []int64 {
	ws := &gosaca.WorkSpace{}
	sa := make([]int, len(text))
	ws.ComputeSuffixArray(text, sa)

	out := make([]int64, len(sa))
	for i, p := range sa {
		out[i] = int64(p)
	}
	return out
}
