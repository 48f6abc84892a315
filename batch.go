package closematch

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"
)

// FindCloseMatchesBatch indexes every query against the same reference and
// returns their close matches in query order. At most concurrency indexes are
// built at once (unlimited when concurrency <= 0). A cancelled ctx stops
// queries that have not started yet; an index being built runs to completion.
func FindCloseMatchesBatch[T constraints.Integer](ctx context.Context, reference []T, queries [][]T, concurrency int, opts ...func(*Builder[T]) *Builder[T]) ([][]int64, error) {
	results := make([][]int64, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, query := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ix, err := NewIndex(query, reference, opts...)
			if err != nil {
				return errors.Wrapf(err, "query %d", i)
			}
			results[i] = ix.matches
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
