package search

import (
	"fmt"

	"github.com/katalvlaran/gridsearch/grid"
)

// RunAll executes each strategy's full state machine to completion,
// sequentially and independently, on the same grid. Every run gets a
// fresh Engine (fresh frontier and explored state), and the grid's
// dynamic obstacles are reset before each run so strategies compare on
// identical static terrain.
//
// The shared Options apply to every run; pass a seeded WithRandom
// source for a reproducible comparison. Results are returned in the
// order of strategies. The first construction or hook error aborts the
// comparison.
func RunAll(g *grid.Grid, strategies []Strategy, opts ...Option) ([]*SearchResult, error) {
	results := make([]*SearchResult, 0, len(strategies))
	for _, s := range strategies {
		g.ResetDynamicObstacles()
		eng, err := New(g, s, opts...)
		if err != nil {
			return nil, fmt.Errorf("search: RunAll %s: %w", s, err)
		}
		res, err := eng.Run()
		if err != nil {
			return nil, fmt.Errorf("search: RunAll %s: %w", s, err)
		}
		results = append(results, res)
	}

	return results, nil
}
