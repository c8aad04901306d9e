package reach

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nathoo/questlogic/engine/graph"
	"github.com/nathoo/questlogic/engine/state"
)

// Query pairs one player's graph with the state to evaluate it against.
// Graphs and states are only read; callers must not mutate either while
// ReachableAll runs.
type Query struct {
	Graph *graph.Graph
	State *state.CollectionState
}

// ReachableAll runs independent queries in parallel, at most limit at a
// time (limit <= 0 means no limit). Results are returned in query order.
// Cancelling ctx stops queries that have not started yet.
func ReachableAll(ctx context.Context, queries []Query, limit int) ([]*Result, error) {
	results := make([]*Result, len(queries))

	eg, egCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}
	for i, q := range queries {
		i, q := i, q
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = Reachable(q.Graph, q.State)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
