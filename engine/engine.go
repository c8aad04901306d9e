// Package engine wires a world declaration into one player's queryable
// world: catalog, region graph and completion condition.
package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nathoo/questlogic/catalog"
	"github.com/nathoo/questlogic/engine/fill"
	"github.com/nathoo/questlogic/engine/goal"
	"github.com/nathoo/questlogic/engine/graph"
	"github.com/nathoo/questlogic/engine/progress"
	"github.com/nathoo/questlogic/engine/reach"
	"github.com/nathoo/questlogic/engine/state"
	"github.com/nathoo/questlogic/types"
)

// World is one player's built world.
type World struct {
	Def     types.WorldDef
	Player  int
	Catalog *catalog.Catalog
	Graph   *graph.Graph
	Goal    *goal.Evaluator

	logger *zap.Logger
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for build and query diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(w *World) { w.logger = logger }
}

// New builds player's world from def.
func New(def types.WorldDef, player int, opts ...Option) (*World, error) {
	w := &World{Def: def, Player: player, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(w)
	}

	cat, err := catalog.FromWorld(def)
	if err != nil {
		return nil, fmt.Errorf("indexing catalog: %w", err)
	}
	g, err := graph.FromDef(def, cat, player)
	if err != nil {
		return nil, err
	}
	ev, err := goal.New(def.Goal, player)
	if err != nil {
		return nil, err
	}
	w.Catalog, w.Graph, w.Goal = cat, g, ev

	w.logger.Debug("world built",
		zap.String("game", def.Game.Title),
		zap.Int("player", player),
		zap.Int("regions", g.NumRegions()),
		zap.Int("locations", g.NumLocations()),
		zap.String("goal", string(def.Goal.Strategy)),
		zap.String("goal_source", string(def.Goal.Source)))
	return w, nil
}

// State builds a collection state for this player from item counts. Every
// name must be a catalog item.
func (w *World) State(items map[string]int) (*state.CollectionState, error) {
	s := state.New()
	for name, n := range items {
		if _, ok := w.Catalog.Item(name); !ok {
			return nil, fmt.Errorf("unknown item %q", name)
		}
		s.Add(w.Player, name, n)
	}
	return s, nil
}

// Reachable runs reachability for s.
func (w *World) Reachable(s *state.CollectionState) *reach.Result {
	res := reach.Reachable(w.Graph, s)
	w.logger.Debug("reachability",
		zap.Int("player", w.Player),
		zap.Int("regions", len(res.Regions)),
		zap.Int("locations", len(res.Locations)),
		zap.Int("passes", res.Passes))
	return res
}

// IsComplete evaluates the goal for the explicitly held state s, reading
// the state variant the goal's source selects.
func (w *World) IsComplete(s *state.CollectionState) bool {
	done, _ := w.Goal.Evaluate(w.Graph, s)
	return done
}

// GoalProgress reports wins toward the goal for s, counted on the state
// variant the goal reads.
func (w *World) GoalProgress(s *state.CollectionState) (have, need int) {
	if w.Goal.Def().Source == types.Augmented {
		s = w.Reachable(s).State
	}
	return w.Goal.Progress(s)
}

// Progress classifies every non-event location for s and checked.
func (w *World) Progress(s *state.CollectionState, checked []string) progress.Report {
	return progress.FromResult(w.Graph, w.Reachable(s), checked)
}

// Audit returns the locations that stay unreachable when the player holds
// every item of pool.
func (w *World) Audit(pool []types.Item) []string {
	out := reach.Unreachable(w.Graph, state.FromItems(pool))
	if len(out) > 0 {
		w.logger.Warn("unreachable locations",
			zap.Int("player", w.Player),
			zap.Int("count", len(out)),
			zap.Strings("locations", out))
	}
	return out
}

// Fill places pool into this world's graph with seed. It seals and mutates
// the graph.
func (w *World) Fill(pool []types.Item, seed int64) (*fill.Result, error) {
	res, err := fill.Fill(w.Graph, pool, w.Goal, seed)
	if err != nil {
		return nil, fmt.Errorf("filling player %d: %w", w.Player, err)
	}
	w.logger.Info("world filled",
		zap.Int("player", w.Player),
		zap.Int64("seed", seed),
		zap.Int("placements", len(res.Placements)),
		zap.Int64("rolls", res.Rolls))
	return res, nil
}

// ReachableAll runs reachability for each world with its state, at most
// limit at a time (limit < 1 means no limit). Results follow worlds' order.
func ReachableAll(ctx context.Context, worlds []*World, states []*state.CollectionState, limit int) ([]*reach.Result, error) {
	if len(worlds) != len(states) {
		return nil, fmt.Errorf("%d worlds but %d states", len(worlds), len(states))
	}
	queries := make([]reach.Query, len(worlds))
	for i, w := range worlds {
		queries[i] = reach.Query{Graph: w.Graph, State: states[i]}
	}
	return reach.ReachableAll(ctx, queries, limit)
}
