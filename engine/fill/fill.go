// Package fill places a shuffled item pool into a region graph so that the
// goal stays reachable. It is the generation-side consumer of reachability:
// every progression item is placed against the state that assumes all
// still-unplaced progression items are held.
package fill

import (
	"errors"
	"fmt"

	"github.com/nathoo/questlogic/engine/goal"
	"github.com/nathoo/questlogic/engine/graph"
	"github.com/nathoo/questlogic/engine/reach"
	"github.com/nathoo/questlogic/engine/state"
	"github.com/nathoo/questlogic/types"
)

var (
	// ErrPoolTooLarge is returned when the pool has more items than empty
	// locations.
	ErrPoolTooLarge = errors.New("item pool larger than empty locations")
	// ErrNoLocation is returned when a progression item has nowhere
	// reachable to go.
	ErrNoLocation = errors.New("no reachable empty location")
	// ErrUncompletable is returned when the finished placement does not
	// satisfy the goal.
	ErrUncompletable = errors.New("placement does not complete the goal")
)

// Placement records one item put into one location.
type Placement struct {
	Location string
	Item     types.Item
}

// Result is the outcome of a fill.
type Result struct {
	Seed       int64
	Rolls      int64
	Placements []Placement
	// Playthrough is the state after collecting everything a player can
	// reach from an empty start.
	Playthrough *state.CollectionState
}

// Fill seals g and places pool into its empty non-event locations, with
// seed driving every random choice. The same graph, pool and seed always
// give the same placement. ev is the termination oracle: the finished
// placement must complete it from an empty state. On error every item
// placed so far is cleared again, so g can be filled with another seed.
func Fill(g *graph.Graph, pool []types.Item, ev *goal.Evaluator, seed int64) (_ *Result, err error) {
	g.Seal()
	rng := NewRNG(seed)

	var empty []string
	for _, l := range g.Locations() {
		if !l.Event && l.Item == nil {
			empty = append(empty, l.Name)
		}
	}
	if len(pool) > len(empty) {
		return nil, fmt.Errorf("%w: %d items, %d locations", ErrPoolTooLarge, len(pool), len(empty))
	}

	var prog, rest []types.Item
	for _, it := range pool {
		if it.Classification == types.Progression {
			prog = append(prog, it)
		} else {
			rest = append(rest, it)
		}
	}
	Shuffle(rng, prog)
	Shuffle(rng, rest)

	res := &Result{Seed: seed}
	defer func() {
		if err == nil {
			return
		}
		for _, p := range res.Placements {
			if cerr := g.Clear(p.Location); cerr != nil {
				err = errors.Join(err, cerr)
			}
		}
	}()
	place := func(loc string, it types.Item) error {
		if err := g.Place(loc, it); err != nil {
			return err
		}
		res.Placements = append(res.Placements, Placement{Location: loc, Item: it})
		return nil
	}

	for len(prog) > 0 {
		it := prog[len(prog)-1]
		prog = prog[:len(prog)-1]

		assumed := state.FromItems(prog)
		reached, _ := Sweep(g, assumed)

		var candidates []int
		for i, name := range empty {
			if reached.HasLocation(name) {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("placing %q: %w", it.Name, ErrNoLocation)
		}
		i := candidates[rng.Intn(len(candidates))]
		if err := place(empty[i], it); err != nil {
			return nil, err
		}
		empty = append(empty[:i], empty[i+1:]...)
	}

	for _, it := range rest {
		i := rng.Intn(len(empty))
		if err := place(empty[i], it); err != nil {
			return nil, err
		}
		empty = append(empty[:i], empty[i+1:]...)
	}

	_, final := Sweep(g, state.New())
	if ev != nil && !ev.IsComplete(final) {
		return nil, ErrUncompletable
	}
	res.Rolls = rng.Position()
	res.Playthrough = final
	return res, nil
}

// Sweep simulates play from s: it repeatedly runs reachability and collects
// the items placed at reachable non-event locations until nothing new is
// picked up. It returns the last reachability result and the final
// augmented state; s is not modified.
func Sweep(g *graph.Graph, s *state.CollectionState) (*reach.Result, *state.CollectionState) {
	cur := s.Clone()
	taken := map[string]bool{}
	for {
		res := reach.Reachable(g, cur)
		grew := false
		for _, name := range res.Locations {
			l, _ := g.Location(name)
			if l.Event || l.Item == nil || taken[name] {
				continue
			}
			taken[name] = true
			cur.Collect(*l.Item)
			grew = true
		}
		if !grew {
			return res, res.State
		}
	}
}
