// Package reach computes which regions and locations of a region graph are
// reachable for a given collection state.
//
// The traversal is a breadth-first fixpoint: every pass expands the
// reachable regions to closure through entrances whose rule holds, marks
// the locations of reachable regions, and virtually collects the locked
// items of newly reachable event locations. A pass that collects nothing
// new ends the traversal, since no rule can change without new items.
package reach

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/questlogic/engine/graph"
	"github.com/nathoo/questlogic/engine/rules"
	"github.com/nathoo/questlogic/engine/state"
)

// Result is the outcome of one reachability query.
type Result struct {
	// Regions and Locations list reachable names in graph order.
	Regions   []string
	Locations []string
	// State is the input state plus every virtually collected event item.
	// It is local to this query and must not be treated as items the
	// player actually holds.
	State *state.CollectionState
	// Passes is the number of fixpoint passes run.
	Passes int

	regions   mapset.Set[string]
	locations mapset.Set[string]
}

// HasRegion reports whether the named region is reachable.
func (r *Result) HasRegion(name string) bool { return r.regions.Has(name) }

// HasLocation reports whether the named location is reachable.
func (r *Result) HasLocation(name string) bool { return r.locations.Has(name) }

// Reachable runs the fixpoint traversal over g starting from s. s is not
// modified.
//
// It panics if a rule is not monotonic: either the traversal needs more
// than |regions| + |locations| passes, or the converged sets differ from a
// fresh traversal under the final state.
func Reachable(g *graph.Graph, s *state.CollectionState) *Result {
	aug := s.Clone()
	regions := mapset.New[string]()
	locations := mapset.New[string]()
	collected := mapset.New[string]()

	regions.Put(g.Start().Name)
	bound := g.NumRegions() + g.NumLocations()
	passes := 0

	for {
		passes++
		if passes > bound {
			panic(fmt.Sprintf("reach: no fixpoint for player %d after %d passes; a rule is not monotonic",
				g.Player, bound))
		}

		expand(g, aug, regions)

		grew := false
		for _, r := range g.Regions() {
			if !regions.Has(r.Name) {
				continue
			}
			for _, l := range r.Locations {
				if locations.Has(l.Name) {
					continue
				}
				if l.Rule != nil && !rules.Eval(*l.Rule, aug, g.Player) {
					continue
				}
				locations.Put(l.Name)
				if l.Event && l.Item != nil && !collected.Has(l.Name) {
					collected.Put(l.Name)
					aug.Collect(*l.Item)
					grew = true
				}
			}
		}

		// Without new items no entrance or location rule can change.
		if !grew {
			break
		}
	}

	verify(g, aug, regions, locations)

	res := &Result{
		State:     aug,
		Passes:    passes,
		regions:   regions,
		locations: locations,
	}
	for _, r := range g.Regions() {
		if regions.Has(r.Name) {
			res.Regions = append(res.Regions, r.Name)
		}
	}
	for _, l := range g.Locations() {
		if locations.Has(l.Name) {
			res.Locations = append(res.Locations, l.Name)
		}
	}
	return res
}

// verify re-derives the reachable sets from the start region under the
// final state and panics when they disagree with the converged ones. A
// collected item that closes an entrance or location shows up here.
func verify(g *graph.Graph, final *state.CollectionState, regions, locations mapset.Set[string]) {
	fresh := mapset.New[string]()
	fresh.Put(g.Start().Name)
	expand(g, final, fresh)

	for _, r := range g.Regions() {
		if fresh.Has(r.Name) != regions.Has(r.Name) {
			panic(fmt.Sprintf("reach: region %q of player %d changed reachability under the final state; a rule is not monotonic",
				r.Name, g.Player))
		}
		for _, l := range r.Locations {
			open := fresh.Has(r.Name) && (l.Rule == nil || rules.Eval(*l.Rule, final, g.Player))
			if open != locations.Has(l.Name) {
				panic(fmt.Sprintf("reach: location %q of player %d changed reachability under the final state; a rule is not monotonic",
					l.Name, g.Player))
			}
		}
	}
}

// expand grows regions to closure through entrances open under s.
func expand(g *graph.Graph, s *state.CollectionState, regions mapset.Set[string]) {
	var queue []*graph.Region
	for _, r := range g.Regions() {
		if regions.Has(r.Name) {
			queue = append(queue, r)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, e := range current.Exits {
			if regions.Has(e.Target) {
				continue
			}
			if !rules.Eval(e.Rule, s, g.Player) {
				continue
			}
			regions.Put(e.Target)
			if next, ok := g.Region(e.Target); ok {
				queue = append(queue, next)
			}
		}
	}
}

// Unreachable returns the locations of g that stay unreachable even when
// the player holds full, typically every item of the generated pool. A
// non-empty result points at content gated behind items the seed never
// provides.
func Unreachable(g *graph.Graph, full *state.CollectionState) []string {
	res := Reachable(g, full)
	var out []string
	for _, l := range g.Locations() {
		if !res.HasLocation(l.Name) {
			out = append(out, l.Name)
		}
	}
	return out
}
