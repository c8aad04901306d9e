// Package progress diffs reachable locations against checked locations for
// a player-facing "what's left" report.
package progress

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/questlogic/engine/graph"
	"github.com/nathoo/questlogic/engine/reach"
	"github.com/nathoo/questlogic/engine/state"
)

// Report classifies every non-event location of a graph. All lists are in
// graph order.
type Report struct {
	// Missing are reachable and not yet checked.
	Missing []string
	// OutOfLogic are neither reachable nor checked.
	OutOfLogic []string
	// Checked are checked and reachable.
	Checked []string
	// CheckedUnreached were checked although the state does not reach them.
	CheckedUnreached []string
	// Unknown are checked names that are not locations of the graph.
	Unknown []string
}

// Build runs reachability for s and classifies g's locations against
// checked. Event locations are never reported.
func Build(g *graph.Graph, s *state.CollectionState, checked []string) Report {
	return FromResult(g, reach.Reachable(g, s), checked)
}

// FromResult classifies g's locations using an existing reachability result.
func FromResult(g *graph.Graph, res *reach.Result, checked []string) Report {
	done := mapset.New[string]()
	for _, name := range checked {
		done.Put(name)
	}

	var rep Report
	known := mapset.New[string]()
	for _, l := range g.Locations() {
		known.Put(l.Name)
		if l.Event {
			continue
		}
		switch reached := res.HasLocation(l.Name); {
		case done.Has(l.Name) && reached:
			rep.Checked = append(rep.Checked, l.Name)
		case done.Has(l.Name):
			rep.CheckedUnreached = append(rep.CheckedUnreached, l.Name)
		case reached:
			rep.Missing = append(rep.Missing, l.Name)
		default:
			rep.OutOfLogic = append(rep.OutOfLogic, l.Name)
		}
	}
	seen := mapset.New[string]()
	for _, name := range checked {
		if !known.Has(name) && !seen.Has(name) {
			seen.Put(name)
			rep.Unknown = append(rep.Unknown, name)
		}
	}
	return rep
}

// Total returns the number of classified locations.
func (r Report) Total() int {
	return len(r.Missing) + len(r.OutOfLogic) + len(r.Checked) + len(r.CheckedUnreached)
}
