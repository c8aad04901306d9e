// Package graph holds the per-player region graph: regions owning
// locations, connected by predicate-gated entrances.
package graph

import (
	"fmt"

	"github.com/nathoo/questlogic/types"
)

// Location is a point in a region where an item may be placed.
type Location struct {
	Name   string
	ID     int64 // 0 for events
	Event  bool
	Locked bool
	Region string
	Rule   *types.Predicate // nil: reachable whenever its region is
	Item   *types.Item      // placed item, nil until filled
}

// Entrance is a directed, predicate-gated edge between regions.
type Entrance struct {
	Name   string
	Source string
	Target string
	Rule   types.Predicate
}

// Region is a graph node. Location and exit order is declaration order.
type Region struct {
	Name      string
	Locations []*Location
	Exits     []*Entrance
}

// Graph is one player's region graph. Its shape is fixed once built;
// entrance rules may be replaced until Seal is called.
type Graph struct {
	Player int

	start     string
	regions   []*Region
	regionIdx map[string]*Region
	locations []*Location
	locIdx    map[string]*Location
	entrances map[string]*Entrance
	sealed    bool
}

// Start returns the root region.
func (g *Graph) Start() *Region {
	return g.regionIdx[g.start]
}

// Region looks up a region by name.
func (g *Graph) Region(name string) (*Region, bool) {
	r, ok := g.regionIdx[name]
	return r, ok
}

// Regions returns all regions in declaration order.
func (g *Graph) Regions() []*Region {
	return append([]*Region(nil), g.regions...)
}

// Location looks up a location by name.
func (g *Graph) Location(name string) (*Location, bool) {
	l, ok := g.locIdx[name]
	return l, ok
}

// Locations returns all locations in region then declaration order.
func (g *Graph) Locations() []*Location {
	return append([]*Location(nil), g.locations...)
}

// Entrance looks up an entrance by name.
func (g *Graph) Entrance(name string) (*Entrance, bool) {
	e, ok := g.entrances[name]
	return e, ok
}

// NumRegions returns the number of regions.
func (g *Graph) NumRegions() int { return len(g.regions) }

// NumLocations returns the number of locations, events included.
func (g *Graph) NumLocations() int { return len(g.locations) }

// SetRule replaces an entrance's predicate. Only allowed before Seal,
// for options that change before generation starts.
func (g *Graph) SetRule(entrance string, rule types.Predicate) error {
	if g.sealed {
		return fmt.Errorf("set rule on %q: %w", entrance, ErrSealed)
	}
	e, ok := g.entrances[entrance]
	if !ok {
		return fmt.Errorf("set rule on %q: %w", entrance, ErrUnknownEntrance)
	}
	e.Rule = rule
	return nil
}

// Seal freezes entrance rules. Generation calls it before the first
// reachability query.
func (g *Graph) Seal() { g.sealed = true }

// Sealed reports whether Seal has been called.
func (g *Graph) Sealed() bool { return g.sealed }

// Place puts item into a non-locked, empty location.
func (g *Graph) Place(location string, item types.Item) error {
	l, ok := g.locIdx[location]
	if !ok {
		return fmt.Errorf("place into %q: %w", location, ErrUnknownLocation)
	}
	if l.Locked {
		return fmt.Errorf("place into %q: %w", location, ErrLocked)
	}
	if l.Item != nil {
		return fmt.Errorf("place into %q: %w", location, ErrAlreadyPlaced)
	}
	it := item
	l.Item = &it
	return nil
}

// Clear removes a placed item from a non-locked location.
func (g *Graph) Clear(location string) error {
	l, ok := g.locIdx[location]
	if !ok {
		return fmt.Errorf("clear %q: %w", location, ErrUnknownLocation)
	}
	if l.Locked {
		return fmt.Errorf("clear %q: %w", location, ErrLocked)
	}
	l.Item = nil
	return nil
}
