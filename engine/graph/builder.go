package graph

import (
	"fmt"

	"github.com/nathoo/questlogic/catalog"
	"github.com/nathoo/questlogic/types"
)

// Builder accumulates regions, locations and entrances, then validates and
// freezes them into a Graph. Entrances may name regions added later.
type Builder struct {
	player    int
	start     string
	regions   []*Region
	regionIdx map[string]*Region
	entrances []*Entrance
	problems  []string
}

// NewBuilder starts a graph for player rooted at the start region.
func NewBuilder(player int, start string) *Builder {
	return &Builder{
		player:    player,
		start:     start,
		regionIdx: map[string]*Region{},
	}
}

func (b *Builder) problem(format string, args ...any) {
	b.problems = append(b.problems, fmt.Sprintf(format, args...))
}

// AddRegion declares a region.
func (b *Builder) AddRegion(name string) *Builder {
	if name == "" {
		b.problem("region with empty name")
		return b
	}
	if _, dup := b.regionIdx[name]; dup {
		b.problem("duplicate region %q", name)
		return b
	}
	r := &Region{Name: name}
	b.regions = append(b.regions, r)
	b.regionIdx[name] = r
	return b
}

// AddLocation declares a shuffled location in region.
func (b *Builder) AddLocation(region, name string, id int64, rule *types.Predicate) *Builder {
	return b.addLocation(region, &Location{Name: name, ID: id, Rule: rule})
}

// AddEvent declares an event location holding item, locked.
func (b *Builder) AddEvent(region, name string, item types.Item, rule *types.Predicate) *Builder {
	it := item
	return b.addLocation(region, &Location{Name: name, Event: true, Locked: true, Rule: rule, Item: &it})
}

func (b *Builder) addLocation(region string, l *Location) *Builder {
	r, ok := b.regionIdx[region]
	if !ok {
		b.problem("location %q added to undefined region %q", l.Name, region)
		return b
	}
	l.Region = region
	r.Locations = append(r.Locations, l)
	return b
}

// Connect declares an entrance from one region to another. An empty name
// becomes "from -> to".
func (b *Builder) Connect(from, to, name string, rule types.Predicate) *Builder {
	if name == "" {
		name = from + " -> " + to
	}
	b.entrances = append(b.entrances, &Entrance{Name: name, Source: from, Target: to, Rule: rule})
	return b
}

// Build validates the declarations and returns the graph. Every call
// returns a graph with its own regions, locations and entrances, so a
// builder can be built more than once.
func (b *Builder) Build() (*Graph, error) {
	problems := append([]string(nil), b.problems...)
	problem := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	g := &Graph{
		Player:    b.player,
		start:     b.start,
		regionIdx: map[string]*Region{},
		locIdx:    map[string]*Location{},
		entrances: map[string]*Entrance{},
	}
	for _, r := range b.regions {
		nr := &Region{Name: r.Name}
		for _, l := range r.Locations {
			nl := *l
			if l.Item != nil {
				it := *l.Item
				nl.Item = &it
			}
			nr.Locations = append(nr.Locations, &nl)
		}
		g.regions = append(g.regions, nr)
		g.regionIdx[nr.Name] = nr
	}

	if b.start == "" {
		problem("start region is required")
	} else if _, ok := g.regionIdx[b.start]; !ok {
		problem("start region %q is not defined", b.start)
	}

	for _, e := range b.entrances {
		if _, dup := g.entrances[e.Name]; dup {
			problem("duplicate entrance %q", e.Name)
			continue
		}
		src, ok := g.regionIdx[e.Source]
		if !ok {
			problem("entrance %q leaves undefined region %q", e.Name, e.Source)
			continue
		}
		if _, ok := g.regionIdx[e.Target]; !ok {
			problem("entrance %q points to undefined region %q", e.Name, e.Target)
			continue
		}
		ne := *e
		g.entrances[ne.Name] = &ne
		src.Exits = append(src.Exits, &ne)
	}

	ids := map[int64]string{}
	for _, r := range g.regions {
		for _, l := range r.Locations {
			if l.Name == "" {
				problem("location with empty name in region %q", r.Name)
				continue
			}
			if _, dup := g.locIdx[l.Name]; dup {
				problem("duplicate location %q", l.Name)
				continue
			}
			if l.Event {
				if l.Item == nil || l.Item.Name == "" {
					problem("event %q has no locked item", l.Name)
				}
			} else if l.ID != 0 {
				if other, dup := ids[l.ID]; dup {
					problem("locations %q and %q share id %d", other, l.Name, l.ID)
				}
				ids[l.ID] = l.Name
			}
			g.locIdx[l.Name] = l
			g.locations = append(g.locations, l)
		}
	}

	if len(problems) > 0 {
		return nil, &BuildError{Player: b.player, Problems: problems}
	}
	return g, nil
}

// FromDef builds player's graph from a world declaration. Event items are
// created from cat for player.
func FromDef(def types.WorldDef, cat *catalog.Catalog, player int) (*Graph, error) {
	b := NewBuilder(player, def.Game.Start)
	for _, r := range def.Regions {
		b.AddRegion(r.Name)
	}
	for _, r := range def.Regions {
		for _, loc := range r.Locations {
			if !loc.Event {
				b.AddLocation(r.Name, loc.Name, loc.ID, loc.Rule)
				continue
			}
			item, err := cat.Create(loc.Item, player)
			if err != nil {
				b.problem("event %q: %v", loc.Name, err)
				continue
			}
			b.AddEvent(r.Name, loc.Name, item, loc.Rule)
		}
		for _, exit := range r.Exits {
			b.Connect(r.Name, exit.Target, exit.Name, exit.Rule)
		}
	}
	return b.Build()
}
