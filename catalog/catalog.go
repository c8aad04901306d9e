// Package catalog allocates stable identifiers for content and indexes the
// resulting item table.
package catalog

import (
	"fmt"
	"sort"

	"github.com/nathoo/questlogic/types"
)

// AllocateIDs assigns consecutive ids starting at base to names, in order.
// The same input always yields the same mapping. Empty or duplicate names
// are rejected.
func AllocateIDs(base int64, names []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(names))
	next := base
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("name at position %d is empty", i)
		}
		if _, dup := ids[name]; dup {
			return nil, fmt.Errorf("duplicate name %q", name)
		}
		ids[name] = next
		next++
	}
	return ids, nil
}

// Catalog indexes a content catalog's items and location ids.
type Catalog struct {
	Game      string
	items     []types.ItemDef
	byName    map[string]types.ItemDef
	byID      map[int64]types.ItemDef
	groups    map[string][]string
	locations map[string]int64
}

// New builds a catalog. Item names and non-zero ids must be unique.
func New(game string, items []types.ItemDef) (*Catalog, error) {
	c := &Catalog{
		Game:      game,
		items:     make([]types.ItemDef, 0, len(items)),
		byName:    make(map[string]types.ItemDef, len(items)),
		byID:      make(map[int64]types.ItemDef, len(items)),
		groups:    map[string][]string{},
		locations: map[string]int64{},
	}
	for _, it := range items {
		if it.Name == "" {
			return nil, fmt.Errorf("item with id %d has no name", it.ID)
		}
		if _, dup := c.byName[it.Name]; dup {
			return nil, fmt.Errorf("duplicate item %q", it.Name)
		}
		if it.ID != 0 {
			if other, dup := c.byID[it.ID]; dup {
				return nil, fmt.Errorf("items %q and %q share id %d", other.Name, it.Name, it.ID)
			}
			c.byID[it.ID] = it
		}
		c.byName[it.Name] = it
		c.items = append(c.items, it)
	}
	return c, nil
}

// FromWorld builds a catalog from a world declaration, including the
// location name to id table.
func FromWorld(def types.WorldDef) (*Catalog, error) {
	c, err := New(def.Game.Title, def.Items)
	if err != nil {
		return nil, err
	}
	for _, r := range def.Regions {
		for _, loc := range r.Locations {
			if loc.ID == 0 {
				continue
			}
			if err := c.AddLocation(loc.Name, loc.ID); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// AddLocation records a location id. Names and ids must be unique.
func (c *Catalog) AddLocation(name string, id int64) error {
	if _, dup := c.locations[name]; dup {
		return fmt.Errorf("duplicate location %q", name)
	}
	for other, oid := range c.locations {
		if oid == id {
			return fmt.Errorf("locations %q and %q share id %d", other, name, id)
		}
	}
	c.locations[name] = id
	return nil
}

// SetGroup names a set of items.
func (c *Catalog) SetGroup(group string, members []string) {
	c.groups[group] = append([]string(nil), members...)
}

// Group returns the members of a named group.
func (c *Catalog) Group(group string) ([]string, bool) {
	m, ok := c.groups[group]
	return append([]string(nil), m...), ok
}

// Item looks up an item by name.
func (c *Catalog) Item(name string) (types.ItemDef, bool) {
	it, ok := c.byName[name]
	return it, ok
}

// ItemByID looks up an item by id.
func (c *Catalog) ItemByID(id int64) (types.ItemDef, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Items returns all item definitions in declaration order.
func (c *Catalog) Items() []types.ItemDef {
	return append([]types.ItemDef(nil), c.items...)
}

// Create instantiates the named item for player.
func (c *Catalog) Create(name string, player int) (types.Item, error) {
	def, ok := c.byName[name]
	if !ok {
		return types.Item{}, fmt.Errorf("unknown item %q", name)
	}
	return types.Item{
		ID:             def.ID,
		Name:           def.Name,
		Classification: def.Classification,
		Player:         player,
	}, nil
}

// LocationID returns the id of a named location.
func (c *Catalog) LocationID(name string) (int64, bool) {
	id, ok := c.locations[name]
	return id, ok
}

// LocationNames returns all location names sorted by id.
func (c *Catalog) LocationNames() []string {
	names := make([]string, 0, len(c.locations))
	for name := range c.locations {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return c.locations[names[i]] < c.locations[names[j]]
	})
	return names
}
