// Package state holds the collected-items record used to evaluate predicates.
// A CollectionState is a set of per-player item multisets.
package state

import (
	"sort"

	"github.com/nathoo/questlogic/types"
)

// CollectionState records which items each player currently holds.
// It is not safe for concurrent mutation; clone it before handing it to
// concurrent readers.
type CollectionState struct {
	items map[int]map[string]int
}

// New creates an empty collection state.
func New() *CollectionState {
	return &CollectionState{items: map[int]map[string]int{}}
}

// FromItems creates a state holding the given items, each counted once per
// occurrence.
func FromItems(items []types.Item) *CollectionState {
	s := New()
	for _, it := range items {
		s.Collect(it)
	}
	return s
}

// Collect adds one copy of item to its owner's multiset.
func (s *CollectionState) Collect(item types.Item) {
	s.Add(item.Player, item.Name, 1)
}

// Add adds n copies of the named item for player. Non-positive n is a no-op.
func (s *CollectionState) Add(player int, name string, n int) {
	if n <= 0 {
		return
	}
	bag, ok := s.items[player]
	if !ok {
		bag = map[string]int{}
		s.items[player] = bag
	}
	bag[name] += n
}

// Remove removes up to n copies of the named item for player. It returns
// the number actually removed.
func (s *CollectionState) Remove(player int, name string, n int) int {
	bag, ok := s.items[player]
	if !ok || n <= 0 {
		return 0
	}
	have := bag[name]
	if n > have {
		n = have
	}
	if have-n == 0 {
		delete(bag, name)
	} else {
		bag[name] = have - n
	}
	return n
}

// Count returns how many copies of the named item player holds.
func (s *CollectionState) Count(player int, name string) int {
	return s.items[player][name]
}

// Has returns true if player holds at least one copy of the named item.
func (s *CollectionState) Has(player int, name string) bool {
	return s.Count(player, name) > 0
}

// Total returns the number of item copies player holds.
func (s *CollectionState) Total(player int) int {
	total := 0
	for _, n := range s.items[player] {
		total += n
	}
	return total
}

// Items returns a copy of player's multiset.
func (s *CollectionState) Items(player int) map[string]int {
	out := make(map[string]int, len(s.items[player]))
	for name, n := range s.items[player] {
		out[name] = n
	}
	return out
}

// Names returns the item names player holds, sorted.
func (s *CollectionState) Names(player int) []string {
	names := make([]string, 0, len(s.items[player]))
	for name := range s.items[player] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Players returns the players with at least one item, sorted.
func (s *CollectionState) Players() []int {
	players := make([]int, 0, len(s.items))
	for p, bag := range s.items {
		if len(bag) > 0 {
			players = append(players, p)
		}
	}
	sort.Ints(players)
	return players
}

// Clone returns an independent deep copy.
func (s *CollectionState) Clone() *CollectionState {
	c := &CollectionState{items: make(map[int]map[string]int, len(s.items))}
	for p, bag := range s.items {
		cp := make(map[string]int, len(bag))
		for name, n := range bag {
			cp[name] = n
		}
		c.items[p] = cp
	}
	return c
}

// Contains returns true if every count in other is matched or exceeded by s.
func (s *CollectionState) Contains(other *CollectionState) bool {
	for p, bag := range other.items {
		for name, n := range bag {
			if s.Count(p, name) < n {
				return false
			}
		}
	}
	return true
}
