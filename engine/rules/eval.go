package rules

import (
	"sort"

	"github.com/nathoo/questlogic/engine/state"
	"github.com/nathoo/questlogic/types"
)

// Eval evaluates p for player against s.
func Eval(p types.Predicate, s *state.CollectionState, player int) bool {
	switch p.Kind {
	case types.KindConst:
		return p.Value

	case types.KindHasItem:
		count := p.Count
		if count < 1 {
			count = 1
		}
		return s.Count(player, p.Item) >= count

	case types.KindHasAny:
		for _, item := range p.Items {
			if s.Has(player, item) {
				return true
			}
		}
		return false

	case types.KindHasAll:
		for _, item := range p.Items {
			if !s.Has(player, item) {
				return false
			}
		}
		return true

	case types.KindHasGroup:
		return distinctHeld(p.Items, s, player) >= p.Count

	case types.KindAnd:
		for _, inner := range p.Inner {
			if !Eval(inner, s, player) {
				return false
			}
		}
		return true

	case types.KindOr:
		for _, inner := range p.Inner {
			if Eval(inner, s, player) {
				return true
			}
		}
		return false

	case types.KindNot:
		if len(p.Inner) == 0 {
			return true
		}
		return !Eval(p.Inner[0], s, player)

	default:
		return false
	}
}

// distinctHeld counts group members held at least once. Duplicate names in
// the group are counted once.
func distinctHeld(group []string, s *state.CollectionState, player int) int {
	seen := make(map[string]bool, len(group))
	n := 0
	for _, item := range group {
		if seen[item] {
			continue
		}
		seen[item] = true
		if s.Has(player, item) {
			n++
		}
	}
	return n
}

// Equivalent reports whether a and b give the same result for player on
// every one of states.
func Equivalent(a, b types.Predicate, player int, states ...*state.CollectionState) bool {
	for _, s := range states {
		if Eval(a, s, player) != Eval(b, s, player) {
			return false
		}
	}
	return true
}

// ItemsOf returns the sorted, de-duplicated item names p refers to.
func ItemsOf(p types.Predicate) []string {
	set := map[string]bool{}
	collectItems(p, set)
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func collectItems(p types.Predicate, set map[string]bool) {
	if p.Item != "" {
		set[p.Item] = true
	}
	for _, item := range p.Items {
		set[item] = true
	}
	for _, inner := range p.Inner {
		collectItems(inner, set)
	}
}

// Monotonic reports whether p can only stay true as items are added.
// Every kind except not is monotonic.
func Monotonic(p types.Predicate) bool {
	if p.Kind == types.KindNot {
		return false
	}
	for _, inner := range p.Inner {
		if !Monotonic(inner) {
			return false
		}
	}
	return true
}
