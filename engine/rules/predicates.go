// Package rules builds and evaluates access predicates.
package rules

import "github.com/nathoo/questlogic/types"

// Const returns a predicate that always evaluates to v.
func Const(v bool) types.Predicate {
	return types.Predicate{Kind: types.KindConst, Value: v}
}

// Always is the unconditional predicate.
func Always() types.Predicate { return Const(true) }

// Never is the predicate that never holds.
func Never() types.Predicate { return Const(false) }

// HasItem holds when the player has at least count copies of item.
// A count below 1 is treated as 1.
func HasItem(item string, count int) types.Predicate {
	if count < 1 {
		count = 1
	}
	return types.Predicate{Kind: types.KindHasItem, Item: item, Count: count}
}

// Has is HasItem(item, 1).
func Has(item string) types.Predicate { return HasItem(item, 1) }

// HasAny holds when the player has at least one of items.
func HasAny(items ...string) types.Predicate {
	return types.Predicate{Kind: types.KindHasAny, Items: copyStrings(items)}
}

// HasAll holds when the player has every one of items. HasAll() is true.
func HasAll(items ...string) types.Predicate {
	return types.Predicate{Kind: types.KindHasAll, Items: copyStrings(items)}
}

// HasCountFromGroup holds when at least n distinct members of group are
// held. Extra copies of one member do not count twice.
func HasCountFromGroup(group []string, n int) types.Predicate {
	return types.Predicate{Kind: types.KindHasGroup, Items: copyStrings(group), Count: n}
}

// And holds when every inner predicate holds. And() is true.
func And(preds ...types.Predicate) types.Predicate {
	return types.Predicate{Kind: types.KindAnd, Inner: append([]types.Predicate(nil), preds...)}
}

// Or holds when any inner predicate holds. Or() is false.
func Or(preds ...types.Predicate) types.Predicate {
	return types.Predicate{Kind: types.KindOr, Inner: append([]types.Predicate(nil), preds...)}
}

// Not negates p. Negation is not monotonic in item count, so content
// validation flags it.
func Not(p types.Predicate) types.Predicate {
	return types.Predicate{Kind: types.KindNot, Inner: []types.Predicate{p}}
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
