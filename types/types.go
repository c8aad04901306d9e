// Package types defines the shared data structures for the questlogic engine.
// The package holds declarations only; behaviour lives in engine/ and loader/.
package types

// Classification tags how an item participates in logic. Only progression
// items may appear in predicates.
type Classification string

const (
	Progression Classification = "progression"
	Useful      Classification = "useful"
	Filler      Classification = "filler"
	Trap        Classification = "trap"
)

// ItemDef is a catalog entry. IDs are allocated once per catalog.
type ItemDef struct {
	ID             int64
	Name           string
	Classification Classification
}

// Item is a catalog item owned by a specific player.
type Item struct {
	ID             int64
	Name           string
	Classification Classification
	Player         int
}

// PredicateKind tags the variant held by a Predicate.
type PredicateKind string

const (
	KindConst    PredicateKind = "const"
	KindHasItem  PredicateKind = "has_item"
	KindHasAny   PredicateKind = "has_any"
	KindHasAll   PredicateKind = "has_all"
	KindHasGroup PredicateKind = "has_group"
	KindAnd      PredicateKind = "and"
	KindOr       PredicateKind = "or"
	KindNot      PredicateKind = "not"
)

// Predicate is a value-typed boolean rule over a collection state.
// Which fields are meaningful depends on Kind:
//
//	const      Value
//	has_item   Item, Count
//	has_any    Items
//	has_all    Items
//	has_group  Items (the group), Count (distinct members required)
//	and/or     Inner
//	not        Inner[0]
type Predicate struct {
	Kind  PredicateKind
	Value bool
	Item  string
	Count int
	Items []string
	Inner []Predicate
}

// LocationDef declares a location inside a region.
type LocationDef struct {
	Name  string
	ID    int64      // 0 for event locations
	Event bool       // content is synthesized and locked, never shuffled
	Item  string     // locked item name, events only
	Rule  *Predicate // nil means no extra requirement beyond the region
}

// EntranceDef declares a directed edge out of a region.
type EntranceDef struct {
	Name   string
	Target string
	Rule   Predicate
}

// RegionDef declares a region with its locations and exits, in order.
type RegionDef struct {
	Name      string
	Locations []LocationDef
	Exits     []EntranceDef
}

// GameDef holds catalog metadata.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Start   string // root region name
	BaseID  int64  // first id handed out by the allocator
}

// GoalStrategy selects how the completion condition counts wins.
type GoalStrategy string

const (
	// RunTokens counts copies of a single token item.
	RunTokens GoalStrategy = "run_tokens"
	// DistinctWins counts distinct members of a group held at least once.
	DistinctWins GoalStrategy = "distinct_wins"
	// CustomGoal evaluates an arbitrary predicate.
	CustomGoal GoalStrategy = "custom"
)

// GoalSource selects which state variant the completion condition reads.
type GoalSource string

const (
	// Explicit evaluates against items the player actually holds.
	Explicit GoalSource = "explicit"
	// Augmented evaluates against the state after reachability has
	// virtually collected reachable event items.
	Augmented GoalSource = "augmented"
)

// GoalDef is the completion condition of a catalog.
type GoalDef struct {
	Strategy GoalStrategy
	Source   GoalSource
	Required int
	Token    string     // run_tokens
	Group    []string   // distinct_wins
	Rule     *Predicate // custom
}

// WorldDef is the complete declaration of a content catalog for one player.
type WorldDef struct {
	Game    GameDef
	Items   []ItemDef
	Regions []RegionDef
	Goal    GoalDef
}
