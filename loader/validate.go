package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/questlogic/engine/goal"
	"github.com/nathoo/questlogic/engine/rules"
	"github.com/nathoo/questlogic/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

var validClassifications = map[types.Classification]bool{
	types.Progression: true,
	types.Useful:      true,
	types.Filler:      true,
	types.Trap:        true,
}

// Validate checks a world declaration for referential integrity. The
// result is never nil; it is a failure only when Errors is non-empty.
//
// Warnings flag content that loads but is likely wrong: rules over
// non-progression items, and Not, which breaks the monotonicity
// reachability relies on.
func Validate(def *types.WorldDef) *ValidationError {
	ve := &ValidationError{}
	errorf := func(format string, args ...any) {
		ve.Errors = append(ve.Errors, fmt.Sprintf(format, args...))
	}
	warnf := func(format string, args ...any) {
		ve.Warnings = append(ve.Warnings, fmt.Sprintf(format, args...))
	}

	if def.Game.Title == "" {
		errorf("Game.title is required")
	}

	items := map[string]types.ItemDef{}
	itemIDs := map[int64]string{}
	for _, it := range def.Items {
		if _, dup := items[it.Name]; dup {
			errorf("duplicate item %q", it.Name)
		}
		if other, dup := itemIDs[it.ID]; dup && it.ID != 0 {
			errorf("items %q and %q share id %d", other, it.Name, it.ID)
		}
		if !validClassifications[it.Classification] {
			errorf("item %q has unknown classification %q", it.Name, it.Classification)
		}
		items[it.Name] = it
		itemIDs[it.ID] = it.Name
	}

	checkRule := func(owner string, p types.Predicate) {
		for _, name := range rules.ItemsOf(p) {
			it, ok := items[name]
			switch {
			case !ok:
				errorf("%s rule references undefined item %q", owner, name)
			case it.Classification != types.Progression:
				warnf("%s rule references %s item %q; only progression items should gate logic",
					owner, it.Classification, name)
			}
		}
		if !rules.Monotonic(p) {
			warnf("%s rule uses Not; reachability assumes more items never close access", owner)
		}
	}

	regions := map[string]bool{}
	for _, r := range def.Regions {
		regions[r.Name] = true
	}

	if def.Game.Start == "" {
		errorf("Game.start is required")
	} else if !regions[def.Game.Start] {
		errorf("start region %q not found in defined regions", def.Game.Start)
	}

	locations := map[string]bool{}
	locIDs := map[int64]string{}
	for _, r := range def.Regions {
		for _, loc := range r.Locations {
			if locations[loc.Name] {
				errorf("duplicate location %q", loc.Name)
			}
			locations[loc.Name] = true
			if loc.Event {
				if loc.Item == "" {
					errorf("event %q has no item", loc.Name)
				} else if _, ok := items[loc.Item]; !ok {
					errorf("event %q grants undefined item %q", loc.Name, loc.Item)
				}
			} else {
				if other, dup := locIDs[loc.ID]; dup {
					errorf("locations %q and %q share id %d", other, loc.Name, loc.ID)
				}
				locIDs[loc.ID] = loc.Name
			}
			if loc.Rule != nil {
				checkRule(fmt.Sprintf("location %q", loc.Name), *loc.Rule)
			}
		}
		for _, exit := range r.Exits {
			if !regions[exit.Target] {
				errorf("entrance %q points to undefined region %q", exit.Name, exit.Target)
			}
			checkRule(fmt.Sprintf("entrance %q", exit.Name), exit.Rule)
		}
	}

	validateGoal(def.Goal, items, errorf, checkRule)
	return ve
}

func validateGoal(g types.GoalDef, items map[string]types.ItemDef,
	errorf func(string, ...any), checkRule func(string, types.Predicate)) {
	if g.Strategy == "" && g.Source == "" {
		errorf("no Goal{} definition found")
		return
	}
	if _, err := goal.New(g, 1); err != nil {
		errorf("goal: %v", err)
		return
	}
	switch g.Strategy {
	case types.RunTokens:
		if _, ok := items[g.Token]; !ok {
			errorf("goal token %q is not a defined item", g.Token)
		}
	case types.DistinctWins:
		for _, name := range g.Group {
			if _, ok := items[name]; !ok {
				errorf("goal group member %q is not a defined item", name)
			}
		}
	case types.CustomGoal:
		checkRule("goal", *g.Rule)
	}
}
