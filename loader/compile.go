// Package loader loads Lua content definitions into a world declaration.
// The Lua VM is discarded after loading; nothing Lua survives into the
// engine.
package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/questlogic/engine/rules"
	"github.com/nathoo/questlogic/types"
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or def if missing.
func getNumber(tbl *lua.LTable, key string, def float64) float64 {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return def
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}

// stringList reads the array part of a table as strings.
func stringList(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// compile converts the collected Lua data into a world declaration. Problems
// that leave a declaration unplaceable, such as a location in an undefined
// region, are returned alongside the partial result.
func compile(coll *collector) (*types.WorldDef, []string, error) {
	if coll.game == nil {
		return nil, nil, fmt.Errorf("no Game{} definition found")
	}
	def := &types.WorldDef{Game: compileGame(coll.game)}
	var problems []string

	nextItem := def.Game.BaseID
	for _, raw := range coll.items {
		def.Items = append(def.Items, compileItem(raw, &nextItem))
	}

	regionIdx := map[string]int{}
	for _, raw := range coll.regions {
		if _, dup := regionIdx[raw.name]; dup {
			problems = append(problems, fmt.Sprintf("duplicate region %q", raw.name))
			continue
		}
		regionIdx[raw.name] = len(def.Regions)
		def.Regions = append(def.Regions, types.RegionDef{Name: raw.name})
	}

	nextLoc := def.Game.BaseID
	for _, raw := range coll.locations {
		loc, err := compileLocation(raw, &nextLoc)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		region := getString(raw.table, "region")
		i, ok := regionIdx[region]
		if !ok {
			problems = append(problems, fmt.Sprintf(
				"location %q is in undefined region %q", raw.name, region))
			continue
		}
		def.Regions[i].Locations = append(def.Regions[i].Locations, loc)
	}

	for _, raw := range coll.entrances {
		from, to := getString(raw.table, "from"), getString(raw.table, "to")
		rule := rules.Always()
		if t := getTable(raw.table, "rule"); t != nil {
			p, err := compilePredicate(t)
			if err != nil {
				problems = append(problems, fmt.Sprintf("entrance %q rule: %v", raw.name, err))
				continue
			}
			rule = p
		}
		i, ok := regionIdx[from]
		if !ok {
			problems = append(problems, fmt.Sprintf(
				"entrance %q leaves undefined region %q", raw.name, from))
			continue
		}
		def.Regions[i].Exits = append(def.Regions[i].Exits,
			types.EntranceDef{Name: raw.name, Target: to, Rule: rule})
	}

	if coll.goal != nil {
		g, err := compileGoal(coll.goal)
		if err != nil {
			problems = append(problems, fmt.Sprintf("goal: %v", err))
		}
		def.Goal = g
	}

	return def, problems, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Start:   getString(tbl, "start"),
		BaseID:  int64(getNumber(tbl, "base_id", 1)),
	}
}

// compileItem reads an item. Items without an explicit id take the next
// one in declaration order.
func compileItem(raw rawDecl, next *int64) types.ItemDef {
	class := types.Classification(getString(raw.table, "classification"))
	if class == "" {
		class = types.Filler
	}
	id := int64(getNumber(raw.table, "id", 0))
	if id == 0 {
		id = *next
		*next++
	}
	return types.ItemDef{ID: id, Name: raw.name, Classification: class}
}

// compileLocation reads a location or event. Non-event locations without
// an explicit id take the next one in declaration order; events have none.
func compileLocation(raw rawDecl, next *int64) (types.LocationDef, error) {
	loc := types.LocationDef{Name: raw.name, Event: raw.event}
	if t := getTable(raw.table, "rule"); t != nil {
		p, err := compilePredicate(t)
		if err != nil {
			return loc, fmt.Errorf("location %q rule: %w", raw.name, err)
		}
		loc.Rule = &p
	}
	if raw.event {
		loc.Item = getString(raw.table, "item")
		return loc, nil
	}
	loc.ID = int64(getNumber(raw.table, "id", 0))
	if loc.ID == 0 {
		loc.ID = *next
		*next++
	}
	return loc, nil
}

func compileGoal(tbl *lua.LTable) (types.GoalDef, error) {
	g := types.GoalDef{
		Strategy: types.GoalStrategy(getString(tbl, "strategy")),
		Source:   types.GoalSource(getString(tbl, "source")),
		Required: int(getNumber(tbl, "required", 0)),
		Token:    getString(tbl, "token"),
		Group:    stringList(getTable(tbl, "group")),
	}
	if t := getTable(tbl, "rule"); t != nil {
		p, err := compilePredicate(t)
		if err != nil {
			return g, err
		}
		g.Rule = &p
	}
	return g, nil
}

// compilePredicate converts a helper-built table, e.g. And(Has("a"), ...),
// into a Predicate.
func compilePredicate(tbl *lua.LTable) (types.Predicate, error) {
	kind := types.PredicateKind(getString(tbl, "kind"))
	p := types.Predicate{Kind: kind}
	switch kind {
	case types.KindConst:
		p.Value = lua.LVAsBool(tbl.RawGetString("value"))
	case types.KindHasItem:
		p = rules.HasItem(getString(tbl, "item"), int(getNumber(tbl, "count", 1)))
		if p.Item == "" {
			return p, fmt.Errorf("has_item without an item")
		}
	case types.KindHasAny, types.KindHasAll:
		p.Items = stringList(getTable(tbl, "items"))
	case types.KindHasGroup:
		p.Items = stringList(getTable(tbl, "items"))
		p.Count = int(getNumber(tbl, "count", 0))
	case types.KindAnd, types.KindOr, types.KindNot:
		inner := getTable(tbl, "inner")
		for i := 1; inner != nil && i <= inner.MaxN(); i++ {
			t, ok := inner.RawGetInt(i).(*lua.LTable)
			if !ok {
				return p, fmt.Errorf("%s operand %d is not a rule", kind, i)
			}
			sub, err := compilePredicate(t)
			if err != nil {
				return p, err
			}
			p.Inner = append(p.Inner, sub)
		}
		if kind == types.KindNot && len(p.Inner) != 1 {
			return p, fmt.Errorf("not takes exactly one rule")
		}
	case "":
		return p, fmt.Errorf("table is not a rule; build rules with Has, And, Or and friends")
	default:
		return p, fmt.Errorf("unknown rule kind %q", kind)
	}
	return p, nil
}

// sortedLuaFiles returns .lua files with game.lua first and the rest sorted
// alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
