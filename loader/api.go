package loader

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/questlogic/types"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerPredicateHelpers(L)
}

// curried returns a constructor used as Name "id" { ... }.
func curried(L *lua.LState, into *[]rawDecl, event bool) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.OptTable(1, L.NewTable())
			*into = append(*into, rawDecl{name: name, table: tbl, event: event})
			return 0
		}))
		return 1
	})
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", start = "...", base_id = ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Goal { strategy = "...", source = "...", ... }
	L.SetGlobal("Goal", L.NewFunction(func(L *lua.LState) int {
		coll.goal = L.CheckTable(1)
		return 0
	}))

	L.SetGlobal("Item", curried(L, &coll.items, false))
	L.SetGlobal("Region", curried(L, &coll.regions, false))
	L.SetGlobal("Location", curried(L, &coll.locations, false))
	L.SetGlobal("Event", curried(L, &coll.locations, true))
	L.SetGlobal("Entrance", curried(L, &coll.entrances, false))
}

func predicateTable(L *lua.LState, kind types.PredicateKind) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("kind", lua.LString(kind))
	return tbl
}

// stringArgs collects string arguments from position from onward. A single
// table argument is read as a list.
func stringArgs(L *lua.LState, from int) *lua.LTable {
	if tbl, ok := L.Get(from).(*lua.LTable); ok && L.GetTop() == from {
		return tbl
	}
	list := L.NewTable()
	for i := from; i <= L.GetTop(); i++ {
		list.Append(lua.LString(L.CheckString(i)))
	}
	return list
}

// tableArgs collects predicate table arguments from position 1 onward.
func tableArgs(L *lua.LState) *lua.LTable {
	list := L.NewTable()
	for i := 1; i <= L.GetTop(); i++ {
		list.Append(L.CheckTable(i))
	}
	return list
}

func registerPredicateHelpers(L *lua.LState) {
	// Always() / Never()
	L.SetGlobal("Always", L.NewFunction(func(L *lua.LState) int {
		tbl := predicateTable(L, types.KindConst)
		tbl.RawSetString("value", lua.LTrue)
		L.Push(tbl)
		return 1
	}))
	L.SetGlobal("Never", L.NewFunction(func(L *lua.LState) int {
		tbl := predicateTable(L, types.KindConst)
		tbl.RawSetString("value", lua.LFalse)
		L.Push(tbl)
		return 1
	}))

	// Has("item") / Has("item", count)
	L.SetGlobal("Has", L.NewFunction(func(L *lua.LState) int {
		tbl := predicateTable(L, types.KindHasItem)
		tbl.RawSetString("item", lua.LString(L.CheckString(1)))
		tbl.RawSetString("count", lua.LNumber(L.OptInt(2, 1)))
		L.Push(tbl)
		return 1
	}))

	// HasAny("a", "b") or HasAny({"a", "b"})
	L.SetGlobal("HasAny", L.NewFunction(func(L *lua.LState) int {
		tbl := predicateTable(L, types.KindHasAny)
		tbl.RawSetString("items", stringArgs(L, 1))
		L.Push(tbl)
		return 1
	}))

	// HasAll("a", "b") or HasAll({"a", "b"})
	L.SetGlobal("HasAll", L.NewFunction(func(L *lua.LState) int {
		tbl := predicateTable(L, types.KindHasAll)
		tbl.RawSetString("items", stringArgs(L, 1))
		L.Push(tbl)
		return 1
	}))

	// HasFromGroup({"a", "b", "c"}, n)
	L.SetGlobal("HasFromGroup", L.NewFunction(func(L *lua.LState) int {
		tbl := predicateTable(L, types.KindHasGroup)
		tbl.RawSetString("items", L.CheckTable(1))
		tbl.RawSetString("count", lua.LNumber(L.CheckInt(2)))
		L.Push(tbl)
		return 1
	}))

	// And(p1, p2, ...) / Or(p1, p2, ...)
	L.SetGlobal("And", L.NewFunction(func(L *lua.LState) int {
		tbl := predicateTable(L, types.KindAnd)
		tbl.RawSetString("inner", tableArgs(L))
		L.Push(tbl)
		return 1
	}))
	L.SetGlobal("Or", L.NewFunction(func(L *lua.LState) int {
		tbl := predicateTable(L, types.KindOr)
		tbl.RawSetString("inner", tableArgs(L))
		L.Push(tbl)
		return 1
	}))

	// Not(p)
	L.SetGlobal("Not", L.NewFunction(func(L *lua.LState) int {
		tbl := predicateTable(L, types.KindNot)
		inner := L.NewTable()
		inner.Append(L.CheckTable(1))
		tbl.RawSetString("inner", inner)
		L.Push(tbl)
		return 1
	}))
}
