package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/nathoo/questlogic/types"
)

// rawDecl is one named constructor call, e.g. Region "Menu" { ... }.
type rawDecl struct {
	name  string
	table *lua.LTable
	event bool // Event rather than Location
}

// collector accumulates Lua definitions during file execution, in
// declaration order.
type collector struct {
	game      *lua.LTable
	goal      *lua.LTable
	items     []rawDecl
	regions   []rawDecl
	locations []rawDecl // locations and events, interleaved
	entrances []rawDecl
}

type options struct {
	logger *zap.Logger
}

// Option configures Load.
type Option func(*options)

// WithLogger routes validation warnings to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Load reads all .lua files from dir, compiles them into a world
// declaration and validates it. The Lua VM is discarded after loading.
func Load(dir string, opts ...Option) (*types.WorldDef, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}

	// Sort: game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		path := filepath.Join(dir, f)
		if err := L.DoFile(path); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	def, problems, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling content: %w", err)
	}

	ve := Validate(def)
	ve.Errors = append(problems, ve.Errors...)
	for _, w := range ve.Warnings {
		o.logger.Warn("content warning", zap.String("dir", dir), zap.String("warning", w))
	}
	if len(ve.Errors) > 0 {
		return nil, ve
	}

	o.logger.Debug("content loaded",
		zap.String("game", def.Game.Title),
		zap.Int("files", len(luaFiles)),
		zap.Int("items", len(def.Items)),
		zap.Int("regions", len(def.Regions)))
	return def, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Content must be deterministic.
	if mathTbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		mathTbl.RawSetString("random", lua.LNil)
		mathTbl.RawSetString("randomseed", lua.LNil)
	}
}
