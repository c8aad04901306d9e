package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nathoo/questlogic/content/brotato"
	"github.com/nathoo/questlogic/engine"
	"github.com/nathoo/questlogic/engine/state"
	"github.com/nathoo/questlogic/loader"
	"github.com/nathoo/questlogic/types"
)

// sourceOptions selects the world a command works on and the player's
// state in it.
type sourceOptions struct {
	Content string
	Options string
	Player  int
	Items   []string
	Checked []string
}

func (s *sourceOptions) bind(cmd *cobra.Command, withState bool) {
	cmd.Flags().StringVar(&s.Content, "content", "", "directory of Lua world content (default: built-in Brotato world)")
	cmd.Flags().StringVar(&s.Options, "options", "", "Brotato options YAML file")
	cmd.Flags().IntVar(&s.Player, "player", 1, "player number")
	if withState {
		cmd.Flags().StringArrayVar(&s.Items, "item", nil, "held item as name[:count] (repeatable)")
		cmd.Flags().StringArrayVar(&s.Checked, "checked", nil, "checked location name (repeatable)")
	}
}

// loaded is a built world plus the item pool a seed for it would use.
type loaded struct {
	World *engine.World
	Pool  []types.Item
}

func (s *sourceOptions) load(logger *zap.Logger) (*loaded, error) {
	if s.Content != "" && s.Options != "" {
		return nil, NewExitError(ExitCommandError, "--content and --options are mutually exclusive")
	}
	if s.Player < 1 {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("invalid player %d: must be >= 1", s.Player))
	}

	if s.Content != "" {
		def, err := loader.Load(s.Content, loader.WithLogger(logger))
		if err != nil {
			var ve *loader.ValidationError
			if errors.As(err, &ve) {
				return nil, WrapExitError(ExitFailure, "invalid content", err)
			}
			return nil, WrapExitError(ExitCommandError, "loading content", err)
		}
		w, err := engine.New(*def, s.Player, engine.WithLogger(logger))
		if err != nil {
			return nil, WrapExitError(ExitFailure, "building world", err)
		}
		return &loaded{World: w, Pool: contentPool(w)}, nil
	}

	opts := brotato.DefaultOptions()
	if s.Options != "" {
		var err error
		if opts, err = brotato.LoadOptions(s.Options); err != nil {
			return nil, WrapExitError(ExitCommandError, "loading options", err)
		}
	}
	def, err := brotato.Def(opts)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "building Brotato world", err)
	}
	w, err := engine.New(def, s.Player, engine.WithLogger(logger))
	if err != nil {
		return nil, WrapExitError(ExitFailure, "building world", err)
	}
	pool, err := brotato.ItemPool(s.Player, opts)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "building item pool", err)
	}
	return &loaded{World: w, Pool: pool}, nil
}

// state builds the player's state from --item flags.
func (s *sourceOptions) state(w *engine.World) (*state.CollectionState, error) {
	items := map[string]int{}
	for _, arg := range s.Items {
		name, n, err := parseItem(arg)
		if err != nil {
			return nil, NewExitError(ExitCommandError, err.Error())
		}
		items[name] += n
	}
	st, err := w.State(items)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "building state", err)
	}
	return st, nil
}

// parseItem splits "name[:count]". A suffix that is not a number is part
// of the name.
func parseItem(arg string) (string, int, error) {
	arg = strings.TrimSpace(arg)
	name, n := arg, 1
	if i := strings.LastIndex(arg, ":"); i > 0 {
		if v, err := strconv.Atoi(strings.TrimSpace(arg[i+1:])); err == nil {
			name, n = strings.TrimSpace(arg[:i]), v
		}
	}
	if name == "" {
		return "", 0, fmt.Errorf("empty item name in %q", arg)
	}
	if n < 1 {
		return "", 0, fmt.Errorf("invalid item count in %q: must be >= 1", arg)
	}
	return name, n, nil
}

// contentPool is one copy of every non-filler item no event grants, then
// filler cycled over the remaining non-event locations.
func contentPool(w *engine.World) []types.Item {
	granted := map[string]bool{}
	slots := 0
	for _, l := range w.Graph.Locations() {
		switch {
		case l.Event && l.Item != nil:
			granted[l.Item.Name] = true
		case !l.Event:
			slots++
		}
	}

	var pool []types.Item
	var filler []types.ItemDef
	for _, def := range w.Catalog.Items() {
		if granted[def.Name] {
			continue
		}
		if def.Classification == types.Filler {
			filler = append(filler, def)
			continue
		}
		pool = append(pool, itemFor(def, w.Player))
	}
	for i := 0; len(pool) < slots && len(filler) > 0; i++ {
		pool = append(pool, itemFor(filler[i%len(filler)], w.Player))
	}
	return pool
}

func itemFor(def types.ItemDef, player int) types.Item {
	return types.Item{ID: def.ID, Name: def.Name, Classification: def.Classification, Player: player}
}
