package brotato

import (
	"fmt"

	"github.com/nathoo/questlogic/catalog"
	"github.com/nathoo/questlogic/engine/graph"
	"github.com/nathoo/questlogic/engine/rules"
	"github.com/nathoo/questlogic/types"
)

// Region and entrance names.
const (
	RegionMenu   = "Menu"
	RegionWave   = "In-Game"
	RegionShop   = "Shop"
	StartRun     = "Start Run"
	WaveDone     = "Wave Complete"
	RunOver      = "Run Complete or Lost"
	StartNewWave = "Start New Wave"
)

// HasCharacter is true when char is playable: default characters always
// are, the k-th unlockable character needs k Progressive Characters.
// Unknown characters are never playable.
func HasCharacter(char string) types.Predicate {
	for i, c := range Characters {
		if c != char {
			continue
		}
		if i < NumDefaultCharacters {
			return rules.Always()
		}
		return rules.HasItem(ProgressiveCharacter, i-NumDefaultCharacters+1)
	}
	return rules.Never()
}

// runGate requires the previous runs to have been won before run can be.
func runGate(run int) *types.Predicate {
	if run == 0 {
		return nil
	}
	p := rules.HasItem(RunComplete, run)
	return &p
}

// checkedWaves returns the waves that award a check.
func checkedWaves(wavesPerDrop int) []int {
	var out []int
	for w := wavesPerDrop; w <= NumWaves; w += wavesPerDrop {
		out = append(out, w)
	}
	return out
}

// location panics when name is missing from the location table, which
// covers every name valid options can produce.
func location(name string, rule *types.Predicate) types.LocationDef {
	id, ok := LocationID(name)
	if !ok {
		panic(fmt.Sprintf("brotato: location %q has no table entry", name))
	}
	return types.LocationDef{Name: name, ID: id, Rule: rule}
}

func event(name, item string, rule *types.Predicate) types.LocationDef {
	return types.LocationDef{Name: name, Event: true, Item: item, Rule: rule}
}

// Goal returns the completion condition selected by opts.WinCondition.
// Both variants read the augmented state so that run wins reachable
// through events are credited.
func Goal(opts Options) types.GoalDef {
	if opts.WinCondition == WinSpecific {
		return types.GoalDef{
			Strategy: types.DistinctWins,
			Source:   types.Augmented,
			Required: opts.NumVictories,
			Group:    CharacterWins(),
		}
	}
	return types.GoalDef{
		Strategy: types.RunTokens,
		Source:   types.Augmented,
		Required: opts.NumVictories,
		Token:    RunComplete,
	}
}

// Def declares the world for opts. Options are validated before anything
// is built; the result depends only on opts.
func Def(opts Options) (types.WorldDef, error) {
	if err := opts.Validate(); err != nil {
		return types.WorldDef{}, err
	}

	waves := checkedWaves(opts.WavesPerDrop)
	var inGame []types.LocationDef
	switch opts.WinCondition {
	case WinSpecific:
		for _, c := range Characters {
			gate := HasCharacter(c)
			for _, w := range waves {
				inGame = append(inGame, location(CharacterWaveLocation(c, w), &gate))
			}
			inGame = append(inGame,
				location(CharacterRunLocation(c), &gate),
				event(CharacterRunEvent(c), CharacterWin(c), &gate))
		}
	default:
		for run := 0; run < opts.NumVictories; run++ {
			gate := runGate(run)
			for _, w := range waves {
				inGame = append(inGame, location(RunWaveLocation(run, w), gate))
			}
			inGame = append(inGame,
				location(RunLocation(run), gate),
				event(RunEvent(run), RunComplete, gate))
		}
	}
	for i := 0; i < opts.NumCommonCrateDrops; i++ {
		inGame = append(inGame, location(CrateLocation(i), nil))
	}
	for i := 0; i < opts.NumLegendaryCrateDrops; i++ {
		inGame = append(inGame, location(LegendaryCrateLocation(i), nil))
	}

	var shop []types.LocationDef
	for _, tier := range Rarities {
		for i := 0; i < opts.NumShopItems; i++ {
			shop = append(shop, location(ShopLocation(tier, i), nil))
		}
	}

	return types.WorldDef{
		Game: types.GameDef{
			Title:   Game,
			Version: "0.4.2",
			Start:   RegionMenu,
			BaseID:  BaseID,
		},
		Items: Items(),
		Regions: []types.RegionDef{
			{
				Name:  RegionMenu,
				Exits: []types.EntranceDef{{Name: StartRun, Target: RegionWave, Rule: rules.Always()}},
			},
			{
				Name:      RegionWave,
				Locations: inGame,
				Exits: []types.EntranceDef{
					{Name: WaveDone, Target: RegionShop, Rule: rules.Always()},
					{Name: RunOver, Target: RegionMenu, Rule: rules.Always()},
				},
			},
			{
				Name:      RegionShop,
				Locations: shop,
				Exits:     []types.EntranceDef{{Name: StartNewWave, Target: RegionWave, Rule: rules.Always()}},
			},
		},
		Goal: Goal(opts),
	}, nil
}

// Build constructs player's region graph for opts.
func Build(player int, opts Options) (*graph.Graph, error) {
	def, err := Def(opts)
	if err != nil {
		return nil, err
	}
	cat, err := Catalog()
	if err != nil {
		return nil, err
	}
	return graph.FromDef(def, cat, player)
}

// ItemPool returns player's shuffled item pool: one item per non-event
// location, unlockable characters first, then filler in id order,
// repeating as needed.
func ItemPool(player int, opts Options) ([]types.Item, error) {
	def, err := Def(opts)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.New(Game, def.Items)
	if err != nil {
		return nil, err
	}

	slots := 0
	for _, r := range def.Regions {
		for _, l := range r.Locations {
			if !l.Event {
				slots++
			}
		}
	}

	filler := FillerItems()
	pool := make([]types.Item, 0, slots)
	for i := 0; i < slots; i++ {
		name := ProgressiveCharacter
		if i >= NumUnlockableCharacters {
			name = filler[(i-NumUnlockableCharacters)%len(filler)]
		}
		it, err := cat.Create(name, player)
		if err != nil {
			return nil, fmt.Errorf("creating pool item: %w", err)
		}
		pool = append(pool, it)
	}
	return pool, nil
}
