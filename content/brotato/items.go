package brotato

import (
	"fmt"

	"github.com/nathoo/questlogic/catalog"
	"github.com/nathoo/questlogic/types"
)

// Item names.
const (
	CommonItem           = "Common Item"
	UncommonItem         = "Uncommon Item"
	RareItem             = "Rare Item"
	LegendaryItem        = "Legendary Item"
	XP5                  = "XP (5)"
	XP10                 = "XP (10)"
	XP25                 = "XP (25)"
	XP50                 = "XP (50)"
	XP100                = "XP (100)"
	XP150                = "XP (150)"
	Gold10               = "Gold (10)"
	Gold25               = "Gold (25)"
	Gold50               = "Gold (50)"
	Gold100              = "Gold (100)"
	Gold200              = "Gold (200)"
	ProgressiveCharacter = "Progressive Character"
	RunComplete          = "Run Complete"
)

// Item groups.
const (
	GroupItemDrops  = "Item Drops"
	GroupGoldAndXP  = "Gold and XP"
	GroupCharacters = "Characters"
)

var itemNames = []string{
	CommonItem, UncommonItem, RareItem, LegendaryItem,
	XP5, XP10, XP25, XP50, XP100, XP150,
	Gold10, Gold25, Gold50, Gold100, Gold200,
	ProgressiveCharacter, RunComplete,
}

var itemGroups = map[string][]string{
	GroupItemDrops:  {CommonItem, UncommonItem, RareItem, LegendaryItem},
	GroupGoldAndXP:  {XP5, XP10, XP25, XP50, XP100, XP150, Gold10, Gold25, Gold50, Gold100, Gold200},
	GroupCharacters: {ProgressiveCharacter},
}

// CharacterWin names the event item granted for winning a run with char.
func CharacterWin(char string) string {
	return fmt.Sprintf("Run Complete (%s)", char)
}

// CharacterWins returns the win token of every character, in character
// order.
func CharacterWins() []string {
	out := make([]string, len(Characters))
	for i, c := range Characters {
		out[i] = CharacterWin(c)
	}
	return out
}

func classify(name string) types.Classification {
	switch name {
	case ProgressiveCharacter, RunComplete:
		return types.Progression
	default:
		return types.Filler
	}
}

// Items returns the item table. Shuffled items get consecutive ids from
// BaseID; per-character win tokens only ever sit on event locations and
// carry no id.
func Items() []types.ItemDef {
	ids, err := catalog.AllocateIDs(BaseID, itemNames)
	if err != nil {
		panic(err)
	}
	out := make([]types.ItemDef, 0, len(itemNames)+NumCharacters)
	for _, name := range itemNames {
		out = append(out, types.ItemDef{ID: ids[name], Name: name, Classification: classify(name)})
	}
	for _, name := range CharacterWins() {
		out = append(out, types.ItemDef{Name: name, Classification: types.Progression})
	}
	return out
}

// FillerItems returns the filler item names in id order.
func FillerItems() []string {
	var out []string
	for _, name := range itemNames {
		if classify(name) == types.Filler {
			out = append(out, name)
		}
	}
	return out
}

// Catalog builds the indexed catalog with item groups and the full
// location id table.
func Catalog() (*catalog.Catalog, error) {
	c, err := catalog.New(Game, Items())
	if err != nil {
		return nil, err
	}
	for group, members := range itemGroups {
		c.SetGroup(group, members)
	}
	for _, loc := range locationTable() {
		if loc.event {
			continue
		}
		if err := c.AddLocation(loc.name, loc.id); err != nil {
			return nil, err
		}
	}
	return c, nil
}
