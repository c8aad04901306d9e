package brotato

import (
	"fmt"
	"sort"

	"github.com/nathoo/questlogic/catalog"
)

// Location groups.
const (
	GroupWaveAnyCharacter      = "Wave Complete Any Character"
	GroupWaveSpecificCharacter = "Wave Complete Specific Character"
	GroupRunAnyCharacter       = "Run Win Any Character"
	GroupRunSpecificCharacter  = "Run Win Specific Character"
	GroupRunAnyEvents          = "Run Win Any Character Events"
	GroupRunSpecificEvents     = "Run Win Specific Character Events"
	GroupNormalCrateDrops      = "Normal Crate Drops"
	GroupLegendaryCrateDrops   = "Legendary Crate Drops"
	GroupShopItems             = "Shop Items"
)

// RunWaveLocation names the check for clearing wave (1-based) of run
// (0-based) with any character.
func RunWaveLocation(run, wave int) string {
	return fmt.Sprintf("Run %d - Wave %d Complete", run, wave)
}

// RunLocation names the check for winning run with any character.
func RunLocation(run int) string { return fmt.Sprintf("Run %d Complete", run) }

// RunEvent names the event that grants a Run Complete token.
func RunEvent(run int) string { return fmt.Sprintf("Run %d Complete Event", run) }

// CharacterWaveLocation names the check for clearing wave with char.
func CharacterWaveLocation(char string, wave int) string {
	return fmt.Sprintf("Wave %d Complete (%s)", wave, char)
}

// CharacterRunLocation names the check for winning a run with char.
func CharacterRunLocation(char string) string { return fmt.Sprintf("Run Complete (%s)", char) }

// CharacterRunEvent names the event that grants char's win token.
func CharacterRunEvent(char string) string { return fmt.Sprintf("Run Complete (%s) Event", char) }

// ShopLocation names the i-th shop slot of a tier.
func ShopLocation(tier Rarity, i int) string { return fmt.Sprintf("%s Shop Item %d", tier, i) }

// CrateLocation names the i-th normal crate drop.
func CrateLocation(i int) string { return fmt.Sprintf("Crate Drop %d", i) }

// LegendaryCrateLocation names the i-th legendary crate drop.
func LegendaryCrateLocation(i int) string { return fmt.Sprintf("Legendary Crate Drop %d", i) }

type tableEntry struct {
	name  string
	id    int64 // 0 for events
	event bool
	group string
}

var (
	table   = buildTable()
	tableID = indexTable(table)
)

// buildTable lays out every location the catalog can ever produce, in id
// order. Options only choose which entries a world uses.
func buildTable() []tableEntry {
	var t []tableEntry
	add := func(group string, event bool, names ...string) {
		for _, n := range names {
			t = append(t, tableEntry{name: n, group: group, event: event})
		}
	}

	for wave := 1; wave <= NumWaves; wave++ {
		for run := 0; run < MaxRequiredRunWins; run++ {
			add(GroupWaveAnyCharacter, false, RunWaveLocation(run, wave))
		}
	}
	for run := 0; run < MaxRequiredRunWins; run++ {
		add(GroupRunAnyEvents, true, RunEvent(run))
	}
	for _, c := range Characters {
		for wave := 1; wave <= NumWaves; wave++ {
			add(GroupWaveSpecificCharacter, false, CharacterWaveLocation(c, wave))
		}
	}
	for _, c := range Characters {
		add(GroupRunSpecificEvents, true, CharacterRunEvent(c))
	}
	for run := 0; run < MaxRequiredRunWins; run++ {
		add(GroupRunAnyCharacter, false, RunLocation(run))
	}
	for _, c := range Characters {
		add(GroupRunSpecificCharacter, false, CharacterRunLocation(c))
	}
	for _, tier := range Rarities {
		for i := 0; i < MaxShopLocationsPerTier; i++ {
			add(GroupShopItems, false, ShopLocation(tier, i))
		}
	}
	for i := 0; i < MaxNormalCrateDrops; i++ {
		add(GroupNormalCrateDrops, false, CrateLocation(i))
	}
	for i := 0; i < MaxLegendaryCrateDrops; i++ {
		add(GroupLegendaryCrateDrops, false, LegendaryCrateLocation(i))
	}

	var names []string
	for _, e := range t {
		if !e.event {
			names = append(names, e.name)
		}
	}
	ids, err := catalog.AllocateIDs(BaseID, names)
	if err != nil {
		panic(err)
	}
	for i := range t {
		t[i].id = ids[t[i].name]
	}
	return t
}

func indexTable(t []tableEntry) map[string]int64 {
	idx := make(map[string]int64, len(t))
	for _, e := range t {
		if !e.event {
			idx[e.name] = e.id
		}
	}
	return idx
}

func locationTable() []tableEntry { return table }

// LocationID returns the stable id of a non-event location.
func LocationID(name string) (int64, bool) {
	id, ok := tableID[name]
	return id, ok
}

// LocationGroups returns every location group with its members sorted.
func LocationGroups() map[string][]string {
	out := map[string][]string{}
	for _, e := range table {
		out[e.group] = append(out[e.group], e.name)
	}
	for _, members := range out {
		sort.Strings(members)
	}
	return out
}
