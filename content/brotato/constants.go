// Package brotato is the reference content catalog: a roguelite where runs
// are made of waves, characters are unlocked progressively, and completing
// runs is the win condition.
package brotato

// Game is the catalog title.
const Game = "Brotato"

// BaseID is the first id handed out to items and locations.
const BaseID int64 = 0x7A70_0000

const (
	NumWaves      = 20
	MaxDifficulty = 5
)

// Rarity is a shop or drop tier.
type Rarity string

const (
	Common    Rarity = "Common"
	Uncommon  Rarity = "Uncommon"
	Rare      Rarity = "Rare"
	Legendary Rarity = "Legendary"
)

// Rarities lists the tiers in ascending order.
var Rarities = []Rarity{Common, Uncommon, Rare, Legendary}

// Characters lists every playable character. The first
// NumDefaultCharacters are available from the start; the rest unlock in
// order, one per Progressive Character.
var Characters = []string{
	"Well Rounded",
	"Brawler",
	"Crazy",
	"Ranger",
	"Mage",
	"Chunky",
	"Old",
	"Lucky",
	"Mutant",
	"Generalist",
	"Loud",
	"Multitasker",
	"Wildling",
	"Pacifist",
	"Gladiator",
	"Saver",
	"Sick",
	"Farmer",
	"Ghost",
	"Speedy",
	"Entrepreneur",
	"Engineer",
	"Explorer",
	"Doctor",
	"Hunter",
	"Artificer",
	"Arms Dealer",
	"Streamer",
	"Cyborg",
	"Glutton",
	"Jack",
	"Lich",
	"Apprentice",
	"Cryptid",
	"Fisherman",
	"Golem",
	"King",
	"Renegade",
	"One Armed",
	"Bull",
	"Soldier",
	"Masochist",
	"Knight",
	"Demon",
}

const (
	NumCharacters           = 44
	NumDefaultCharacters    = 5
	NumUnlockableCharacters = NumCharacters - NumDefaultCharacters
)

// Upper bounds of the location table. Options may only select a prefix of
// each range, so location ids never depend on options.
const (
	MaxRequiredRunWins      = NumCharacters
	MaxNormalCrateDrops     = 50
	MaxLegendaryCrateDrops  = 50
	MaxShopLocationsPerTier = 20
)

// DefaultCharacters returns the characters available without unlocks.
func DefaultCharacters() []string {
	return append([]string(nil), Characters[:NumDefaultCharacters]...)
}
