package brotato

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/questlogic/engine/graph"
)

// Win conditions.
const (
	// WinAny counts Run Complete tokens regardless of character.
	WinAny = "any"
	// WinSpecific counts distinct characters that have won a run.
	WinSpecific = "specific"
)

// Options are the per-player settings of a Brotato world.
type Options struct {
	NumVictories           int    `yaml:"num_victories"`
	WavesPerDrop           int    `yaml:"waves_per_drop"`
	NumCommonCrateDrops    int    `yaml:"num_common_crate_drops"`
	NumLegendaryCrateDrops int    `yaml:"num_legendary_crate_drops"`
	NumShopItems           int    `yaml:"num_shop_items"`
	WinCondition           string `yaml:"win_condition"`
}

// DefaultOptions returns the default settings.
func DefaultOptions() Options {
	return Options{
		NumVictories:           10,
		WavesPerDrop:           10,
		NumCommonCrateDrops:    25,
		NumLegendaryCrateDrops: 5,
		NumShopItems:           10,
		WinCondition:           WinAny,
	}
}

// Validate checks every option against its range. All violations are
// returned joined; each range violation is a *graph.ConfigurationError.
func (o Options) Validate() error {
	errs := []error{
		graph.CheckRange("num_victories", o.NumVictories, 1, MaxRequiredRunWins),
		graph.CheckRange("waves_per_drop", o.WavesPerDrop, 1, NumWaves),
		graph.CheckRange("num_common_crate_drops", o.NumCommonCrateDrops, 0, MaxNormalCrateDrops),
		graph.CheckRange("num_legendary_crate_drops", o.NumLegendaryCrateDrops, 0, MaxLegendaryCrateDrops),
		graph.CheckRange("num_shop_items", o.NumShopItems, 0, MaxShopLocationsPerTier),
	}
	if o.WinCondition != WinAny && o.WinCondition != WinSpecific {
		errs = append(errs, fmt.Errorf("option win_condition = %q must be %q or %q",
			o.WinCondition, WinAny, WinSpecific))
	}
	return errors.Join(errs...)
}

// ParseOptions decodes YAML over the defaults and validates the result.
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parsing options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// LoadOptions reads a YAML options file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading options: %w", err)
	}
	return ParseOptions(data)
}
