package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nathoo/questlogic/loader"
	"github.com/nathoo/questlogic/types"
)

// ValidateResult is the result of the validate command.
type ValidateResult struct {
	Valid     bool     `json:"valid"`
	Game      string   `json:"game,omitempty"`
	Version   string   `json:"version,omitempty"`
	Items     int      `json:"items"`
	Regions   int      `json:"regions"`
	Locations int      `json:"locations"`
	Events    int      `json:"events"`
	Errors    []string `json:"errors,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <content-dir>",
		Short: "Load and validate Lua world content",
		Long: `Load every .lua file of a content directory in a sandboxed VM and check
the world for referential integrity. Warnings flag rules over non-progression
items and rules using Not.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootOpts, args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, rootOpts *RootOptions, dir string) error {
	out := rootOpts.formatter(cmd)

	def, err := loader.Load(dir, loader.WithLogger(rootOpts.Logger()))
	if err != nil {
		var ve *loader.ValidationError
		if !errors.As(err, &ve) {
			return WrapExitError(ExitCommandError, "loading content", err)
		}
		res := ValidateResult{Errors: ve.Errors, Warnings: ve.Warnings}
		if err := out.Failure(res, func(w io.Writer) { writeValidate(w, res) }); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("content in %s is invalid", dir))
	}

	res := summarize(def)
	res.Warnings = loader.Validate(def).Warnings
	return out.Success(res, func(w io.Writer) { writeValidate(w, res) })
}

func summarize(def *types.WorldDef) ValidateResult {
	res := ValidateResult{
		Valid:   true,
		Game:    def.Game.Title,
		Version: def.Game.Version,
		Items:   len(def.Items),
		Regions: len(def.Regions),
	}
	for _, r := range def.Regions {
		for _, l := range r.Locations {
			if l.Event {
				res.Events++
			} else {
				res.Locations++
			}
		}
	}
	return res
}

func writeValidate(w io.Writer, res ValidateResult) {
	if res.Valid {
		name := res.Game
		if res.Version != "" {
			name += " " + res.Version
		}
		fmt.Fprintf(w, "ok: %s (items %d, regions %d, locations %d, events %d)\n",
			name, res.Items, res.Regions, res.Locations, res.Events)
	} else {
		fmt.Fprintf(w, "invalid: %d error(s)\n", len(res.Errors))
	}
	for _, e := range res.Errors {
		fmt.Fprintf(w, "error: %s\n", e)
	}
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
}
