package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// AuditReport is the result of the audit command.
type AuditReport struct {
	Game        string   `json:"game"`
	Player      int      `json:"player"`
	PoolSize    int      `json:"pool_size"`
	Locations   int      `json:"locations"`
	Unreachable []string `json:"unreachable"`
}

// PlacedItem is one placement of a filled seed.
type PlacedItem struct {
	Location string `json:"location"`
	Item     string `json:"item"`
}

// FillReport is the result of the fill command.
type FillReport struct {
	Game       string       `json:"game"`
	Player     int          `json:"player"`
	Seed       int64        `json:"seed"`
	Rolls      int64        `json:"rolls"`
	Placements []PlacedItem `json:"placements"`
	Goal       GoalStatus   `json:"goal"`
}

// NewAuditCommand creates the audit command.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	src := &sourceOptions{}
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Check that every location is reachable with the full item pool",
		Long: `Give the player every item a seed of this world would contain and report
locations that still cannot be reached. Exits 1 when any are found.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := src.load(rootOpts.Logger())
			if err != nil {
				return err
			}
			rep := AuditReport{
				Game:        l.World.Def.Game.Title,
				Player:      l.World.Player,
				PoolSize:    len(l.Pool),
				Locations:   l.World.Graph.NumLocations(),
				Unreachable: nonNil(l.World.Audit(l.Pool)),
			}
			out := rootOpts.formatter(cmd)
			if len(rep.Unreachable) == 0 {
				return out.Success(rep, func(w io.Writer) { writeAudit(w, rep) })
			}
			if err := out.Failure(rep, func(w io.Writer) { writeAudit(w, rep) }); err != nil {
				return err
			}
			return NewExitError(ExitFailure, fmt.Sprintf("%d locations unreachable", len(rep.Unreachable)))
		},
	}
	src.bind(cmd, false)
	return cmd
}

func writeAudit(w io.Writer, rep AuditReport) {
	if len(rep.Unreachable) == 0 {
		fmt.Fprintf(w, "%s, player %d: all %d locations reachable with the full item pool (%d items)\n",
			rep.Game, rep.Player, rep.Locations, rep.PoolSize)
		return
	}
	fmt.Fprintf(w, "%s, player %d: %d of %d locations unreachable with the full item pool (%d items)\n",
		rep.Game, rep.Player, len(rep.Unreachable), rep.Locations, rep.PoolSize)
	for _, name := range rep.Unreachable {
		fmt.Fprintf(w, "  %s\n", name)
	}
}

// NewFillCommand creates the fill command.
func NewFillCommand(rootOpts *RootOptions) *cobra.Command {
	src := &sourceOptions{}
	var seed int64
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Place the item pool into the world and print the spoiler",
		Long: `Shuffle the world's item pool into its locations so that the goal stays
completable. The same world, options and seed always give the same result.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := src.load(rootOpts.Logger())
			if err != nil {
				return err
			}
			res, err := l.World.Fill(l.Pool, seed)
			if err != nil {
				return WrapExitError(ExitFailure, "fill failed", err)
			}
			rep := FillReport{
				Game:       l.World.Def.Game.Title,
				Player:     l.World.Player,
				Seed:       res.Seed,
				Rolls:      res.Rolls,
				Placements: make([]PlacedItem, 0, len(res.Placements)),
			}
			// The playthrough already holds every event item, so the goal
			// reads it directly.
			rep.Goal.Have, rep.Goal.Need = l.World.Goal.Progress(res.Playthrough)
			rep.Goal.Complete = l.World.Goal.IsComplete(res.Playthrough)
			for _, p := range res.Placements {
				rep.Placements = append(rep.Placements, PlacedItem{Location: p.Location, Item: p.Item.Name})
			}
			return rootOpts.formatter(cmd).Success(rep, func(w io.Writer) { writeFill(w, rep) })
		},
	}
	src.bind(cmd, false)
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}

func writeFill(w io.Writer, rep FillReport) {
	fmt.Fprintf(w, "%s, player %d: seed %d, %d placements\n", rep.Game, rep.Player, rep.Seed, len(rep.Placements))
	for _, p := range rep.Placements {
		fmt.Fprintf(w, "  %s: %s\n", p.Location, p.Item)
	}
	fmt.Fprintf(w, "Goal: %s\n", rep.Goal)
}
