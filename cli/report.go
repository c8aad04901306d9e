package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/nathoo/questlogic/engine"
	"github.com/nathoo/questlogic/engine/state"
)

// GoalStatus is a player's standing against the completion condition.
type GoalStatus struct {
	Complete bool `json:"complete"`
	Have     int  `json:"have"`
	Need     int  `json:"need"`
}

// ReachReport is the result of the reach command.
type ReachReport struct {
	Game         string     `json:"game"`
	Player       int        `json:"player"`
	Regions      []string   `json:"regions"`
	Locations    []string   `json:"locations"`
	TotalRegions int        `json:"total_regions"`
	TotalLocs    int        `json:"total_locations"`
	Passes       int        `json:"passes"`
	Goal         GoalStatus `json:"goal"`
}

// MissingReport is the result of the missing command.
type MissingReport struct {
	Game             string   `json:"game"`
	Player           int      `json:"player"`
	Missing          []string `json:"missing"`
	OutOfLogic       []string `json:"out_of_logic"`
	Checked          []string `json:"checked"`
	CheckedUnreached []string `json:"checked_unreached,omitempty"`
	Unknown          []string `json:"unknown,omitempty"`
}

func goalStatus(w *engine.World, s *state.CollectionState) GoalStatus {
	have, need := w.GoalProgress(s)
	return GoalStatus{Complete: w.IsComplete(s), Have: have, Need: need}
}

func buildReach(w *engine.World, s *state.CollectionState) ReachReport {
	res := w.Reachable(s)
	return ReachReport{
		Game:         w.Def.Game.Title,
		Player:       w.Player,
		Regions:      nonNil(res.Regions),
		Locations:    nonNil(res.Locations),
		TotalRegions: w.Graph.NumRegions(),
		TotalLocs:    w.Graph.NumLocations(),
		Passes:       res.Passes,
		Goal:         goalStatus(w, s),
	}
}

func buildMissing(w *engine.World, s *state.CollectionState, checked []string) MissingReport {
	rep := w.Progress(s, checked)
	return MissingReport{
		Game:             w.Def.Game.Title,
		Player:           w.Player,
		Missing:          nonNil(rep.Missing),
		OutOfLogic:       nonNil(rep.OutOfLogic),
		Checked:          nonNil(rep.Checked),
		CheckedUnreached: rep.CheckedUnreached,
		Unknown:          rep.Unknown,
	}
}

func (g GoalStatus) String() string {
	status := "incomplete"
	if g.Complete {
		status = "complete"
	}
	return fmt.Sprintf("%s (%d/%d)", status, g.Have, g.Need)
}

func writeReach(w io.Writer, r ReachReport) {
	fmt.Fprintf(w, "%s, player %d\n", r.Game, r.Player)
	fmt.Fprintf(w, "Regions (%d/%d): %s\n", len(r.Regions), r.TotalRegions, strings.Join(r.Regions, ", "))
	fmt.Fprintf(w, "Locations (%d/%d):\n", len(r.Locations), r.TotalLocs)
	for _, name := range r.Locations {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintf(w, "Passes: %d\n", r.Passes)
	fmt.Fprintf(w, "Goal: %s\n", r.Goal)
}

func writeMissing(w io.Writer, r MissingReport) {
	fmt.Fprintf(w, "%s, player %d: %d missing, %d out of logic, %d checked\n",
		r.Game, r.Player, len(r.Missing), len(r.OutOfLogic), len(r.Checked)+len(r.CheckedUnreached))
	writeList(w, "Missing", r.Missing)
	writeList(w, "Out of logic", r.OutOfLogic)
	writeList(w, "Checked", r.Checked)
	if len(r.CheckedUnreached) > 0 {
		writeList(w, "Checked but out of logic", r.CheckedUnreached)
	}
	if len(r.Unknown) > 0 {
		writeList(w, "Unknown checked names", r.Unknown)
	}
}

func writeList(w io.Writer, title string, names []string) {
	fmt.Fprintf(w, "%s (%d):\n", title, len(names))
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", name)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
