package goal

import (
	"strings"
	"testing"

	"github.com/nathoo/questlogic/engine/graph"
	"github.com/nathoo/questlogic/engine/rules"
	"github.com/nathoo/questlogic/engine/state"
	"github.com/nathoo/questlogic/types"
)

const player = 1

var wins = []string{
	"Run Complete (Well Rounded)",
	"Run Complete (Brawler)",
	"Run Complete (Crazy)",
	"Run Complete (Ranger)",
	"Run Complete (Mage)",
}

func distinctGoal(t *testing.T, required int) *Evaluator {
	t.Helper()
	e, err := New(types.GoalDef{
		Strategy: types.DistinctWins,
		Source:   types.Explicit,
		Required: required,
		Group:    wins,
	}, player)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return e
}

func TestIsComplete_DistinctWinsBoundary(t *testing.T) {
	e := distinctGoal(t, 3)
	s := state.New()
	s.Add(player, wins[0], 1)
	s.Add(player, wins[1], 1)

	if e.IsComplete(s) {
		t.Fatal("2 distinct wins must not complete a 3-win goal")
	}

	s.Add(player, wins[2], 1)
	if !e.IsComplete(s) {
		t.Fatal("3 distinct wins must complete a 3-win goal")
	}

	s.Add(player, wins[0], 1)
	if !e.IsComplete(s) {
		t.Fatal("a duplicate win must keep the goal complete")
	}
	if have, need := e.Progress(s); have != 3 || need != 3 {
		t.Errorf("Progress() = %d/%d, duplicate must not double-count", have, need)
	}
}

func TestIsComplete_DuplicatesAloneDoNotComplete(t *testing.T) {
	e := distinctGoal(t, 3)
	s := state.New()
	s.Add(player, wins[0], 5)

	if e.IsComplete(s) {
		t.Error("five wins with one character are one distinct win")
	}
}

func TestIsComplete_RunTokens(t *testing.T) {
	e, err := New(types.GoalDef{
		Strategy: types.RunTokens,
		Source:   types.Explicit,
		Required: 3,
		Token:    "Run Complete",
	}, player)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s := state.New()
	s.Add(player, "Run Complete", 2)
	if e.IsComplete(s) {
		t.Error("2 tokens must not complete a 3-token goal")
	}
	s.Add(player, "Run Complete", 1)
	if !e.IsComplete(s) {
		t.Error("3 tokens must complete a 3-token goal")
	}
	if have, need := e.Progress(s); have != 3 || need != 3 {
		t.Errorf("Progress() = %d/%d", have, need)
	}
}

func TestNew_RequiresExplicitChoices(t *testing.T) {
	tests := []struct {
		name string
		def  types.GoalDef
		want string
	}{
		{
			name: "no strategy",
			def:  types.GoalDef{Source: types.Explicit, Required: 1, Token: "Run Complete"},
			want: "strategy must be set",
		},
		{
			name: "no source",
			def:  types.GoalDef{Strategy: types.RunTokens, Required: 1, Token: "Run Complete"},
			want: "source must be set",
		},
		{
			name: "unknown strategy",
			def:  types.GoalDef{Strategy: "best_of", Source: types.Explicit},
			want: "unknown goal strategy",
		},
		{
			name: "token missing",
			def:  types.GoalDef{Strategy: types.RunTokens, Source: types.Explicit, Required: 1},
			want: "token",
		},
		{
			name: "required above group size",
			def:  types.GoalDef{Strategy: types.DistinctWins, Source: types.Explicit, Required: 6, Group: wins},
			want: "required <= 5",
		},
		{
			name: "custom without rule",
			def:  types.GoalDef{Strategy: types.CustomGoal, Source: types.Augmented},
			want: "needs a rule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.def, player)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func eventGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.NewBuilder(player, "Menu").
		AddRegion("Menu").
		AddRegion("In-Game").
		Connect("Menu", "In-Game", "Start Run", rules.Always()).
		AddEvent("In-Game", "Run 0 Complete", types.Item{Name: "Run Complete", Player: player}, nil).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func TestEvaluate_SourceSelectsState(t *testing.T) {
	g := eventGraph(t)
	base := types.GoalDef{Strategy: types.RunTokens, Required: 1, Token: "Run Complete"}

	explicit := base
	explicit.Source = types.Explicit
	ex, err := New(explicit, player)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	done, res := ex.Evaluate(g, state.New())
	if done {
		t.Error("explicit goal must ignore the event token")
	}
	if res != nil {
		t.Error("explicit goal should not run reachability")
	}

	augmented := base
	augmented.Source = types.Augmented
	au, err := New(augmented, player)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	done, res = au.Evaluate(g, state.New())
	if !done {
		t.Error("augmented goal must credit the reachable event token")
	}
	if res == nil || !res.HasLocation("Run 0 Complete") {
		t.Error("expected the reachability result to be returned")
	}
}

func TestCustomGoal(t *testing.T) {
	rule := rules.And(rules.Has("Crown"), rules.HasItem("Gem", 2))
	e, err := New(types.GoalDef{Strategy: types.CustomGoal, Source: types.Explicit, Rule: &rule}, player)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s := state.New()
	s.Add(player, "Crown", 1)
	s.Add(player, "Gem", 1)
	if e.IsComplete(s) {
		t.Error("one gem is not enough")
	}
	if have, need := e.Progress(s); have != 0 || need != 1 {
		t.Errorf("Progress() = %d/%d", have, need)
	}
	s.Add(player, "Gem", 1)
	if !e.IsComplete(s) {
		t.Error("expected complete with crown and two gems")
	}
}
