package reach

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/nathoo/questlogic/engine/graph"
	"github.com/nathoo/questlogic/engine/rules"
	"github.com/nathoo/questlogic/engine/state"
	"github.com/nathoo/questlogic/types"
)

const player = 1

func ptr(p types.Predicate) *types.Predicate { return &p }

func mustBuild(t *testing.T, b *graph.Builder) *graph.Graph {
	t.Helper()
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

// gatedGraph mixes every predicate kind, a cycle and an event:
//
//	Menu -Key-> Vault -Gem x2-> Treasury -> Vault
//	Menu -Map|Compass-> Camp (event "Scout" needs Compass, grants Key)
func gatedGraph(t *testing.T) *graph.Graph {
	t.Helper()
	return mustBuild(t, graph.NewBuilder(player, "Menu").
		AddRegion("Menu").
		AddRegion("Vault").
		AddRegion("Treasury").
		AddRegion("Camp").
		Connect("Menu", "Vault", "Vault Door", rules.Has("Key")).
		Connect("Vault", "Treasury", "Treasury Door", rules.HasItem("Gem", 2)).
		Connect("Treasury", "Vault", "Treasury Exit", rules.Always()).
		Connect("Menu", "Camp", "Trail", rules.HasAny("Map", "Compass")).
		AddLocation("Menu", "Welcome Gift", 1, nil).
		AddLocation("Vault", "Vault Chest", 2, ptr(rules.Has("Map"))).
		AddLocation("Treasury", "Crown", 3, nil).
		AddLocation("Camp", "Campfire", 4, nil).
		AddEvent("Camp", "Scout", types.Item{Name: "Key", Player: player}, ptr(rules.Has("Compass"))))
}

// allStates enumerates every state with Key 0..1, Gem 0..2, Map 0..1,
// Compass 0..1.
func allStates() []*state.CollectionState {
	var out []*state.CollectionState
	for key := 0; key <= 1; key++ {
		for gem := 0; gem <= 2; gem++ {
			for m := 0; m <= 1; m++ {
				for c := 0; c <= 1; c++ {
					s := state.New()
					s.Add(player, "Key", key)
					s.Add(player, "Gem", gem)
					s.Add(player, "Map", m)
					s.Add(player, "Compass", c)
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func TestReachable_Monotonic(t *testing.T) {
	g := gatedGraph(t)
	states := allStates()
	results := make([]*Result, len(states))
	for i, s := range states {
		results[i] = Reachable(g, s)
	}

	for i, small := range states {
		for j, big := range states {
			if i == j || !big.Contains(small) {
				continue
			}
			for _, r := range results[i].Regions {
				if !results[j].HasRegion(r) {
					t.Errorf("region %q reachable from %v but not from superset %v",
						r, small.Items(player), big.Items(player))
				}
			}
			for _, l := range results[i].Locations {
				if !results[j].HasLocation(l) {
					t.Errorf("location %q reachable from %v but not from superset %v",
						l, small.Items(player), big.Items(player))
				}
			}
		}
	}
}

func TestReachable_Idempotent(t *testing.T) {
	g := gatedGraph(t)
	for _, s := range allStates() {
		a := Reachable(g, s)
		b := Reachable(g, s)
		if diff := cmp.Diff(a.Regions, b.Regions); diff != "" {
			t.Errorf("regions differ between calls (-first +second):\n%s", diff)
		}
		if diff := cmp.Diff(a.Locations, b.Locations); diff != "" {
			t.Errorf("locations differ between calls (-first +second):\n%s", diff)
		}
		if diff := cmp.Diff(a.State.Items(player), b.State.Items(player)); diff != "" {
			t.Errorf("augmented state differs between calls (-first +second):\n%s", diff)
		}
	}
}

func TestReachable_TerminationBound(t *testing.T) {
	g := gatedGraph(t)
	bound := g.NumRegions() + g.NumLocations()
	for _, s := range allStates() {
		if res := Reachable(g, s); res.Passes > bound {
			t.Errorf("passes = %d, exceeds bound %d for %v", res.Passes, bound, s.Items(player))
		}
	}
}

func TestReachable_DoesNotMutateInput(t *testing.T) {
	g := gatedGraph(t)
	s := state.New()
	s.Add(player, "Compass", 1)

	res := Reachable(g, s)

	if s.Has(player, "Key") {
		t.Error("input state gained a virtually collected item")
	}
	if !res.State.Has(player, "Key") {
		t.Error("augmented state should hold the Scout event's Key")
	}
}

func TestReachable_EventUnlocksCycle(t *testing.T) {
	// A's event B requires nothing and grants X, the sole unlock for A -> C.
	g := mustBuild(t, graph.NewBuilder(player, "A").
		AddRegion("A").
		AddRegion("C").
		Connect("A", "C", "A -> C", rules.Has("X")).
		Connect("C", "A", "C -> A", rules.Always()).
		AddEvent("A", "B", types.Item{Name: "X", Player: player}, nil).
		AddLocation("C", "Prize", 10, nil))

	res := Reachable(g, state.New())

	if !res.HasRegion("C") {
		t.Fatal("expected C reachable through the event-granted X")
	}
	if !res.HasLocation("Prize") || !res.HasLocation("B") {
		t.Errorf("locations = %v", res.Locations)
	}
	if res.Passes != 2 {
		t.Errorf("passes = %d, want 2", res.Passes)
	}
	if got := res.State.Count(player, "X"); got != 1 {
		t.Errorf("X collected %d times, want exactly 1", got)
	}
}

func TestReachable_GatedEventChain(t *testing.T) {
	g := gatedGraph(t)
	s := state.New()
	s.Add(player, "Compass", 1)

	res := Reachable(g, s)

	want := []string{"Menu", "Vault", "Camp"}
	if diff := cmp.Diff(want, res.Regions); diff != "" {
		t.Errorf("regions (-want +got):\n%s", diff)
	}
	wantLocs := []string{"Welcome Gift", "Campfire", "Scout"}
	if diff := cmp.Diff(wantLocs, res.Locations); diff != "" {
		t.Errorf("locations (-want +got):\n%s", diff)
	}
	if res.HasLocation("Vault Chest") {
		t.Error("Vault Chest needs Map")
	}
}

func TestReachable_WaveShopCycle(t *testing.T) {
	g := mustBuild(t, graph.NewBuilder(player, "Menu").
		AddRegion("Menu").
		AddRegion("WaveRegion").
		AddRegion("ShopRegion").
		Connect("Menu", "WaveRegion", "Start Run", rules.Always()).
		Connect("WaveRegion", "ShopRegion", "Wave Complete", rules.Always()).
		Connect("ShopRegion", "WaveRegion", "Start New Wave", rules.Always()).
		AddLocation("WaveRegion", "Wave 1 Complete", 1, nil).
		AddLocation("WaveRegion", "Wave 2 Complete", 2, nil))

	res := Reachable(g, state.New())

	if diff := cmp.Diff([]string{"Wave 1 Complete", "Wave 2 Complete"}, res.Locations); diff != "" {
		t.Errorf("locations (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Menu", "WaveRegion", "ShopRegion"}, res.Regions); diff != "" {
		t.Errorf("regions (-want +got):\n%s", diff)
	}
	if res.Passes > 3 {
		t.Errorf("passes = %d, want <= 3", res.Passes)
	}
}

func TestReachable_ItemNeverInPool(t *testing.T) {
	g := mustBuild(t, graph.NewBuilder(player, "Menu").
		AddRegion("Menu").
		AddRegion("Sealed").
		Connect("Menu", "Sealed", "Sealed Door", rules.Has("ItemNeverInPool")).
		AddLocation("Sealed", "Sealed Chest", 1, nil))

	pool := []string{"Key", "Gem", "Map", "Compass"}
	for mask := 0; mask < 1<<len(pool); mask++ {
		s := state.New()
		for i, name := range pool {
			if mask&(1<<i) != 0 {
				s.Add(player, name, 3)
			}
		}
		res := Reachable(g, s)
		if res.HasRegion("Sealed") || res.HasLocation("Sealed Chest") {
			t.Fatalf("Sealed reachable from %v", s.Items(player))
		}
	}

	full := state.New()
	for _, name := range pool {
		full.Add(player, name, 10)
	}
	if diff := cmp.Diff([]string{"Sealed Chest"}, Unreachable(g, full)); diff != "" {
		t.Errorf("Unreachable (-want +got):\n%s", diff)
	}
}

func TestReachable_UnreachableRegionHidesLocations(t *testing.T) {
	g := mustBuild(t, graph.NewBuilder(player, "Menu").
		AddRegion("Menu").
		AddRegion("Locked").
		Connect("Menu", "Locked", "Door", rules.Never()).
		AddLocation("Locked", "Free Chest", 1, ptr(rules.Always())).
		AddEvent("Locked", "Hidden Event", types.Item{Name: "Token", Player: player}, nil))

	res := Reachable(g, state.New())

	if len(res.Locations) != 0 {
		t.Errorf("expected no reachable locations, got %v", res.Locations)
	}
	if res.State.Has(player, "Token") {
		t.Error("event in an unreachable region must not be collected")
	}
}

func TestReachable_EventItemForOtherPlayer(t *testing.T) {
	g := mustBuild(t, graph.NewBuilder(player, "Menu").
		AddRegion("Menu").
		AddRegion("Next").
		Connect("Menu", "Next", "Door", rules.Has("Key")).
		AddEvent("Menu", "Gift", types.Item{Name: "Key", Player: 2}, nil))

	res := Reachable(g, state.New())

	if res.HasRegion("Next") {
		t.Error("another player's Key must not open this player's door")
	}
	if !res.State.Has(2, "Key") {
		t.Error("expected Key credited to player 2")
	}
}

func TestReachable_NonMonotonicEntrancePanics(t *testing.T) {
	// Collecting Key closes the door that was already walked through.
	g := mustBuild(t, graph.NewBuilder(player, "Menu").
		AddRegion("Menu").
		AddRegion("Early").
		Connect("Menu", "Early", "Early Door", rules.Not(rules.Has("Key"))).
		AddEvent("Menu", "Key Event", types.Item{Name: "Key", Player: player}, nil))

	assertPanics(t, "Early", func() { Reachable(g, state.New()) })
}

func TestReachable_NonMonotonicLocationPanics(t *testing.T) {
	g := mustBuild(t, graph.NewBuilder(player, "Menu").
		AddRegion("Menu").
		AddLocation("Menu", "Shelf", 1, ptr(rules.Not(rules.Has("Key")))).
		AddEvent("Menu", "Key Event", types.Item{Name: "Key", Player: player}, nil))

	assertPanics(t, "Shelf", func() { Reachable(g, state.New()) })
}

func TestReachable_StableNotRuleDoesNotPanic(t *testing.T) {
	g := mustBuild(t, graph.NewBuilder(player, "Menu").
		AddRegion("Menu").
		AddRegion("Early").
		Connect("Menu", "Early", "Early Door", rules.Not(rules.Has("Key"))))

	res := Reachable(g, state.New())
	if !res.HasRegion("Early") {
		t.Error("expected Early reachable while Key is never collected")
	}
}

func assertPanics(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, want) || !strings.Contains(msg, "not monotonic") {
			t.Errorf("panic = %v, want mention of %q", r, want)
		}
	}()
	fn()
}

func TestUnreachable_WithPlacedItems(t *testing.T) {
	g := gatedGraph(t)
	full := state.New()
	full.Add(player, "Map", 1)
	full.Add(player, "Compass", 1)
	full.Add(player, "Gem", 2)

	if got := Unreachable(g, full); len(got) != 0 {
		t.Errorf("expected everything reachable, got unreachable %v", got)
	}
}

func TestReachableAll(t *testing.T) {
	defer goleak.VerifyNone(t)

	var queries []Query
	var want [][]string
	for _, s := range allStates() {
		g := gatedGraph(t)
		queries = append(queries, Query{Graph: g, State: s})
		want = append(want, Reachable(g, s).Locations)
	}

	results, err := ReachableAll(context.Background(), queries, 4)
	if err != nil {
		t.Fatalf("ReachableAll failed: %v", err)
	}
	if len(results) != len(queries) {
		t.Fatalf("got %d results, want %d", len(results), len(queries))
	}
	for i, res := range results {
		if diff := cmp.Diff(want[i], res.Locations); diff != "" {
			t.Errorf("query %d differs from sequential run (-want +got):\n%s", i, diff)
		}
	}
}

func TestReachableAll_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := gatedGraph(t)
	_, err := ReachableAll(ctx, []Query{{Graph: g, State: state.New()}}, 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
