package catalog

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nathoo/questlogic/types"
)

func TestAllocateIDs_Deterministic(t *testing.T) {
	names := []string{"Common Item", "Uncommon Item", "Rare Item"}

	a, err := AllocateIDs(0x7A700000, names)
	if err != nil {
		t.Fatalf("AllocateIDs failed: %v", err)
	}
	b, err := AllocateIDs(0x7A700000, names)
	if err != nil {
		t.Fatalf("AllocateIDs failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("allocation not reproducible: %v vs %v", a, b)
	}
	if a["Common Item"] != 0x7A700000 || a["Rare Item"] != 0x7A700002 {
		t.Errorf("unexpected ids: %v", a)
	}
}

func TestAllocateIDs_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{"duplicate", []string{"A", "B", "A"}, "duplicate"},
		{"empty", []string{"A", ""}, "empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AllocateIDs(1, tt.names)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func testItems() []types.ItemDef {
	return []types.ItemDef{
		{ID: 10, Name: "Key", Classification: types.Progression},
		{ID: 11, Name: "Gold", Classification: types.Filler},
	}
}

func TestNew_Lookups(t *testing.T) {
	c, err := New("Test", testItems())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if it, ok := c.Item("Key"); !ok || it.ID != 10 {
		t.Errorf("Item(Key) = %v, %v", it, ok)
	}
	if it, ok := c.ItemByID(11); !ok || it.Name != "Gold" {
		t.Errorf("ItemByID(11) = %v, %v", it, ok)
	}
	if _, ok := c.Item("Sword"); ok {
		t.Error("expected unknown item lookup to fail")
	}
	if got := len(c.Items()); got != 2 {
		t.Errorf("Items() len = %d", got)
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	items := append(testItems(), types.ItemDef{ID: 10, Name: "Gem"})
	if _, err := New("Test", items); err == nil {
		t.Error("expected error for shared id")
	}
	items = append(testItems(), types.ItemDef{ID: 12, Name: "Key"})
	if _, err := New("Test", items); err == nil {
		t.Error("expected error for duplicate name")
	}
}

func TestCreate(t *testing.T) {
	c, _ := New("Test", testItems())

	it, err := c.Create("Key", 3)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	want := types.Item{ID: 10, Name: "Key", Classification: types.Progression, Player: 3}
	if it != want {
		t.Errorf("Create() = %+v, want %+v", it, want)
	}
	if _, err := c.Create("Sword", 1); err == nil {
		t.Error("expected error creating unknown item")
	}
}

func TestFromWorld_Locations(t *testing.T) {
	def := types.WorldDef{
		Game:  types.GameDef{Title: "Test", Start: "Menu"},
		Items: testItems(),
		Regions: []types.RegionDef{
			{Name: "Menu"},
			{Name: "Hall", Locations: []types.LocationDef{
				{Name: "Chest B", ID: 101},
				{Name: "Chest A", ID: 100},
				{Name: "Boss", Event: true, Item: "Key"},
			}},
		},
	}

	c, err := FromWorld(def)
	if err != nil {
		t.Fatalf("FromWorld failed: %v", err)
	}
	if got := c.LocationNames(); !reflect.DeepEqual(got, []string{"Chest A", "Chest B"}) {
		t.Errorf("LocationNames() = %v", got)
	}
	if _, ok := c.LocationID("Boss"); ok {
		t.Error("event locations have no id")
	}

	def.Regions[1].Locations[0].ID = 100
	if _, err := FromWorld(def); err == nil {
		t.Error("expected error for shared location id")
	}
}

func TestGroups(t *testing.T) {
	c, _ := New("Test", testItems())
	members := []string{"Key", "Gold"}
	c.SetGroup("Everything", members)
	members[0] = "Changed"

	got, ok := c.Group("Everything")
	if !ok || !reflect.DeepEqual(got, []string{"Key", "Gold"}) {
		t.Errorf("Group() = %v, %v", got, ok)
	}
	if _, ok := c.Group("Missing"); ok {
		t.Error("expected missing group lookup to fail")
	}
}
