package fill

import (
	"sort"
	"testing"
)

func TestRNG_Deterministic(t *testing.T) {
	rng1 := NewRNG(42)
	rng2 := NewRNG(42)

	for i := 0; i < 20; i++ {
		a := rng1.Intn(6)
		b := rng2.Intn(6)
		if a != b {
			t.Fatalf("draw %d: got %d and %d from same seed", i, a, b)
		}
	}
}

func TestRNG_Intn_Range(t *testing.T) {
	rng := NewRNG(99)

	for i := 0; i < 1000; i++ {
		if r := rng.Intn(6); r < 0 || r >= 6 {
			t.Fatalf("draw out of range [0,6): got %d", r)
		}
	}
}

func TestRNG_Position(t *testing.T) {
	rng := NewRNG(7)
	for i := 0; i < 5; i++ {
		rng.Intn(10)
	}
	if rng.Position() != 5 {
		t.Errorf("Position() = %d, want 5", rng.Position())
	}
	if rng.Seed() != 7 {
		t.Errorf("Seed() = %d, want 7", rng.Seed())
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	rng := NewRNG(3)
	Shuffle(rng, items)

	if rng.Position() != int64(len(items)-1) {
		t.Errorf("Position() = %d, want %d", rng.Position(), len(items)-1)
	}
	sorted := append([]int(nil), items...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v != i+1 {
			t.Fatalf("shuffle lost or duplicated elements: %v", items)
		}
	}
}
