package grid

import (
	"math"
	"testing"
)

func TestAddPropagatesNaN(t *testing.T) {
	g := New(4, 4)
	g.Add(2, 1, 1.5)
	g.Add(2, 1, math.NaN())
	if !math.IsNaN(g.At(2, 1)) {
		t.Fatalf("expected NaN after adding sentinel, got %v", g.At(2, 1))
	}
	// the sentinel must survive later contributions
	g.Add(2, 1, 7.0)
	if !math.IsNaN(g.At(2, 1)) {
		t.Fatalf("sentinel lost after later addition: %v", g.At(2, 1))
	}
	if got := g.CountInvalid(); got != 1 {
		t.Fatalf("CountInvalid = %d, want 1", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := New(3, 2)
	g.Set(1, 1, 5)
	c := g.Clone()
	c.Set(1, 1, -5)
	if g.At(1, 1) != 5 {
		t.Fatalf("clone mutated the original: %v", g.At(1, 1))
	}
	if c.NX != g.NX || c.NY != g.NY {
		t.Fatalf("clone shape %dx%d differs from %dx%d", c.NX, c.NY, g.NX, g.NY)
	}
}

func TestRowMajorLayout(t *testing.T) {
	g := New(5, 3)
	g.Set(4, 2, 9)
	if g.Data[2*5+4] != 9 {
		t.Fatal("Set/At do not follow row-major x-fastest layout")
	}
}
