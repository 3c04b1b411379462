package grid_test

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/katalvlaran/gridsearch/grid"
)

func mustGrid(t *testing.T, w, h int, opts ...grid.Option) *grid.Grid {
	t.Helper()
	g, err := grid.New(w, h, grid.Position{X: 0, Y: 0}, grid.Position{X: w - 1, Y: h - 1}, opts...)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}

	return g
}

// TestNewSpawner_Errors rejects probabilities outside [0,1].
func TestNewSpawner_Errors(t *testing.T) {
	if _, err := grid.NewSpawner(-0.1, nil); !errors.Is(err, grid.ErrProbability) {
		t.Errorf("p=-0.1: want ErrProbability, got %v", err)
	}
	if _, err := grid.NewSpawner(1.1, nil); !errors.Is(err, grid.ErrProbability) {
		t.Errorf("p=1.1: want ErrProbability, got %v", err)
	}
}

// TestMaybeSpawn_ZeroProbability never spawns.
func TestMaybeSpawn_ZeroProbability(t *testing.T) {
	g := mustGrid(t, 5, 5)
	s, err := grid.NewSpawner(0, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewSpawner: %v", err)
	}
	for i := 0; i < 100; i++ {
		if p, ok := s.MaybeSpawn(g); ok {
			t.Fatalf("spawn #%d at %s with probability 0", i, p)
		}
	}
	if got := g.DynamicObstacles(); len(got) != 0 {
		t.Errorf("DynamicObstacles = %v; want empty", got)
	}
}

// TestMaybeSpawn_CertainProbability spawns exactly one obstacle per
// invocation until no Empty cell remains, then reports false.
func TestMaybeSpawn_CertainProbability(t *testing.T) {
	g := mustGrid(t, 3, 3) // 9 cells − start − target = 7 spawnable
	s, err := grid.NewSpawner(1, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewSpawner: %v", err)
	}

	seen := make(map[grid.Position]bool)
	for i := 0; i < 7; i++ {
		p, ok := s.MaybeSpawn(g)
		if !ok {
			t.Fatalf("spawn #%d: want a spawn, got none", i)
		}
		if seen[p] {
			t.Fatalf("spawn #%d: position %s spawned twice", i, p)
		}
		if p == g.Start() || p == g.Target() {
			t.Fatalf("spawn #%d landed on endpoint %s", i, p)
		}
		seen[p] = true
	}

	// Grid is saturated: further invocations must decline.
	if p, ok := s.MaybeSpawn(g); ok {
		t.Errorf("saturated grid spawned %s", p)
	}
	if got := len(g.DynamicObstacles()); got != 7 {
		t.Errorf("obstacle count = %d; want 7", got)
	}
}

// TestMaybeSpawn_Reproducible: identical seeds replay the exact spawn
// sequence on identical grids.
func TestMaybeSpawn_Reproducible(t *testing.T) {
	sequence := func(seed int64) []grid.Position {
		g := mustGrid(t, 6, 6)
		s, err := grid.NewSpawner(0.5, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("NewSpawner: %v", err)
		}
		var out []grid.Position
		for i := 0; i < 40; i++ {
			if p, ok := s.MaybeSpawn(g); ok {
				out = append(out, p)
			}
		}

		return out
	}

	first, second := sequence(1234), sequence(1234)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed diverged:\n  first:  %v\n  second: %v", first, second)
	}
	if len(first) == 0 {
		t.Error("expected at least one spawn at p=0.5 over 40 draws")
	}
}
