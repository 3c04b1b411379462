package search_test

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/katalvlaran/gridsearch/grid"
	"github.com/katalvlaran/gridsearch/search"
)

func openGrid(t *testing.T, w, h int, opts ...grid.Option) *grid.Grid {
	t.Helper()
	g, err := grid.New(w, h, grid.Position{X: 0, Y: 0}, grid.Position{X: w - 1, Y: h - 1}, opts...)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}

	return g
}

// wallRow spans the full grid width at the given row, sealing the
// start component off from the target component.
func wallRow(w, y int) []grid.Position {
	ps := make([]grid.Position, w)
	for x := 0; x < w; x++ {
		ps[x] = grid.Position{X: x, Y: y}
	}

	return ps
}

// assertContiguous checks that path runs start→target over walkable
// 8-neighbor moves.
func assertContiguous(t *testing.T, g *grid.Grid, path []grid.Position) {
	t.Helper()
	if len(path) == 0 {
		t.Fatal("empty path")
	}
	if path[0] != g.Start() {
		t.Errorf("path[0] = %s; want start %s", path[0], g.Start())
	}
	if last := path[len(path)-1]; last != g.Target() {
		t.Errorf("path end = %s; want target %s", last, g.Target())
	}
	for i := 1; i < len(path); i++ {
		dx, dy := path[i].X-path[i-1].X, path[i].Y-path[i-1].Y
		if dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx == 0 && dy == 0) {
			t.Errorf("path[%d] %s → %s is not an 8-neighbor move", i, path[i-1], path[i])
		}
		if g.StateAt(path[i]) == grid.Wall {
			t.Errorf("path[%d] = %s crosses a wall", i, path[i])
		}
	}
}

// TestNew_Errors verifies construction-time rejection of bad configuration.
func TestNew_Errors(t *testing.T) {
	g := openGrid(t, 5, 5)

	if _, err := search.New(nil, search.BFS); !errors.Is(err, search.ErrGridNil) {
		t.Errorf("nil grid: want ErrGridNil, got %v", err)
	}
	if _, err := search.New(g, search.Strategy(99)); !errors.Is(err, search.ErrUnknownStrategy) {
		t.Errorf("bogus strategy: want ErrUnknownStrategy, got %v", err)
	}
	if _, err := search.New(g, search.DLS, search.WithDepthLimit(0)); !errors.Is(err, search.ErrOptionViolation) {
		t.Errorf("zero depth limit: want ErrOptionViolation, got %v", err)
	}
	if _, err := search.New(g, search.BFS, search.WithSpawnProbability(1.5)); !errors.Is(err, search.ErrOptionViolation) {
		t.Errorf("p=1.5: want ErrOptionViolation, got %v", err)
	}
}

// TestBFS_OpenGrid pins the canonical 5×5 example: diagonal path of
// five positions, cost 4·√2, at most 25 expansions.
func TestBFS_OpenGrid(t *testing.T) {
	g := openGrid(t, 5, 5)
	eng, err := search.New(g, search.BFS, search.WithSpawnProbability(0))
	if err != nil {
		t.Fatalf("search.New: %v", err)
	}

	res, err := eng.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Found || res.Reason != search.TargetFound {
		t.Fatalf("Found=%v Reason=%v; want true, target found", res.Found, res.Reason)
	}
	if len(res.Path) != 5 {
		t.Errorf("path length = %d; want 5", len(res.Path))
	}
	if want := 4 * math.Sqrt2; math.Abs(res.TotalCost-want) > 1e-9 {
		t.Errorf("total cost = %v; want %v", res.TotalCost, want)
	}
	if res.NodesExplored > 25 {
		t.Errorf("explored = %d; want ≤ 25", res.NodesExplored)
	}
	if res.ObstaclesEncountered != 0 {
		t.Errorf("obstacles = %d; want 0", res.ObstaclesEncountered)
	}
	assertContiguous(t, g, res.Path)

	if eng.Status() != search.Succeeded {
		t.Errorf("status = %v; want Succeeded", eng.Status())
	}
}

// TestWallRow_NoPath seals the target behind a full-width wall: every
// strategy reports "no path exists" with zero obstacles, and BFS's
// explored set equals the reachable component of the start.
func TestWallRow_NoPath(t *testing.T) {
	strategies := []search.Strategy{
		search.BFS, search.DFS, search.UCS, search.DLS, search.IDDFS, search.Bidirectional,
	}
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			g := openGrid(t, 5, 5, grid.WithWalls(wallRow(5, 2)...))
			eng, err := search.New(g, s, search.WithSpawnProbability(0))
			if err != nil {
				t.Fatalf("search.New: %v", err)
			}
			res, err := eng.Run()
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if res.Found {
				t.Fatal("found a path through a solid wall")
			}
			if res.Reason != search.NoPath {
				t.Errorf("reason = %v; want no path", res.Reason)
			}
			if res.ObstaclesEncountered != 0 {
				t.Errorf("obstacles = %d; want 0", res.ObstaclesEncountered)
			}
		})
	}

	// BFS explores exactly the 10-cell component containing the start.
	g := openGrid(t, 5, 5, grid.WithWalls(wallRow(5, 2)...))
	eng, _ := search.New(g, search.BFS, search.WithSpawnProbability(0))
	res, _ := eng.Run()
	if res.NodesExplored != 10 {
		t.Errorf("BFS explored = %d; want the full 10-cell component", res.NodesExplored)
	}
}

// TestStep_Terminal verifies the invalid-step-invocation contract and
// Result gating.
func TestStep_Terminal(t *testing.T) {
	g := openGrid(t, 3, 3)
	eng, err := search.New(g, search.BFS, search.WithSpawnProbability(0))
	if err != nil {
		t.Fatalf("search.New: %v", err)
	}

	if _, err = eng.Result(); !errors.Is(err, search.ErrNotFinished) {
		t.Errorf("early Result: want ErrNotFinished, got %v", err)
	}

	if _, err = eng.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err = eng.Step(); !errors.Is(err, search.ErrEngineDone) {
		t.Errorf("Step after terminal: want ErrEngineDone, got %v", err)
	}
	if res, err := eng.Result(); err != nil || !res.Found {
		t.Errorf("Result = %v, %v; want found result, nil", res, err)
	}
}

// TestStepwise_Metrics drives the machine manually and checks the live
// counter view stays consistent with the emitted records.
func TestStepwise_Metrics(t *testing.T) {
	g := openGrid(t, 4, 4)
	eng, err := search.New(g, search.BFS, search.WithSpawnProbability(0))
	if err != nil {
		t.Fatalf("search.New: %v", err)
	}

	steps, explored := 0, 0
	for {
		rec, err := eng.Step()
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		steps++
		explored += len(rec.ExploredDelta)
		if rec.Step != steps {
			t.Fatalf("record step = %d; want %d", rec.Step, steps)
		}
		if rec.Terminal != nil {
			break
		}
	}

	m := eng.Metrics()
	if m.ElapsedSteps != steps {
		t.Errorf("ElapsedSteps = %d; want %d", m.ElapsedSteps, steps)
	}
	if m.ExploredCount != explored {
		t.Errorf("ExploredCount = %d; want %d (sum of deltas)", m.ExploredCount, explored)
	}
}

// TestExploredMonotonic: the explored set never loses a member, even
// while obstacles spawn mid-run on a seeded injector.
func TestExploredMonotonic(t *testing.T) {
	g := openGrid(t, 8, 8)
	eng, err := search.New(g, search.BFS,
		search.WithSpawnProbability(0.5),
		search.WithRandom(rand.New(rand.NewSource(2024))),
	)
	if err != nil {
		t.Fatalf("search.New: %v", err)
	}

	seen := make(map[grid.Position]bool)
	prevSize := 0
	for {
		rec, err := eng.Step()
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		for _, p := range rec.ExploredDelta {
			if seen[p] {
				t.Fatalf("position %s reported explored twice", p)
			}
			seen[p] = true
		}
		if len(seen) < prevSize {
			t.Fatalf("explored set shrank: %d → %d", prevSize, len(seen))
		}
		prevSize = len(seen)
		if rec.Terminal != nil {
			break
		}
	}
}

// TestReproducibleRun: a fixed seed with certain spawning replays
// identical step records, spawn for spawn.
func TestReproducibleRun(t *testing.T) {
	capture := func(seed int64) []search.StepRecord {
		g := openGrid(t, 5, 5)
		eng, err := search.New(g, search.BFS,
			search.WithSpawnProbability(1),
			search.WithRandom(rand.New(rand.NewSource(seed))),
		)
		if err != nil {
			t.Fatalf("search.New: %v", err)
		}
		var recs []search.StepRecord
		for {
			rec, err := eng.Step()
			if err != nil {
				t.Fatalf("Step: %v", err)
			}
			recs = append(recs, rec)
			if rec.Terminal != nil {
				break
			}
		}

		return recs
	}

	first, second := capture(77), capture(77)
	if len(first) != len(second) {
		t.Fatalf("step counts diverged: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.DidSpawn != b.DidSpawn || a.Spawned != b.Spawned {
			t.Errorf("step %d: spawn diverged (%v %s vs %v %s)", i, a.DidSpawn, a.Spawned, b.DidSpawn, b.Spawned)
		}
		if a.HasCurrent != b.HasCurrent || a.Current != b.Current {
			t.Errorf("step %d: current diverged", i)
		}
		if !reflect.DeepEqual(a.Frontier, b.Frontier) || !reflect.DeepEqual(a.ExploredDelta, b.ExploredDelta) {
			t.Errorf("step %d: snapshots diverged", i)
		}
	}

	// With certain spawning, every step spawns until saturation; the
	// first step must spawn.
	if !first[0].DidSpawn {
		t.Error("p=1: first step did not spawn")
	}
}

// TestOnStepHook: the hook sees every record; a hook error aborts Run.
func TestOnStepHook(t *testing.T) {
	g := openGrid(t, 4, 4)
	var calls int
	eng, err := search.New(g, search.BFS,
		search.WithSpawnProbability(0),
		search.WithOnStep(func(search.StepRecord) error { calls++; return nil }),
	)
	if err != nil {
		t.Fatalf("search.New: %v", err)
	}
	if _, err = eng.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != eng.Metrics().ElapsedSteps {
		t.Errorf("hook calls = %d; want %d", calls, eng.Metrics().ElapsedSteps)
	}

	boom := errors.New("stop right there")
	eng2, err := search.New(openGrid(t, 4, 4), search.BFS,
		search.WithSpawnProbability(0),
		search.WithOnStep(func(search.StepRecord) error { return boom }),
	)
	if err != nil {
		t.Fatalf("search.New: %v", err)
	}
	if _, err = eng2.Run(); !errors.Is(err, boom) {
		t.Errorf("hook error: want %v, got %v", boom, err)
	}
}

// TestRun_Cancellation halts a run at a step boundary.
func TestRun_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // immediate

	g := openGrid(t, 16, 16)
	eng, err := search.New(g, search.BFS,
		search.WithSpawnProbability(0),
		search.WithContext(ctx),
	)
	if err != nil {
		t.Fatalf("search.New: %v", err)
	}
	if _, err = eng.Run(); !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

// TestRunAll compares every strategy on identical terrain and resets
// dynamic obstacles between runs.
func TestRunAll(t *testing.T) {
	g := openGrid(t, 5, 5)
	all := []search.Strategy{
		search.BFS, search.DFS, search.UCS, search.DLS, search.IDDFS, search.Bidirectional,
	}

	results, err := search.RunAll(g, all, search.WithSpawnProbability(0))
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if len(results) != len(all) {
		t.Fatalf("results = %d; want %d", len(results), len(all))
	}
	for i, res := range results {
		if !res.Found {
			t.Errorf("%s: no path found on an open grid", all[i])
		}
	}
	if got := g.DynamicObstacles(); len(got) != 0 {
		t.Errorf("dynamic obstacles leaked across runs: %v", got)
	}
}
