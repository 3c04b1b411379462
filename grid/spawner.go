package grid

import (
	"fmt"
	"math/rand"
	"time"
)

// Spawner is the dynamic obstacle injector. Once per search step the
// engine calls MaybeSpawn, which draws one uniform sample and, with the
// configured probability, converts one random Empty cell (never the
// start or target) into a DynamicObstacle.
//
// All randomness flows through the injected *rand.Rand, so a fixed seed
// reproduces the exact spawn sequence of a run.
type Spawner struct {
	probability float64
	rng         *rand.Rand
}

// NewSpawner builds a Spawner with the given per-step spawn
// probability. Returns ErrProbability when probability lies outside
// [0,1]. A nil rng falls back to a time-seeded source; pass an explicit
// source for reproducible runs.
func NewSpawner(probability float64, rng *rand.Rand) (*Spawner, error) {
	if probability < 0 || probability > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrProbability, probability)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Spawner{probability: probability, rng: rng}, nil
}

// Probability returns the configured per-step spawn probability.
func (s *Spawner) Probability() float64 { return s.probability }

// MaybeSpawn performs at most one spawn attempt on g:
//  1. Draw one uniform sample; no spawn if it is ≥ probability.
//  2. Enumerate Empty cells excluding start and target (deterministic
//     x-major order, so candidate indexing is seed-stable).
//  3. Pick one uniformly and convert it via AddDynamicObstacle.
//
// Returns the spawned position and true, or a zero Position and false
// when nothing spawned (probability miss or no Empty cell left).
// Complexity: O(W×H) per invocation.
func (s *Spawner) MaybeSpawn(g *Grid) (Position, bool) {
	if s.rng.Float64() >= s.probability {
		return Position{}, false
	}

	candidates := g.emptyCells()
	if len(candidates) == 0 {
		return Position{}, false
	}

	p := candidates[s.rng.Intn(len(candidates))]
	if !g.AddDynamicObstacle(p) {
		// Unreachable for Empty candidates; kept as a hard guarantee
		// that MaybeSpawn never reports a phantom spawn.
		return Position{}, false
	}

	return p, true
}
