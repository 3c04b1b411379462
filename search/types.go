// Package search defines tunable options, result types, and sentinel
// errors for the step-wise search engine.
package search

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/gridsearch/grid"
)

// DefaultDepthLimit bounds depth-limited search when WithDepthLimit is
// not supplied.
const DefaultDepthLimit = 150

// DefaultSpawnProbability is the per-step dynamic obstacle spawn chance
// when WithSpawnProbability is not supplied.
const DefaultSpawnProbability = 0.02

// Sentinel errors for engine construction and stepping.
var (
	// ErrGridNil is returned if a nil grid pointer is passed.
	ErrGridNil = errors.New("search: grid is nil")
	// ErrUnknownStrategy is returned for a Strategy outside the six variants.
	ErrUnknownStrategy = errors.New("search: unknown strategy")
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")
	// ErrEngineDone is returned when Step is invoked on a terminal
	// engine; advancing a finished machine is a contract violation.
	ErrEngineDone = errors.New("search: engine already terminal")
	// ErrNotFinished is returned by Result before the engine is terminal.
	ErrNotFinished = errors.New("search: engine not yet terminal")
)

// Strategy selects the frontier discipline and termination rule of a run.
type Strategy int

const (
	// BFS expands oldest-discovered first (FIFO queue).
	BFS Strategy = iota
	// DFS expands most-recently-discovered first (LIFO stack).
	DFS
	// UCS expands lowest accumulated cost first (min-priority queue,
	// insertion order breaks ties).
	UCS
	// DLS is DFS bounded by a configured depth limit; exhaustion after
	// the limit pruned a child reports Cutoff instead of NoPath.
	DLS
	// IDDFS repeats depth-bounded DFS with limits 1,2,3,… until success
	// or an iteration exhausts with zero cutoffs (proving no path).
	IDDFS
	// Bidirectional runs two FIFO searches, from start and from target,
	// alternating one expansion per side per step, and joins the parent
	// chains at the first Position expanded by both sides.
	Bidirectional
)

// String implements fmt.Stringer for Strategy.
func (s Strategy) String() string {
	switch s {
	case BFS:
		return "BFS"
	case DFS:
		return "DFS"
	case UCS:
		return "UCS"
	case DLS:
		return "DLS"
	case IDDFS:
		return "IDDFS"
	case Bidirectional:
		return "Bidirectional"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Status is the engine lifecycle state: Initialized → Running →
// {Succeeded, Failed}. Succeeded and Failed are terminal.
type Status int

const (
	// Initialized means no step has been taken yet.
	Initialized Status = iota
	// Running means at least one step has been taken and none was terminal.
	Running
	// Succeeded means the target was reached.
	Succeeded
	// Failed means the search exhausted without reaching the target.
	Failed
)

// String implements fmt.Stringer for Status.
func (s Status) String() string {
	switch s {
	case Initialized:
		return "Initialized"
	case Running:
		return "Running"
	case Succeeded:
		return "Succeeded"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Reason explains a terminal transition. NoPath and Cutoff are valid,
// expected search outcomes — states, not errors.
type Reason int

const (
	// TargetFound: the target was popped and the path reconstructed.
	TargetFound Reason = iota
	// NoPath: the frontier emptied; no route to the target exists.
	NoPath
	// Cutoff: the frontier emptied but the depth limit pruned at least
	// one child, so a path may exist beyond the configured limit.
	Cutoff
)

// String implements fmt.Stringer for Reason.
func (r Reason) String() string {
	switch r {
	case TargetFound:
		return "target found"
	case NoPath:
		return "no path exists"
	case Cutoff:
		return "cutoff"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// SearchResult is the immutable terminal record of one run.
type SearchResult struct {
	// Found reports whether the target was reached.
	Found bool
	// Path is the ordered Position sequence from start to target;
	// empty when Found is false.
	Path []grid.Position
	// TotalCost sums the step costs along Path (1 per axis move,
	// √2 per diagonal move); 0 when Found is false.
	TotalCost float64
	// NodesExplored counts expansions over the whole run.
	NodesExplored int
	// ObstaclesEncountered counts successful dynamic obstacle spawns.
	ObstaclesEncountered int
	// Reason explains the terminal transition.
	Reason Reason
}

// StepRecord is emitted after every step to the OnStep hook and
// returned by Step. Slices are fresh copies owned by the receiver.
type StepRecord struct {
	// Step is the 1-based step index.
	Step int
	// Current is the Position popped this step; valid when HasCurrent.
	// A frontier-empty terminal step has no current Position.
	Current grid.Position
	// HasCurrent reports whether Current is meaningful.
	HasCurrent bool
	// Frontier is the post-step frontier snapshot. For Bidirectional it
	// is the union of both frontiers.
	Frontier []grid.Position
	// ExploredDelta lists Positions newly marked explored this step
	// (at most one; up to two for Bidirectional).
	ExploredDelta []grid.Position
	// Spawned is the dynamic obstacle added this step; valid when DidSpawn.
	Spawned grid.Position
	// DidSpawn reports whether Spawned is meaningful.
	DidSpawn bool
	// Terminal carries the SearchResult when this step ended the run;
	// nil while the engine keeps running.
	Terminal *SearchResult
}

// Metrics is the read-only counter view exposed after (and during) a run.
type Metrics struct {
	// ExploredCount counts expansions so far.
	ExploredCount int
	// ObstaclesEncountered counts successful spawns so far.
	ObstaclesEncountered int
	// ElapsedSteps counts Step invocations that advanced the machine.
	ElapsedSteps int
}

// Option configures engine behavior via functional arguments.
// If an Option is invalid (e.g. negative depth limit), it is recorded
// internally and surfaced as ErrOptionViolation when New is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize a run.
type Options struct {
	// Ctx allows cancellation at step boundaries.
	Ctx context.Context

	// DepthLimit bounds DLS expansion depth.
	DepthLimit int

	// SpawnProbability is the per-step dynamic obstacle chance ∈ [0,1].
	SpawnProbability float64

	// Rand is the single source of nondeterminism; a fixed seed yields
	// a fully reproducible run. Nil selects a time-seeded source.
	Rand *rand.Rand

	// OnStep is called after every step with the fresh StepRecord.
	// If it returns an error, Run aborts and propagates that error.
	OnStep func(StepRecord) error

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with sane defaults:
//   - context.Background()
//   - DepthLimit = DefaultDepthLimit (150)
//   - SpawnProbability = DefaultSpawnProbability (0.02)
//   - time-seeded randomness
//   - no-op OnStep hook.
func DefaultOptions() Options {
	return Options{
		Ctx:              context.Background(),
		DepthLimit:       DefaultDepthLimit,
		SpawnProbability: DefaultSpawnProbability,
		Rand:             nil,
		OnStep:           func(StepRecord) error { return nil },
		err:              nil,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithDepthLimit bounds DLS depth (children beyond the limit are not
// pushed). Only DLS consumes it; IDDFS grows its own limit from 1.
//
//	d >= 1: limit to depth d
//	d < 1:  invalid option → ErrOptionViolation
func WithDepthLimit(d int) Option {
	return func(o *Options) {
		if d < 1 {
			o.err = fmt.Errorf("%w: depth limit must be at least 1 (%d)", ErrOptionViolation, d)

			return
		}
		o.DepthLimit = d
	}
}

// WithSpawnProbability sets the per-step dynamic obstacle chance.
//
//	p ∈ [0,1]: valid (0 disables injection entirely)
//	otherwise: invalid option → ErrOptionViolation
func WithSpawnProbability(p float64) Option {
	return func(o *Options) {
		if p < 0 || p > 1 {
			o.err = fmt.Errorf("%w: spawn probability must be within [0,1] (%v)", ErrOptionViolation, p)

			return
		}
		o.SpawnProbability = p
	}
}

// WithRandom injects the random source used by the obstacle injector.
// Pass a fixed-seed *rand.Rand for reproducible runs.
func WithRandom(rng *rand.Rand) Option {
	return func(o *Options) {
		if rng != nil {
			o.Rand = rng
		}
	}
}

// WithOnStep registers a callback to run after every step; returning an
// error from this callback stops Run.
func WithOnStep(fn func(StepRecord) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnStep = fn
		}
	}
}
