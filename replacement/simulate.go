// Package replacement simulates page replacement policies over a sequence of
// page requests and produces a step-by-step trace of the frame table.
package replacement

import (
	"github.com/sarchlab/pagesim/sim"
)

type options struct {
	rng   RandSource
	hooks []sim.Hook
	runID string
}

// An Option customizes a simulation run.
type Option func(*options)

// WithRandSource sets the random source used by the Random policy.
func WithRandSource(rng RandSource) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithHooks registers hooks that observe the run at HookPosStep and
// HookPosResult.
func WithHooks(hooks ...sim.Hook) Option {
	return func(o *options) {
		o.hooks = append(o.hooks, hooks...)
	}
}

// WithRunID sets the RunID reported to hooks.
func WithRunID(id string) Option {
	return func(o *options) {
		o.runID = id
	}
}

// Simulate runs policy p over seq with frameCount frames. It panics if
// frameCount is not positive.
func Simulate(p Policy, seq []int, frameCount int, opts ...Option) Result {
	frameCountMustBePositive(frameCount)

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	info := RunInfo{
		RunID:      o.runID,
		Policy:     p,
		FrameCount: frameCount,
	}

	d := newDriver(info, newVictimFinder(p, seq, frameCount, o.rng))
	for _, h := range o.hooks {
		d.AcceptHook(h)
	}

	return d.run(seq)
}

// SimulateFIFO runs the First-In-First-Out policy.
func SimulateFIFO(seq []int, frameCount int) Result {
	return Simulate(FIFO, seq, frameCount)
}

// SimulateLRU runs the Least Recently Used policy.
func SimulateLRU(seq []int, frameCount int) Result {
	return Simulate(LRU, seq, frameCount)
}

// SimulateOptimal runs Belady's optimal policy.
func SimulateOptimal(seq []int, frameCount int) Result {
	return Simulate(Optimal, seq, frameCount)
}

// SimulateSecondChance runs the Second Chance (Clock) policy.
func SimulateSecondChance(seq []int, frameCount int) Result {
	return Simulate(SecondChance, seq, frameCount)
}

// SimulateMRU runs the Most Recently Used policy.
func SimulateMRU(seq []int, frameCount int) Result {
	return Simulate(MRU, seq, frameCount)
}

// SimulateRandom runs the Random policy. A nil rng uses a runtime-seeded
// source.
func SimulateRandom(seq []int, frameCount int, rng RandSource) Result {
	return Simulate(Random, seq, frameCount, WithRandSource(rng))
}

// SimulateNFU runs the Not Frequently Used policy.
func SimulateNFU(seq []int, frameCount int) Result {
	return Simulate(NFU, seq, frameCount)
}
