package replacement

import (
	"slices"

	"github.com/sarchlab/pagesim/sim"
)

// Hook positions exposed by a simulation run.
var (
	// HookPosStep is triggered after every request with the Step as item.
	HookPosStep = &sim.HookPos{Name: "Step"}

	// HookPosResult is triggered once per run with the Result as item.
	HookPosResult = &sim.HookPos{Name: "Result"}
)

// RunInfo describes the run a hook is invoked from. It is passed as the
// Detail of every HookCtx.
type RunInfo struct {
	RunID      string
	Policy     Policy
	FrameCount int
}

// driver runs the request loop shared by every policy.
type driver struct {
	*sim.HookableBase

	info   RunInfo
	finder VictimFinder
}

func newDriver(info RunInfo, finder VictimFinder) *driver {
	return &driver{
		HookableBase: sim.NewHookableBase(),
		info:         info,
		finder:       finder,
	}
}

// Name returns the name of the policy being simulated.
func (d *driver) Name() string {
	return d.info.Policy.String()
}

func (d *driver) run(seq []int) Result {
	frames := NewFrameTable(d.info.FrameCount)

	result := Result{
		Policy:       d.info.Policy,
		FrameCount:   d.info.FrameCount,
		PageSequence: slices.Clone(seq),
		Steps:        make([]Step, 0, len(seq)),
	}

	for index, page := range seq {
		step := d.process(frames, index, page)
		if step.PageFault {
			result.TotalPageFaults++
		}

		result.Steps = append(result.Steps, step)

		d.InvokeHook(sim.HookCtx{
			Domain: d,
			Pos:    HookPosStep,
			Item:   step,
			Detail: d.info,
		})
	}

	result.PageFaultRate = faultRate(result.TotalPageFaults, len(seq))

	d.InvokeHook(sim.HookCtx{
		Domain: d,
		Pos:    HookPosResult,
		Item:   result,
		Detail: d.info,
	})

	return result
}

func (d *driver) process(frames FrameTable, index, page int) Step {
	step := Step{
		Index:   index,
		Request: page,
		Slot:    -1,
	}

	slot := frames.IndexOf(page)
	hit := slot >= 0

	if !hit {
		step.PageFault = true

		slot = frames.FirstEmpty()
		if slot < 0 {
			slot = d.finder.FindVictim(frames, index)
			step.EvictedPage = frames[slot].Page
			step.HasEvicted = true
		}

		frames[slot] = Frame{Page: page, Occupied: true}
		step.Slot = slot
	}

	d.finder.Touch(frames, slot, index, hit)

	step.Frames = frames.Snapshot()
	d.finder.Annotate(&step)

	return step
}
