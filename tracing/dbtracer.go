package tracing

import (
	"sync"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/sim"
)

// Table names used by the DBTracer.
const (
	StepTable = "pagesim_steps"
	RunTable  = "pagesim_runs"
)

// StepEntry is a row of the step table.
type StepEntry struct {
	RunID       string `pagesim_data:"index"`
	Policy      string `pagesim_data:"index"`
	StepIndex   int
	Request     int
	PageFault   bool
	Frames      string
	Slot        int
	EvictedPage int
	HasEvicted  bool
}

// RunEntry is a row of the run table.
type RunEntry struct {
	RunID         string `pagesim_data:"index"`
	Policy        string
	FrameCount    int
	Length        int
	PageFaults    int
	PageFaultRate float64
}

// DBTracer writes every step and every result into a DataRecorder.
type DBTracer struct {
	mu      sync.Mutex
	backend datarecording.DataRecorder
}

// NewDBTracer creates the step and run tables and returns a tracer that
// fills them.
func NewDBTracer(backend datarecording.DataRecorder) *DBTracer {
	backend.CreateTable(StepTable, StepEntry{})
	backend.CreateTable(RunTable, RunEntry{})

	return &DBTracer{backend: backend}
}

// Func records the step or result carried by the hook context.
func (t *DBTracer) Func(ctx sim.HookCtx) {
	if step, info, ok := stepOf(ctx); ok {
		t.mu.Lock()
		defer t.mu.Unlock()

		t.backend.InsertData(StepTable, StepEntry{
			RunID:       info.RunID,
			Policy:      info.Policy.String(),
			StepIndex:   step.Index,
			Request:     step.Request,
			PageFault:   step.PageFault,
			Frames:      FormatFrames(step.Frames),
			Slot:        step.Slot,
			EvictedPage: step.EvictedPage,
			HasEvicted:  step.HasEvicted,
		})

		return
	}

	if result, info, ok := resultOf(ctx); ok {
		t.mu.Lock()
		defer t.mu.Unlock()

		t.backend.InsertData(RunTable, RunEntry{
			RunID:         info.RunID,
			Policy:        result.Policy.String(),
			FrameCount:    result.FrameCount,
			Length:        len(result.PageSequence),
			PageFaults:    result.TotalPageFaults,
			PageFaultRate: result.PageFaultRate,
		})
	}
}
