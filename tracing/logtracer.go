package tracing

import (
	"github.com/sarchlab/pagesim/logging"
	"github.com/sarchlab/pagesim/sim"
)

// LogTracer logs every step and result.
type LogTracer struct {
	logger logging.Logger
}

// NewLogTracer creates a LogTracer that writes to logger.
func NewLogTracer(logger logging.Logger) *LogTracer {
	return &LogTracer{logger: logger}
}

// Func logs the step or result carried by the hook context.
func (t *LogTracer) Func(ctx sim.HookCtx) {
	if step, info, ok := stepOf(ctx); ok {
		args := []any{
			"run", info.RunID,
			"policy", info.Policy.String(),
			"index", step.Index,
			"request", step.Request,
			"fault", step.PageFault,
			"frames", FormatFrames(step.Frames),
		}

		if step.HasEvicted {
			args = append(args, "evicted", step.EvictedPage)
		}

		t.logger.Info("step", args...)

		return
	}

	if result, info, ok := resultOf(ctx); ok {
		t.logger.Info("run finished",
			"run", info.RunID,
			"policy", result.Policy.String(),
			"frames", result.FrameCount,
			"faults", result.TotalPageFaults,
			"rate", result.PageFaultRate,
		)
	}
}
