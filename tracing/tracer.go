// Package tracing provides hooks that observe page-replacement runs.
package tracing

import (
	"strconv"
	"strings"

	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/sim"
)

// stepOf extracts the step and run information from a step hook context.
func stepOf(ctx sim.HookCtx) (replacement.Step, replacement.RunInfo, bool) {
	if ctx.Pos != replacement.HookPosStep {
		return replacement.Step{}, replacement.RunInfo{}, false
	}

	step, ok := ctx.Item.(replacement.Step)
	if !ok {
		return replacement.Step{}, replacement.RunInfo{}, false
	}

	info, _ := ctx.Detail.(replacement.RunInfo)

	return step, info, true
}

// resultOf extracts the result and run information from a result hook
// context.
func resultOf(
	ctx sim.HookCtx,
) (replacement.Result, replacement.RunInfo, bool) {
	if ctx.Pos != replacement.HookPosResult {
		return replacement.Result{}, replacement.RunInfo{}, false
	}

	result, ok := ctx.Item.(replacement.Result)
	if !ok {
		return replacement.Result{}, replacement.RunInfo{}, false
	}

	info, _ := ctx.Detail.(replacement.RunInfo)

	return result, info, true
}

// FormatFrames renders frames as a comma-separated list with "_" for empty
// frames, e.g. "1,2,_".
func FormatFrames(frames []replacement.Frame) string {
	parts := make([]string, len(frames))
	for i, f := range frames {
		if !f.Occupied {
			parts[i] = "_"
			continue
		}

		parts[i] = strconv.Itoa(f.Page)
	}

	return strings.Join(parts, ",")
}
