package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sarchlab/pagesim/replacement"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printSteps(w io.Writer, result replacement.Result) error {
	tw := newTable(w)

	header := []string{"STEP", "PAGE"}
	for i := 0; i < result.FrameCount; i++ {
		header = append(header, "F"+strconv.Itoa(i+1))
	}
	header = append(header, "RESULT", "NOTE")

	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, step := range result.Steps {
		row := []string{strconv.Itoa(step.Index + 1), strconv.Itoa(step.Request)}

		for _, f := range step.Frames {
			if !f.Occupied {
				row = append(row, "-")
				continue
			}

			row = append(row, strconv.Itoa(f.Page))
		}

		outcome := "H"
		if step.PageFault {
			outcome = "F"
		}

		row = append(row, outcome, stepNote(step))
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

func stepNote(step replacement.Step) string {
	var notes []string

	if step.HasEvicted {
		notes = append(notes, "evict "+strconv.Itoa(step.EvictedPage))
	}

	if step.SecondChanceBits != nil {
		bits := make([]string, len(step.SecondChanceBits))
		for i, b := range step.SecondChanceBits {
			bits[i] = "0"
			if b {
				bits[i] = "1"
			}
		}

		notes = append(notes, "R="+strings.Join(bits, ""))
	}

	if step.ReferenceCounter != nil {
		counters := make([]string, 0, len(step.ReferenceCounter))
		for _, page := range slices.Sorted(maps.Keys(step.ReferenceCounter)) {
			counters = append(counters,
				fmt.Sprintf("%d:%d", page, step.ReferenceCounter[page]))
		}

		notes = append(notes, strings.Join(counters, " "))
	}

	return strings.Join(notes, "; ")
}

func printSummary(w io.Writer, result replacement.Result) {
	fmt.Fprintf(w, "Policy:      %s\n", result.Policy.Title())
	fmt.Fprintf(w, "Frames:      %d\n", result.FrameCount)
	fmt.Fprintf(w, "Requests:    %d\n", len(result.PageSequence))
	fmt.Fprintf(w, "Page faults: %d\n", result.TotalPageFaults)
	fmt.Fprintf(w, "Hits:        %d\n", result.Hits())
	fmt.Fprintf(w, "Fault rate:  %.2f%%\n", result.PageFaultRate*100)
}

func printComparison(w io.Writer, results []replacement.Result) error {
	tw := newTable(w)

	fmt.Fprintln(tw, "POLICY\tFAULTS\tHITS\tFAULT RATE")

	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f%%\n",
			r.Policy, r.TotalPageFaults, r.Hits(), r.PageFaultRate*100)
	}

	return tw.Flush()
}
