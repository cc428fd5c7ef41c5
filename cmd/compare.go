package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/replacement"
)

func (a *app) newCompareCmd() *cobra.Command {
	compareCmd := &cobra.Command{
		Use:     "compare",
		Short:   "Simulate every policy over the same requests.",
		Example: `  pagesim compare -f 3 -s "7 0 1 2 0 3 0 4 2 3 0 3 2 1 2 0 1 7 0 1"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := a.workloadFromFlags(cmd)
			if err != nil {
				return err
			}

			s := a.buildSimulation(cmd, w)
			defer s.Terminate()

			results := s.Compare(w.seq)

			out := cmd.OutOrStdout()
			if err := printComparison(out, results); err != nil {
				return err
			}

			if best, ok := replacement.BestPolicy(results); ok {
				fmt.Fprintf(out, "\nBest: %s\n", best)
			}

			checkOptimalBound(a, results)

			return nil
		},
	}

	a.addWorkloadFlags(compareCmd)
	a.addRecordingFlags(compareCmd)

	return compareCmd
}

// checkOptimalBound warns if any policy beat Optimal, which would indicate a
// bug in the engine.
func checkOptimalBound(a *app, results []replacement.Result) {
	var optimal *replacement.Result

	for i := range results {
		if results[i].Policy == replacement.Optimal {
			optimal = &results[i]
		}
	}

	if optimal == nil {
		return
	}

	for _, r := range results {
		if r.TotalPageFaults < optimal.TotalPageFaults {
			a.logger.Error("policy beat the optimal policy",
				"policy", r.Policy.String(),
				"faults", r.TotalPageFaults,
				"optimal", optimal.TotalPageFaults)
		}
	}
}
