package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/simulation"
)

func (a *app) newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate one policy and print every step.",
		Example: `  pagesim run -p lru -f 3 -s "7 0 1 2 0 3 0 4"
  pagesim run -p random -f 4 -s 1,2,3,4,1,2,5 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("policy")

			policy, err := replacement.ParsePolicy(name)
			if err != nil {
				return err
			}

			w, err := a.workloadFromFlags(cmd)
			if err != nil {
				return err
			}

			s := a.buildSimulation(cmd, w)
			defer s.Terminate()

			result := s.Run(policy, w.seq)

			out := cmd.OutOrStdout()
			if err := printSteps(out, result); err != nil {
				return err
			}

			fmt.Fprintln(out)
			printSummary(out, result)

			return nil
		},
	}

	runCmd.Flags().StringP("policy", "p", a.cfg.Policy, "replacement policy")
	a.addWorkloadFlags(runCmd)
	a.addRecordingFlags(runCmd)

	return runCmd
}

func (a *app) addRecordingFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("record", a.cfg.Record, "record every step into SQLite")
	cmd.Flags().String("db", a.cfg.DB,
		"database name without the .sqlite3 suffix, generated if empty")
	cmd.Flags().BoolP("verbose", "v", false, "log every step")
}

func (a *app) buildSimulation(
	cmd *cobra.Command,
	w workload,
) *simulation.Simulation {
	record, _ := cmd.Flags().GetBool("record")
	db, _ := cmd.Flags().GetString("db")
	verbose, _ := cmd.Flags().GetBool("verbose")

	b := simulation.MakeBuilder().
		WithFrameCount(w.frames).
		WithSeed(w.seed).
		WithLogger(a.logger)

	switch {
	case !record:
		b = b.WithoutRecording()
	case db != "":
		b = b.WithOutputFileName(db)
	}

	if verbose {
		b = b.WithVerbose()
	}

	return b.Build()
}
