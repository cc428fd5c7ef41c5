package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/tracing"
)

func (a *app) newHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:     "history <db.sqlite3>",
		Short:   "List runs recorded with --record.",
		Example: `  pagesim history pagesim_d2l1bg4n1v9s73a1k8ng.sqlite3 -p lru`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("policy")
			limit, _ := cmd.Flags().GetInt("limit")

			if _, err := os.Stat(args[0]); err != nil {
				return err
			}

			params := datarecording.QueryParams{
				OrderBy: "rowid",
				Limit:   limit,
			}

			if name != "" {
				policy, err := replacement.ParsePolicy(name)
				if err != nil {
					return err
				}

				params.Where = "Policy = ?"
				params.Args = []any{policy.String()}
			}

			reader := datarecording.NewReader(args[0])
			defer reader.Close()

			reader.MapTable(tracing.RunTable, tracing.RunEntry{})

			rows, total, err := reader.Query(cmd.Context(), tracing.RunTable, params)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := newTable(out)
			fmt.Fprintln(tw, "RUN\tPOLICY\tFRAMES\tREQUESTS\tFAULTS\tFAULT RATE")

			for _, row := range rows {
				run := row.(*tracing.RunEntry)
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.2f%%\n",
					run.RunID, run.Policy, run.FrameCount, run.Length,
					run.PageFaults, run.PageFaultRate*100)
			}

			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "\n%d of %d runs\n", len(rows), total)

			return nil
		},
	}

	historyCmd.Flags().StringP("policy", "p", "", "only list runs of a policy")
	historyCmd.Flags().Int("limit", 0, "maximum number of runs, 0 for all")

	return historyCmd
}
