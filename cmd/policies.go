package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/replacement"
)

func (a *app) newPoliciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List the supported replacement policies.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "NAME\tTITLE\tDESCRIPTION")

			for _, p := range replacement.Policies() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p, p.Title(), p.Description())
			}

			_ = tw.Flush()
		},
	}
}
