package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/input"
	"github.com/sarchlab/pagesim/replacement"
)

func (a *app) newBeladyCmd() *cobra.Command {
	beladyCmd := &cobra.Command{
		Use:   "belady",
		Short: "Show page faults for growing frame counts and find anomalies.",
		Long: `belady simulates a policy with 1 up to max frames and reports ` +
			`every frame count where adding a frame increased the faults.`,
		Example: `  pagesim belady -p fifo -m 5 -s 1,2,3,4,1,2,5,1,2,3,4,5`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("policy")
			maxFrames, _ := cmd.Flags().GetInt("max-frames")
			text, _ := cmd.Flags().GetString("sequence")
			seed, _ := cmd.Flags().GetUint64("seed")

			policy, err := replacement.ParsePolicy(name)
			if err != nil {
				return err
			}

			seq, err := input.ParseStrict(text)
			if err != nil {
				return err
			}

			if err := input.ValidateFrameCount(maxFrames); err != nil {
				return err
			}

			var opts []replacement.Option
			if seed != 0 {
				opts = append(opts, replacement.WithRandSource(
					replacement.NewSeededRandSource(seed)))
			}

			curve := replacement.FaultCurve(policy, seq, maxFrames, opts...)

			out := cmd.OutOrStdout()
			tw := newTable(out)
			fmt.Fprintln(tw, "FRAMES\tFAULTS")

			for i, faults := range curve {
				fmt.Fprintf(tw, "%d\t%d\n", i+1, faults)
			}

			if err := tw.Flush(); err != nil {
				return err
			}

			anomalies := replacement.AnomaliesIn(curve)
			if len(anomalies) == 0 {
				fmt.Fprintf(out, "\nNo anomaly for %s up to %d frames.\n",
					policy, maxFrames)
				return nil
			}

			fmt.Fprintln(out)
			for _, an := range anomalies {
				fmt.Fprintf(out, "Anomaly: %d -> %d frames raised faults %d -> %d\n",
					an.Frames, an.Frames+1, an.Faults, an.NextFaults)
			}

			return nil
		},
	}

	beladyCmd.Flags().StringP("policy", "p", "fifo", "replacement policy")
	beladyCmd.Flags().IntP("max-frames", "m", input.MaxFrames,
		"largest frame count to try")
	beladyCmd.Flags().StringP("sequence", "s", "",
		"page requests separated by commas or spaces")
	beladyCmd.Flags().Uint64("seed", a.cfg.Seed,
		"seed for the Random policy, 0 for an unseeded run")
	_ = beladyCmd.MarkFlagRequired("sequence")

	return beladyCmd
}
