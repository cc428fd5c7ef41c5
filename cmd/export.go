package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/export"
	"github.com/sarchlab/pagesim/replacement"
)

func (a *app) newExportCmd() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write simulation results to a compressed file.",
		Long: `export simulates one policy, or every policy with -p all, and ` +
			`writes the results as JSON compressed with the chosen codec.`,
		Example: `  pagesim export -p lru -f 3 -s "1 2 3 1 4" -o lru.json.lz4 --codec lz4`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("policy")
			output, _ := cmd.Flags().GetString("output")
			codecName, _ := cmd.Flags().GetString("codec")

			codec, err := export.ParseCodec(codecName)
			if err != nil {
				return err
			}

			w, err := a.workloadFromFlags(cmd)
			if err != nil {
				return err
			}

			var opts []replacement.Option
			if w.seed != 0 {
				opts = append(opts, replacement.WithRandSource(
					replacement.NewSeededRandSource(w.seed)))
			}

			var (
				results []replacement.Result
				fp      uint64
			)

			if name == "all" {
				results = replacement.Compare(w.seq, w.frames, opts...)
				fp = export.FingerprintAll(w.frames, w.seq)
			} else {
				policy, err := replacement.ParsePolicy(name)
				if err != nil {
					return err
				}

				fp = export.Fingerprint(policy, w.frames, w.seq)
				if policy == replacement.Random && w.seed != 0 {
					fp = export.FingerprintSeeded(policy, w.frames, w.seq, w.seed)
				}

				results = []replacement.Result{
					replacement.Simulate(policy, w.seq, w.frames, opts...),
				}
			}

			if output == "" {
				output = fmt.Sprintf("pagesim_%s_%016x%s", name, fp, codec.Ext())
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := export.Encode(f, results, codec); err != nil {
				return err
			}

			if err := f.Close(); err != nil {
				return err
			}

			a.logger.Info("results exported",
				"file", output, "runs", len(results), "codec", codec.String())
			fmt.Fprintln(cmd.OutOrStdout(), output)

			return nil
		},
	}

	exportCmd.Flags().StringP("policy", "p", a.cfg.Policy,
		"replacement policy, or all")
	exportCmd.Flags().StringP("output", "o", "",
		"output file, named after the input fingerprint if empty")
	exportCmd.Flags().String("codec", "lz4", "compression: none, lz4, or snappy")
	a.addWorkloadFlags(exportCmd)

	return exportCmd
}
