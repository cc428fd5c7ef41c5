// Package cmd provides the command-line interface for pagesim.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/config"
	"github.com/sarchlab/pagesim/input"
	"github.com/sarchlab/pagesim/logging"
)

type app struct {
	cfg    config.Config
	logger logging.Logger
	zap    *logging.Zap
}

// NewRootCmd creates the pagesim command tree. Flag defaults come from cfg.
func NewRootCmd(cfg config.Config) *cobra.Command {
	a := &app{cfg: cfg, logger: logging.Discard}

	rootCmd := &cobra.Command{
		Use:   "pagesim",
		Short: "pagesim simulates page replacement policies.",
		Long: `pagesim simulates how FIFO, LRU, Optimal, Second Chance, MRU, ` +
			`Random, and NFU page replacement serve a sequence of page ` +
			`requests with a fixed number of physical frames.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, _ := cmd.Flags().GetString("log-level")

			z, err := logging.NewConsole(level)
			if err != nil {
				return err
			}

			a.zap = z
			a.logger = z

			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.zap != nil {
				_ = a.zap.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().String("log-level", cfg.LogLevel,
		"log level: debug, info, warn, or error")

	rootCmd.AddCommand(
		a.newRunCmd(),
		a.newCompareCmd(),
		a.newBeladyCmd(),
		a.newServeCmd(),
		a.newExportCmd(),
		a.newHistoryCmd(),
		a.newPoliciesCmd(),
	)

	return rootCmd
}

// Execute loads the configuration, builds the command tree, and runs it.
func Execute() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	err = NewRootCmd(cfg).Execute()
	if err != nil {
		os.Exit(1)
	}
}

// addWorkloadFlags registers the frame count, sequence, and seed flags.
func (a *app) addWorkloadFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("frames", "f", a.cfg.Frames, "number of physical frames")
	cmd.Flags().StringP("sequence", "s", "",
		"page requests separated by commas or spaces")
	cmd.Flags().Uint64("seed", a.cfg.Seed,
		"seed for the Random policy, 0 for an unseeded run")

	_ = cmd.MarkFlagRequired("sequence")
}

type workload struct {
	seq    []int
	frames int
	seed   uint64
}

func (a *app) workloadFromFlags(cmd *cobra.Command) (workload, error) {
	text, _ := cmd.Flags().GetString("sequence")
	frames, _ := cmd.Flags().GetInt("frames")
	seed, _ := cmd.Flags().GetUint64("seed")

	seq, err := input.ParseStrict(text)
	if err != nil {
		return workload{}, err
	}

	if err := input.ValidateFrameCount(frames); err != nil {
		return workload{}, err
	}

	if frames > input.MaxFrames {
		a.logger.Warn("frame count clamped",
			"requested", frames, "max", input.MaxFrames)
		frames = input.ClampFrameCount(frames)
	}

	return workload{seq: seq, frames: frames, seed: seed}, nil
}
