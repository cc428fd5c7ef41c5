// Package simulation wires the replacement engine together with recording,
// tracing, and monitoring.
package simulation

import (
	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/logging"
	"github.com/sarchlab/pagesim/monitoring"
	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/sim"
	"github.com/sarchlab/pagesim/tracing"
)

// A Simulation runs replacement policies with a fixed number of frames.
type Simulation struct {
	id         string
	frameCount int
	rng        replacement.RandSource
	logger     logging.Logger
	runIDs     sim.IDGenerator
	hooks      []sim.Hook

	dataRecorder datarecording.DataRecorder
	dbTracer     *tracing.DBTracer
	faultCounter *tracing.FaultCountTracer
	monitor      *monitoring.Monitor
}

// ID returns the ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// FrameCount returns the number of physical frames.
func (s *Simulation) FrameCount() int {
	return s.frameCount
}

// DataRecorder returns the data recorder, or nil when recording is off.
func (s *Simulation) DataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// FaultCounter returns the tracer that counts faults of every run.
func (s *Simulation) FaultCounter() *tracing.FaultCountTracer {
	return s.faultCounter
}

// Monitor returns the monitor, or nil when monitoring is off.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// Run simulates one policy over seq.
func (s *Simulation) Run(
	p replacement.Policy,
	seq []int,
) replacement.Result {
	runID := s.runIDs.Generate()

	s.logger.Debug("run started",
		"run", runID,
		"policy", p.String(),
		"frames", s.frameCount,
		"requests", len(seq))

	result := replacement.Simulate(p, seq, s.frameCount,
		replacement.WithRunID(runID),
		replacement.WithRandSource(s.rng),
		replacement.WithHooks(s.hooks...),
	)

	if s.monitor != nil {
		s.monitor.Record(result)
	}

	return result
}

// Compare simulates every policy over seq.
func (s *Simulation) Compare(seq []int) []replacement.Result {
	policies := replacement.Policies()

	var bar *monitoring.ProgressBar
	if s.monitor != nil {
		bar = s.monitor.CreateProgressBar("compare", uint64(len(policies)))
		defer s.monitor.CompleteProgressBar(bar)
	}

	results := make([]replacement.Result, 0, len(policies))
	for _, p := range policies {
		results = append(results, s.Run(p, seq))

		if bar != nil {
			bar.IncrementFinished(1)
		}
	}

	return results
}

// Terminate flushes and closes the recorder and stops the monitor.
func (s *Simulation) Terminate() {
	if s.dataRecorder != nil {
		err := s.dataRecorder.Close()
		if err != nil {
			s.logger.Error("closing recorder failed", "error", err)
		}
	}

	if s.monitor != nil {
		err := s.monitor.StopServer()
		if err != nil {
			s.logger.Error("stopping monitor failed", "error", err)
		}
	}
}
