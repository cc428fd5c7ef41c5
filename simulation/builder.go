package simulation

import (
	"github.com/rs/xid"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/logging"
	"github.com/sarchlab/pagesim/monitoring"
	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/sim"
	"github.com/sarchlab/pagesim/tracing"
)

// Builder can be used to build a simulation.
type Builder struct {
	frameCount     int
	seed           uint64
	recordOn       bool
	recorder       datarecording.DataRecorder
	outputFileName string
	monitorOn      bool
	monitorPort    int
	logger         logging.Logger
	verbose        bool
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		frameCount: 3,
		recordOn:   true,
		logger:     logging.Discard,
	}
}

// WithFrameCount sets the number of physical frames.
func (b Builder) WithFrameCount(n int) Builder {
	b.frameCount = n
	return b
}

// WithSeed makes the Random policy reproducible. A zero seed leaves it
// unseeded.
func (b Builder) WithSeed(seed uint64) Builder {
	b.seed = seed
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithRecorder sets the data recorder to use instead of creating one.
func (b Builder) WithRecorder(recorder datarecording.DataRecorder) Builder {
	b.recorder = recorder
	return b
}

// WithoutRecording sets the simulation to not record steps.
func (b Builder) WithoutRecording() Builder {
	b.recordOn = false
	return b
}

// WithMonitor enables the monitoring server.
func (b Builder) WithMonitor() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithLogger sets the logger.
func (b Builder) WithLogger(logger logging.Logger) Builder {
	b.logger = logger
	return b
}

// WithVerbose logs every step.
func (b Builder) WithVerbose() Builder {
	b.verbose = true
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.frameCount < 1 {
		panic("frame count must be positive")
	}

	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordOn && (b.outputFileName != "" || b.recorder != nil) {
		panic("output cannot be set when recording is disabled")
	}

	if b.outputFileName != "" && b.recorder != nil {
		panic("output file name cannot be set with a custom recorder")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:           xid.New().String(),
		frameCount:   b.frameCount,
		logger:       b.logger,
		runIDs:       sim.NewXIDGenerator(),
		faultCounter: tracing.NewFaultCountTracer(),
	}

	s.hooks = append(s.hooks, s.faultCounter)

	if b.seed != 0 {
		s.rng = replacement.NewSeededRandSource(b.seed)
	}

	if b.recordOn {
		s.dataRecorder = b.recorder
		if s.dataRecorder == nil {
			outputPath := b.outputFileName
			if outputPath == "" {
				outputPath = "pagesim_" + s.id
			}

			s.dataRecorder = datarecording.New(outputPath)
		}

		s.dbTracer = tracing.NewDBTracer(s.dataRecorder)
		s.hooks = append(s.hooks, s.dbTracer)
	}

	if b.verbose {
		s.hooks = append(s.hooks, tracing.NewLogTracer(b.logger))
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor().WithLogger(b.logger)
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.StartServer()
	}

	return s
}
