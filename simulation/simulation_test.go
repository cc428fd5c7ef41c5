package simulation

import (
	"context"
	"database/sql"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/tracing"
)

var classic = []int{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2, 1, 2, 0, 1, 7, 0, 1}

var _ = Describe("Builder", func() {
	It("should panic on a non-positive frame count", func() {
		Expect(func() {
			MakeBuilder().WithoutRecording().WithFrameCount(0).Build()
		}).To(Panic())
	})

	It("should panic on a monitor port without monitoring", func() {
		Expect(func() {
			MakeBuilder().WithoutRecording().WithMonitorPort(8080).Build()
		}).To(Panic())
	})

	It("should panic on an output file without recording", func() {
		Expect(func() {
			MakeBuilder().WithoutRecording().WithOutputFileName("x").Build()
		}).To(Panic())
	})

	It("should record into a named file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "run")

		s := MakeBuilder().WithOutputFileName(path).Build()
		s.Run(replacement.FIFO, []int{1, 2, 3})
		s.Terminate()

		Expect(path + ".sqlite3").To(BeAnExistingFile())
	})
})

var _ = Describe("Simulation", func() {
	var (
		mockCtrl *gomock.Controller
		recorder *MockDataRecorder
		s        *Simulation
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		recorder = NewMockDataRecorder(mockCtrl)

		recorder.EXPECT().CreateTable(tracing.StepTable, gomock.Any())
		recorder.EXPECT().CreateTable(tracing.RunTable, gomock.Any())

		s = MakeBuilder().
			WithFrameCount(3).
			WithSeed(42).
			WithRecorder(recorder).
			Build()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should run a policy and record every step", func() {
		recorder.EXPECT().InsertData(tracing.StepTable, gomock.Any()).Times(20)
		recorder.EXPECT().InsertData(tracing.RunTable, gomock.Any())

		result := s.Run(replacement.LRU, classic)

		Expect(result.TotalPageFaults).To(Equal(12))
		Expect(s.FaultCounter().Faults(replacement.LRU)).To(Equal(uint64(12)))
		Expect(s.FaultCounter().Hits(replacement.LRU)).To(Equal(uint64(8)))
		Expect(s.FrameCount()).To(Equal(3))
		Expect(s.ID()).NotTo(BeEmpty())
		Expect(s.Monitor()).To(BeNil())
	})

	It("should compare all policies", func() {
		recorder.EXPECT().InsertData(tracing.StepTable, gomock.Any()).Times(140)
		recorder.EXPECT().InsertData(tracing.RunTable, gomock.Any()).Times(7)

		results := s.Compare(classic)

		Expect(results).To(HaveLen(7))
		Expect(results[0].TotalPageFaults).To(Equal(15))
		Expect(results[2].TotalPageFaults).To(Equal(9))
		Expect(s.FaultCounter().Policies()).To(Equal(replacement.Policies()))
	})

	It("should close the recorder on terminate", func() {
		recorder.EXPECT().Close().Return(nil)

		s.Terminate()
	})
})

var _ = Describe("Simulation with a seed", func() {
	It("should make the Random policy reproducible", func() {
		a := MakeBuilder().WithoutRecording().WithSeed(9).Build()
		b := MakeBuilder().WithoutRecording().WithSeed(9).Build()

		Expect(a.Run(replacement.Random, classic)).
			To(Equal(b.Run(replacement.Random, classic)))
	})
})

var _ = Describe("Simulation with a SQLite recorder", func() {
	It("should write steps that can be read back", func() {
		path := filepath.Join(GinkgoT().TempDir(), "sim.sqlite3")
		db, err := sql.Open("sqlite3", path)
		Expect(err).NotTo(HaveOccurred())

		s := MakeBuilder().
			WithFrameCount(3).
			WithRecorder(datarecording.NewWithDB(db)).
			Build()
		s.Run(replacement.FIFO, []int{1, 2, 3, 4, 1, 2, 5})
		s.DataRecorder().Flush()

		reader := datarecording.NewReader(path)
		defer reader.Close()
		reader.MapTable(tracing.RunTable, tracing.RunEntry{})
		reader.MapTable(tracing.StepTable, tracing.StepEntry{})

		runs, total, err := reader.Query(context.Background(), tracing.RunTable,
			datarecording.QueryParams{})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(1))
		Expect(runs[0].(*tracing.RunEntry).PageFaults).To(Equal(7))

		steps, _, err := reader.Query(context.Background(), tracing.StepTable,
			datarecording.QueryParams{OrderBy: "StepIndex"})
		Expect(err).NotTo(HaveOccurred())
		Expect(steps).To(HaveLen(7))
		Expect(steps[6].(*tracing.StepEntry).Frames).To(Equal("5,1,2"))

		s.Terminate()
	})
})

var _ = Describe("Simulation with monitoring", func() {
	It("should publish runs to the monitor", func() {
		s := MakeBuilder().WithoutRecording().WithMonitor().Build()
		defer s.Terminate()

		s.Compare([]int{1, 2, 3})

		Expect(s.Monitor()).NotTo(BeNil())
		Expect(s.Monitor().URL()).To(HavePrefix("http://localhost:"))
	})
})
