package replacement

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Compare", func() {
	seq := []int{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2, 1, 2, 0, 1, 7, 0, 1}

	It("should run every policy in order", func() {
		results := Compare(seq, 3, WithRandSource(NewSeededRandSource(7)))

		Expect(results).To(HaveLen(7))
		for i, p := range Policies() {
			Expect(results[i].Policy).To(Equal(p))
		}
	})

	It("should pick Optimal as the best policy", func() {
		results := Compare(seq, 3, WithRandSource(NewSeededRandSource(7)))

		best, ok := BestPolicy(results)

		Expect(ok).To(BeTrue())
		Expect(best).To(Equal(Optimal))
	})

	It("should break ties in favor of the earlier result", func() {
		results := Compare([]int{1, 2, 3}, 3)

		best, _ := BestPolicy(results)

		Expect(best).To(Equal(FIFO))
	})

	It("should report no best policy without results", func() {
		_, ok := BestPolicy(nil)

		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("BeladyAnomaly", func() {
	seq := []int{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}

	It("should compute the fault curve", func() {
		Expect(FaultCurve(FIFO, seq, 4)).To(Equal([]int{12, 12, 9, 10}))
	})

	It("should find the classic FIFO anomaly", func() {
		anomalies := BeladyAnomaly(FIFO, seq, 4)

		Expect(anomalies).To(Equal([]Anomaly{
			{Frames: 3, Faults: 9, NextFaults: 10},
		}))
	})

	It("should find no anomaly for LRU", func() {
		Expect(BeladyAnomaly(LRU, seq, 6)).To(BeEmpty())
	})

	It("should find anomalies in a given curve", func() {
		Expect(AnomaliesIn([]int{5, 6, 4, 7})).To(Equal([]Anomaly{
			{Frames: 1, Faults: 5, NextFaults: 6},
			{Frames: 3, Faults: 4, NextFaults: 7},
		}))
		Expect(AnomaliesIn(nil)).To(BeEmpty())
	})
})
