package replacement

import (
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pagesim/sim"
)

func randomSequence(r *rand.Rand, length, pages int) []int {
	seq := make([]int, length)
	for i := range seq {
		seq[i] = r.IntN(pages)
	}

	return seq
}

func distinctPages(t FrameTable) bool {
	seen := make(map[int]bool)
	for _, p := range t.Pages() {
		if seen[p] {
			return false
		}
		seen[p] = true
	}

	return true
}

var _ = Describe("Simulate", func() {
	It("should panic on a non-positive frame count", func() {
		for _, p := range Policies() {
			Expect(func() { Simulate(p, []int{1}, 0) }).To(Panic())
			Expect(func() { Simulate(p, []int{1}, -3) }).To(Panic())
		}
	})

	It("should produce an empty trace for an empty sequence", func() {
		for _, p := range Policies() {
			r := Simulate(p, nil, 3)

			Expect(r.Steps).To(BeEmpty())
			Expect(r.TotalPageFaults).To(Equal(0))
			Expect(r.PageFaultRate).To(Equal(0.0))
			Expect(r.HitRate()).To(Equal(0.0))
		}
	})

	It("should copy the request sequence", func() {
		seq := []int{1, 2, 3}

		r := SimulateFIFO(seq, 2)
		seq[0] = 9

		Expect(r.PageSequence).To(Equal([]int{1, 2, 3}))
	})

	It("should snapshot frames independently", func() {
		r := SimulateLRU([]int{1, 2, 3}, 3)

		r.Steps[0].Frames[0].Page = 42

		Expect(r.Steps[1].Frames[0].Page).To(Equal(1))
		Expect(r.Steps[2].Frames[0].Page).To(Equal(1))
	})

	It("should report the policy and frame count", func() {
		r := Simulate(NFU, []int{1}, 4)

		Expect(r.Policy).To(Equal(NFU))
		Expect(r.FrameCount).To(Equal(4))
	})

	It("should count hits", func() {
		r := SimulateLRU([]int{1, 1, 1, 2}, 2)

		Expect(r.Hits()).To(Equal(2))
		Expect(r.HitRate()).To(BeNumerically("~", 0.5))
		Expect(r.PageFaultRate).To(BeNumerically("~", 0.5))
	})

	It("should accept negative page numbers", func() {
		r := SimulateFIFO([]int{-1, 0, -1}, 2)

		Expect(r.TotalPageFaults).To(Equal(2))
		Expect(r.Steps[2].Frames.String()).To(Equal("[-1 0]"))
	})

	Context("with hooks", func() {
		var (
			steps   []Step
			results []Result
			infos   []RunInfo
			hook    sim.Hook
		)

		BeforeEach(func() {
			steps = nil
			results = nil
			infos = nil

			hook = sim.HookFunc(func(ctx sim.HookCtx) {
				infos = append(infos, ctx.Detail.(RunInfo))

				switch ctx.Pos {
				case HookPosStep:
					steps = append(steps, ctx.Item.(Step))
				case HookPosResult:
					results = append(results, ctx.Item.(Result))
				}
			})
		})

		It("should invoke the hook once per step and once per result", func() {
			r := Simulate(LRU, []int{1, 2, 1}, 2,
				WithHooks(hook), WithRunID("run-1"))

			Expect(steps).To(Equal(r.Steps))
			Expect(results).To(HaveLen(1))
			Expect(results[0].TotalPageFaults).To(Equal(r.TotalPageFaults))
			Expect(infos).To(HaveLen(4))
			Expect(infos[0]).To(Equal(RunInfo{
				RunID:      "run-1",
				Policy:     LRU,
				FrameCount: 2,
			}))
		})

		It("should invoke the result hook for an empty run", func() {
			Simulate(FIFO, nil, 1, WithHooks(hook))

			Expect(steps).To(BeEmpty())
			Expect(results).To(HaveLen(1))
		})
	})
})

var _ = Describe("Invariants", func() {
	var r *rand.Rand

	BeforeEach(func() {
		r = rand.New(rand.NewPCG(1, 2))
	})

	It("should hold for every policy", func() {
		for trial := 0; trial < 50; trial++ {
			seq := randomSequence(r, 1+r.IntN(60), 1+r.IntN(9))
			frameCount := 1 + r.IntN(6)

			results := Compare(seq, frameCount,
				WithRandSource(NewSeededRandSource(uint64(trial))))

			for _, res := range results {
				Expect(res.Steps).To(HaveLen(len(seq)))

				faults := 0
				for i, step := range res.Steps {
					Expect(step.Index).To(Equal(i))
					Expect(step.Request).To(Equal(seq[i]))
					Expect(step.Frames).To(HaveLen(frameCount))
					Expect(distinctPages(step.Frames)).To(BeTrue())
					Expect(step.Frames.IndexOf(step.Request)).NotTo(Equal(-1))

					if step.PageFault {
						faults++
						Expect(step.Frames[step.Slot].Page).To(Equal(step.Request))
					} else {
						Expect(step.Slot).To(Equal(-1))
						Expect(step.HasEvicted).To(BeFalse())
					}
				}

				Expect(res.TotalPageFaults).To(Equal(faults))
				Expect(res.TotalPageFaults).To(BeNumerically("<=", len(seq)))
				Expect(res.PageFaultRate).To(
					BeNumerically("~", float64(faults)/float64(len(seq)), 1e-12))
			}
		}
	})

	It("should never let Optimal fault more than another policy", func() {
		for trial := 0; trial < 50; trial++ {
			seq := randomSequence(r, 1+r.IntN(80), 1+r.IntN(10))
			frameCount := 1 + r.IntN(5)

			optimal := SimulateOptimal(seq, frameCount).TotalPageFaults
			results := Compare(seq, frameCount,
				WithRandSource(NewSeededRandSource(uint64(trial))))

			for _, res := range results {
				Expect(optimal).To(BeNumerically("<=", res.TotalPageFaults),
					"policy %s on %v with %d frames", res.Policy, seq, frameCount)
			}
		}
	})

	It("should be deterministic for every policy but Random", func() {
		seq := randomSequence(r, 100, 8)

		for _, p := range Policies() {
			if p == Random {
				continue
			}

			Expect(Simulate(p, seq, 4)).To(Equal(Simulate(p, seq, 4)))
		}
	})

	It("should fill empty frames identically across policies", func() {
		seq := randomSequence(r, 40, 12)
		frameCount := 5

		results := Compare(seq, frameCount)
		reference := results[0]

		for i, step := range reference.Steps {
			if step.HasEvicted {
				break
			}

			for _, res := range results[1:] {
				Expect(res.Steps[i].Frames).To(Equal(step.Frames))
			}
		}
	})

	It("should only set second chance bits of pages hit since last clear", func() {
		seq := randomSequence(r, 100, 6)

		res := SimulateSecondChance(seq, 3)
		for i, step := range res.Steps {
			for slot, bit := range step.SecondChanceBits {
				if !bit {
					continue
				}

				Expect(step.Frames[slot].Occupied).To(BeTrue())
				if i == 0 {
					Fail("no bit can be set on the first request")
				}
			}

			if !step.PageFault {
				slot := step.Frames.IndexOf(step.Request)
				Expect(step.SecondChanceBits[slot]).To(BeTrue())
			}
		}
	})
})
