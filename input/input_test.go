package input

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseSequence", func() {
	DescribeTable("parsing",
		func(text string, expected []int) {
			Expect(ParseSequence(text)).To(Equal(expected))
		},
		Entry("spaces", "1 2 3 4 1 2 5", []int{1, 2, 3, 4, 1, 2, 5}),
		Entry("commas", "1,2,3", []int{1, 2, 3}),
		Entry("mixed separators", " 7, 0\t1\n2 ,, 0 ", []int{7, 0, 1, 2, 0}),
		Entry("non numeric tokens", "1 a 2 3.5 x4 3", []int{1, 2, 3}),
		Entry("negative numbers", "-1 2", []int{-1, 2}),
		Entry("nothing", "   ", []int{}),
	)
})

var _ = Describe("ParseStrict", func() {
	It("should return the sequence", func() {
		seq, err := ParseStrict("1 2 3")

		Expect(err).NotTo(HaveOccurred())
		Expect(seq).To(Equal([]int{1, 2, 3}))
	})

	It("should reject an empty sequence", func() {
		_, err := ParseStrict("a b c")

		Expect(err).To(MatchError(ErrEmptySequence))
	})

	It("should reject a sequence that is too long", func() {
		text := strings.Repeat("1 ", MaxRequests+1)

		_, err := ParseStrict(text)

		Expect(err).To(MatchError(ErrSequenceTooLong))
	})
})

var _ = Describe("Frame count", func() {
	It("should validate", func() {
		Expect(ValidateFrameCount(1)).To(Succeed())
		Expect(ValidateFrameCount(0)).To(MatchError(ErrInvalidFrameCount))
		Expect(ValidateFrameCount(-2)).To(MatchError(ErrInvalidFrameCount))
	})

	It("should clamp", func() {
		Expect(ClampFrameCount(0)).To(Equal(1))
		Expect(ClampFrameCount(5)).To(Equal(5))
		Expect(ClampFrameCount(42)).To(Equal(10))
	})

	It("should parse", func() {
		n, err := ParseFrameCount(" 4 ")
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(4))

		_, err = ParseFrameCount("four")
		Expect(err).To(MatchError(ErrInvalidFrameCount))

		_, err = ParseFrameCount("0")
		Expect(err).To(MatchError(ErrInvalidFrameCount))
	})
})
