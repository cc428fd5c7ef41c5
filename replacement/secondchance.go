package replacement

import "slices"

// secondChanceVictimFinder implements the clock algorithm. A hit sets the
// reference bit of its slot. On eviction the hand sweeps forward, clearing
// set bits, and stops at the first clear one.
type secondChanceVictimFinder struct {
	bits []bool
	hand int
}

func newSecondChanceVictimFinder(frameCount int) *secondChanceVictimFinder {
	return &secondChanceVictimFinder{bits: make([]bool, frameCount)}
}

func (f *secondChanceVictimFinder) FindVictim(_ FrameTable, _ int) int {
	for {
		if f.bits[f.hand] {
			f.bits[f.hand] = false
			f.advance()

			continue
		}

		victim := f.hand
		f.advance()

		return victim
	}
}

func (f *secondChanceVictimFinder) advance() {
	f.hand = (f.hand + 1) % len(f.bits)
}

func (f *secondChanceVictimFinder) Touch(_ FrameTable, slot, _ int, hit bool) {
	f.bits[slot] = hit
}

func (f *secondChanceVictimFinder) Annotate(step *Step) {
	step.SecondChanceBits = slices.Clone(f.bits)
}
