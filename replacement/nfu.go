package replacement

import "maps"

// nfuVictimFinder counts every reference to a page over the whole run and
// evicts the page with the smallest count. Counters are never aged.
type nfuVictimFinder struct {
	useCount map[int]int
}

func newNFUVictimFinder() *nfuVictimFinder {
	return &nfuVictimFinder{useCount: make(map[int]int)}
}

func (f *nfuVictimFinder) FindVictim(frames FrameTable, _ int) int {
	return selectSlot(frames, f.useCount, func(candidate, current int) bool {
		return candidate < current
	})
}

func (f *nfuVictimFinder) Touch(frames FrameTable, slot, _ int, _ bool) {
	f.useCount[frames[slot].Page]++
}

func (f *nfuVictimFinder) Annotate(step *Step) {
	step.ReferenceCounter = maps.Clone(f.useCount)
}
