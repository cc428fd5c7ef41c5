package replacement

import "math"

// optimalVictimFinder evicts the resident page whose next use lies farthest
// in the future. Pages that are never used again count as infinitely far.
type optimalVictimFinder struct {
	noAnnotation

	seq []int
}

func newOptimalVictimFinder(seq []int) *optimalVictimFinder {
	return &optimalVictimFinder{seq: seq}
}

func (f *optimalVictimFinder) FindVictim(frames FrameTable, index int) int {
	nextUse := make(map[int]int, len(frames))
	for _, frame := range frames {
		nextUse[frame.Page] = math.MaxInt
	}

	remaining := len(frames)
	for i := index + 1; i < len(f.seq) && remaining > 0; i++ {
		if next, ok := nextUse[f.seq[i]]; ok && next == math.MaxInt {
			nextUse[f.seq[i]] = i
			remaining--
		}
	}

	return selectSlot(frames, nextUse, func(candidate, current int) bool {
		return candidate > current
	})
}
