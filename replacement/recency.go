package replacement

import "maps"

// recencyVictimFinder tracks the index of the last reference to every page.
// LRU evicts the smallest, MRU the largest. Ties go to the lowest slot.
type recencyVictimFinder struct {
	lastUsed map[int]int
	better   func(candidate, current int) bool
}

func newLRUVictimFinder() *recencyVictimFinder {
	return &recencyVictimFinder{
		lastUsed: make(map[int]int),
		better:   func(candidate, current int) bool { return candidate < current },
	}
}

func newMRUVictimFinder() *recencyVictimFinder {
	return &recencyVictimFinder{
		lastUsed: make(map[int]int),
		better:   func(candidate, current int) bool { return candidate > current },
	}
}

func (f *recencyVictimFinder) FindVictim(frames FrameTable, _ int) int {
	return selectSlot(frames, f.lastUsed, f.better)
}

func (f *recencyVictimFinder) Touch(frames FrameTable, slot, index int, _ bool) {
	f.lastUsed[frames[slot].Page] = index
}

func (f *recencyVictimFinder) Annotate(step *Step) {
	step.ReferenceCounter = maps.Clone(f.lastUsed)
}

// selectSlot scans the frames in order and keeps the first slot whose metric
// no later slot beats.
func selectSlot(
	frames FrameTable,
	metric map[int]int,
	better func(candidate, current int) bool,
) int {
	victim := 0

	for i := 1; i < len(frames); i++ {
		if better(metric[frames[i].Page], metric[frames[victim].Page]) {
			victim = i
		}
	}

	return victim
}
