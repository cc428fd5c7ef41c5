package replacement

// fifoVictimFinder evicts frames in a round-robin order. The cursor only
// moves on eviction, so the initial fill does not advance it.
type fifoVictimFinder struct {
	noAnnotation

	frameCount int
	cursor     int
}

func newFIFOVictimFinder(frameCount int) *fifoVictimFinder {
	return &fifoVictimFinder{frameCount: frameCount}
}

func (f *fifoVictimFinder) FindVictim(_ FrameTable, _ int) int {
	victim := f.cursor
	f.cursor = (f.cursor + 1) % f.frameCount

	return victim
}
