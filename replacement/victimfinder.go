package replacement

// A VictimFinder implements the policy-specific half of a simulation. It
// decides which frame to evict once every frame is occupied and keeps
// whatever bookkeeping the policy needs.
type VictimFinder interface {
	// FindVictim returns the slot to overwrite for the request at index.
	// It is only called when no frame is empty.
	FindVictim(frames FrameTable, index int) int

	// Touch is called after the request at index is resident in slot,
	// either because it hit or because it was just placed there.
	Touch(frames FrameTable, slot, index int, hit bool)

	// Annotate attaches a copy of the policy state to the step.
	Annotate(step *Step)
}

// noAnnotation provides the no-op bookkeeping of the stateless policies.
type noAnnotation struct{}

func (noAnnotation) Touch(FrameTable, int, int, bool) {}

func (noAnnotation) Annotate(*Step) {}

func newVictimFinder(
	p Policy,
	seq []int,
	frameCount int,
	rng RandSource,
) VictimFinder {
	switch p {
	case FIFO:
		return newFIFOVictimFinder(frameCount)
	case LRU:
		return newLRUVictimFinder()
	case Optimal:
		return newOptimalVictimFinder(seq)
	case SecondChance:
		return newSecondChanceVictimFinder(frameCount)
	case MRU:
		return newMRUVictimFinder()
	case Random:
		return newRandomVictimFinder(rng)
	case NFU:
		return newNFUVictimFinder()
	default:
		panic("unknown policy " + p.String())
	}
}
