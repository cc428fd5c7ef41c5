package replacement

import (
	"math/rand/v2"
)

// A RandSource produces the random numbers used by the Random policy.
type RandSource interface {
	// Intn returns a uniformly distributed number in [0, n).
	Intn(n int) int
}

// NewRandSource returns a RandSource that is seeded by the runtime.
func NewRandSource() RandSource {
	return globalRandSource{}
}

// NewSeededRandSource returns a reproducible RandSource.
func NewSeededRandSource(seed uint64) RandSource {
	return &pcgRandSource{
		r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

type globalRandSource struct{}

func (globalRandSource) Intn(n int) int {
	return rand.IntN(n)
}

type pcgRandSource struct {
	r *rand.Rand
}

func (s *pcgRandSource) Intn(n int) int {
	return s.r.IntN(n)
}

// randomVictimFinder evicts a uniformly random slot.
type randomVictimFinder struct {
	noAnnotation

	rng RandSource
}

func newRandomVictimFinder(rng RandSource) *randomVictimFinder {
	if rng == nil {
		rng = NewRandSource()
	}

	return &randomVictimFinder{rng: rng}
}

func (f *randomVictimFinder) FindVictim(frames FrameTable, _ int) int {
	victim := f.rng.Intn(len(frames))
	if victim < 0 || victim >= len(frames) {
		panic("random source returned an out of range slot")
	}

	return victim
}
