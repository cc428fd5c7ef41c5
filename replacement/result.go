package replacement

// A Step records what happened when one request was processed.
type Step struct {
	Index     int        `json:"index"`
	Request   int        `json:"request"`
	Frames    FrameTable `json:"frames"`
	PageFault bool       `json:"pageFault"`

	// Slot is the frame written on a fault, -1 on a hit.
	Slot        int  `json:"slot"`
	EvictedPage int  `json:"evictedPage,omitempty"`
	HasEvicted  bool `json:"hasEvicted,omitempty"`

	// ReferenceCounter is the last-use index (LRU, MRU) or the use count
	// (NFU) of every page seen so far.
	ReferenceCounter map[int]int `json:"referenceCounter,omitempty"`

	// SecondChanceBits holds the reference bit of each slot.
	SecondChanceBits []bool `json:"secondChanceBits,omitempty"`
}

// A Result is the full trace of one policy over one request sequence.
type Result struct {
	Policy          Policy  `json:"policy"`
	FrameCount      int     `json:"frameCount"`
	PageSequence    []int   `json:"pageSequence"`
	Steps           []Step  `json:"steps"`
	TotalPageFaults int     `json:"totalPageFaults"`
	PageFaultRate   float64 `json:"pageFaultRate"`
}

// Hits returns the number of requests served without a fault.
func (r Result) Hits() int {
	return len(r.PageSequence) - r.TotalPageFaults
}

// HitRate returns Hits over the number of requests, or 0 for an empty run.
func (r Result) HitRate() float64 {
	if len(r.PageSequence) == 0 {
		return 0
	}

	return float64(r.Hits()) / float64(len(r.PageSequence))
}

func faultRate(faults, requests int) float64 {
	if requests == 0 {
		return 0
	}

	return float64(faults) / float64(requests)
}
