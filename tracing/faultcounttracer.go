package tracing

import (
	"slices"
	"sync"

	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/sim"
)

// FaultCountTracer counts page faults and hits per policy.
type FaultCountTracer struct {
	lock   sync.Mutex
	faults map[replacement.Policy]uint64
	hits   map[replacement.Policy]uint64
}

// NewFaultCountTracer creates a new FaultCountTracer.
func NewFaultCountTracer() *FaultCountTracer {
	return &FaultCountTracer{
		faults: make(map[replacement.Policy]uint64),
		hits:   make(map[replacement.Policy]uint64),
	}
}

// Func counts the step carried by the hook context.
func (t *FaultCountTracer) Func(ctx sim.HookCtx) {
	step, info, ok := stepOf(ctx)
	if !ok {
		return
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	if step.PageFault {
		t.faults[info.Policy]++
		return
	}

	t.hits[info.Policy]++
}

// Faults returns the number of page faults seen for a policy.
func (t *FaultCountTracer) Faults(p replacement.Policy) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.faults[p]
}

// Hits returns the number of hits seen for a policy.
func (t *FaultCountTracer) Hits(p replacement.Policy) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.hits[p]
}

// Policies returns the policies that have been observed, in declaration
// order.
func (t *FaultCountTracer) Policies() []replacement.Policy {
	t.lock.Lock()
	defer t.lock.Unlock()

	policies := make([]replacement.Policy, 0, len(t.faults))
	for p := range t.faults {
		policies = append(policies, p)
	}

	for p := range t.hits {
		if _, ok := t.faults[p]; !ok {
			policies = append(policies, p)
		}
	}

	slices.Sort(policies)

	return policies
}

// Reset clears all counters.
func (t *FaultCountTracer) Reset() {
	t.lock.Lock()
	defer t.lock.Unlock()

	clear(t.faults)
	clear(t.hits)
}
