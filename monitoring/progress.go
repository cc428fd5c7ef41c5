package monitoring

import (
	"encoding/json"
	"sync"
	"time"
)

// A ProgressBar tracks how many runs of a batch have finished.
type ProgressBar struct {
	mu         sync.Mutex
	ID         string
	Name       string
	StartTime  time.Time
	Total      uint64
	Finished   uint64
	InProgress uint64
}

type progressBarJSON struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

// MarshalJSON encodes a consistent view of the bar.
func (b *ProgressBar) MarshalJSON() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return json.Marshal(progressBarJSON{
		ID:         b.ID,
		Name:       b.Name,
		StartTime:  b.StartTime,
		Total:      b.Total,
		Finished:   b.Finished,
		InProgress: b.InProgress,
	})
}

// IncrementInProgress adds the number of in-progress runs.
func (b *ProgressBar) IncrementInProgress(amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.InProgress += amount
}

// IncrementFinished adds a certain amount to finished runs.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Finished += amount
}

// MoveInProgressToFinished reduces the number of in progress runs by a
// certain amount and increases the finished runs by the same amount.
func (b *ProgressBar) MoveInProgressToFinished(amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.InProgress -= amount
	b.Finished += amount
}

// Done reports whether every run has finished.
func (b *ProgressBar) Done() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.Finished >= b.Total
}
