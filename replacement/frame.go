package replacement

import (
	"fmt"
	"strconv"
	"strings"
)

// A Frame is one slot of physical memory. It either holds a page or is empty.
type Frame struct {
	Page     int
	Occupied bool
}

// MarshalJSON encodes an empty frame as null and an occupied frame as its
// page number.
func (f Frame) MarshalJSON() ([]byte, error) {
	if !f.Occupied {
		return []byte("null"), nil
	}

	return []byte(strconv.Itoa(f.Page)), nil
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (f *Frame) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Frame{}
		return nil
	}

	page, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("invalid frame %s: %w", data, err)
	}

	*f = Frame{Page: page, Occupied: true}

	return nil
}

// A FrameTable is the ordered, fixed-length list of frames a simulation runs
// against.
type FrameTable []Frame

// NewFrameTable creates a frame table with frameCount empty frames.
func NewFrameTable(frameCount int) FrameTable {
	frameCountMustBePositive(frameCount)

	return make(FrameTable, frameCount)
}

func frameCountMustBePositive(frameCount int) {
	if frameCount <= 0 {
		panic("frame count must be positive")
	}
}

// IndexOf returns the slot that holds the page, or -1.
func (t FrameTable) IndexOf(page int) int {
	for i, f := range t {
		if f.Occupied && f.Page == page {
			return i
		}
	}

	return -1
}

// FirstEmpty returns the lowest-indexed empty slot, or -1 if the table is
// full.
func (t FrameTable) FirstEmpty() int {
	for i, f := range t {
		if !f.Occupied {
			return i
		}
	}

	return -1
}

// Snapshot returns an independent copy of the table.
func (t FrameTable) Snapshot() FrameTable {
	s := make(FrameTable, len(t))
	copy(s, t)

	return s
}

// Pages returns the resident pages in slot order.
func (t FrameTable) Pages() []int {
	pages := make([]int, 0, len(t))
	for _, f := range t {
		if f.Occupied {
			pages = append(pages, f.Page)
		}
	}

	return pages
}

// String renders the table as "[1 2 _]".
func (t FrameTable) String() string {
	parts := make([]string, len(t))
	for i, f := range t {
		if f.Occupied {
			parts[i] = strconv.Itoa(f.Page)
		} else {
			parts[i] = "_"
		}
	}

	return "[" + strings.Join(parts, " ") + "]"
}
