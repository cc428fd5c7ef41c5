// Package input turns user supplied text into simulation parameters.
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Limits applied to user input.
const (
	MinFrames   = 1
	MaxFrames   = 10
	MaxRequests = 10000
)

// Errors returned when the input cannot be simulated.
var (
	ErrEmptySequence     = errors.New("page sequence contains no page numbers")
	ErrSequenceTooLong   = errors.New("page sequence is too long")
	ErrInvalidFrameCount = errors.New("frame count must be at least 1")
)

// ParseSequence splits text on whitespace and commas and returns every token
// that is an integer. Other tokens are dropped.
func ParseSequence(text string) []int {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	seq := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			continue
		}

		seq = append(seq, n)
	}

	return seq
}

// ParseStrict parses text like ParseSequence and also rejects sequences that
// are empty or longer than MaxRequests.
func ParseStrict(text string) ([]int, error) {
	seq := ParseSequence(text)

	if len(seq) == 0 {
		return nil, ErrEmptySequence
	}

	if len(seq) > MaxRequests {
		return nil, fmt.Errorf("%w: %d requests, at most %d allowed",
			ErrSequenceTooLong, len(seq), MaxRequests)
	}

	return seq, nil
}

// ValidateFrameCount checks that n frames can be simulated.
func ValidateFrameCount(n int) error {
	if n < MinFrames {
		return fmt.Errorf("%w, got %d", ErrInvalidFrameCount, n)
	}

	return nil
}

// ClampFrameCount limits n to [MinFrames, MaxFrames].
func ClampFrameCount(n int) int {
	return min(max(n, MinFrames), MaxFrames)
}

// ParseFrameCount parses a frame count and validates it.
func ParseFrameCount(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidFrameCount, text)
	}

	if err := ValidateFrameCount(n); err != nil {
		return 0, err
	}

	return n, nil
}
