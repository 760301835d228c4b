package model

import "fmt"

// Range is an inclusive, contiguous block range.
type Range struct {
	Start uint64
	End   uint64
}

// NewRange returns the range [start, min(limit, start+size-1)].
func NewRange(start, limit, size uint64) Range {
	if size == 0 {
		size = 1
	}
	end := start + size - 1
	if end < start || end > limit {
		end = limit
	}
	return Range{Start: start, End: end}
}

// Len is the number of blocks in the range; zero for an inverted range.
func (r Range) Len() uint64 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Numbers lists every block number of the range in ascending order.
func (r Range) Numbers() []uint64 {
	n := r.Len()
	numbers := make([]uint64, 0, n)
	for i := uint64(0); i < n; i++ {
		numbers = append(numbers, r.Start+i)
	}
	return numbers
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}
