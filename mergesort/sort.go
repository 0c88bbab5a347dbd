// Copyright 2025 The parallel-algorithms Authors. SPDX-License-Identifier: Apache-2.0

// Package mergesort implements a parallel divide-and-conquer merge sort for
// int32 slices. Sub-ranges are split recursively; once a sub-range is large
// enough the two halves are sorted as concurrent fork/join tasks and merged
// with a parallel merge, below that everything runs sequentially to avoid
// paying scheduling overhead on work that is cheaper than a fork.
package mergesort

import (
	"github.com/portscher/parallel-algorithms/forkjoin"
)

// DefaultThreshold is the sub-range size at which sorting switches from the
// sequential to the parallel path. The value was found empirically: below
// it, task scheduling costs more than the parallelism saves.
const DefaultThreshold = 2000

// Option configures a Sorter.
type Option func(*Sorter)

// WithThreshold overrides the parallel cutoff. Values < 1 are ignored.
func WithThreshold(n int) Option {
	return func(s *Sorter) {
		if n > 0 {
			s.threshold = n
		}
	}
}

// Sorter sorts int32 slices in place using a fork/join pool. A Sorter is
// safe for concurrent use by multiple goroutines as long as the slices being
// sorted do not overlap.
type Sorter struct {
	pool      *forkjoin.Pool
	threshold int
}

// New creates a Sorter running its parallel work on pool.
func New(pool *forkjoin.Pool, opts ...Option) *Sorter {
	s := &Sorter{
		pool:      pool,
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Threshold returns the sub-range size at which the parallel path kicks in.
func (s *Sorter) Threshold() int {
	return s.threshold
}

// Sort rearranges arr in place into non-decreasing order. It returns only
// once the whole slice is sorted; any failed sub-task aborts the sort and
// surfaces here as a non-nil error.
func (s *Sorter) Sort(arr []int32) error {
	if len(arr) < 2 {
		return nil
	}
	return s.sortRange(arr, 0, len(arr)-1)
}

// sortRange sorts the inclusive range arr[left..right]. The two halves of a
// split cover disjoint index ranges, so concurrent recursive calls never
// write to the same element.
func (s *Sorter) sortRange(arr []int32, left, right int) error {
	if left >= right {
		return nil
	}

	size := right - left
	mid := left + size/2

	if size < s.threshold {
		if err := s.sortRange(arr, left, mid); err != nil {
			return err
		}
		if err := s.sortRange(arr, mid+1, right); err != nil {
			return err
		}
		mergeSequential(arr, left, mid, right)
		return nil
	}

	g := s.pool.NewGroup()
	g.Fork(func() error { return s.sortRange(arr, left, mid) })
	g.Fork(func() error { return s.sortRange(arr, mid+1, right) })
	if err := g.Join(); err != nil {
		return err
	}

	return s.mergeParallel(arr, left, mid, right)
}

// Sort is a convenience wrapper that sorts arr with a one-shot pool sized to
// the available parallelism and the default threshold.
func Sort(arr []int32) error {
	pool := forkjoin.New(0)
	defer pool.Close()
	return New(pool).Sort(arr)
}

// IsSorted reports whether arr is in non-decreasing order.
func IsSorted(arr []int32) bool {
	for i := 1; i < len(arr); i++ {
		if arr[i] < arr[i-1] {
			return false
		}
	}
	return true
}
