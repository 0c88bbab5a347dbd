// Copyright 2025 The parallel-algorithms Authors. SPDX-License-Identifier: Apache-2.0

package mergesort

// mergeSequential merges the two sorted runs arr[left..mid] and
// arr[mid+1..right] in place. Both runs are copied out into temporaries
// first, then interleaved back starting at left.
func mergeSequential(arr []int32, left, mid, right int) {
	l := make([]int32, mid-left+1)
	r := make([]int32, right-mid)
	copy(l, arr[left:mid+1])
	copy(r, arr[mid+1:right+1])

	interleave(arr, l, r, left)
}

// mergeParallel is mergeSequential with the two copy-out phases running as
// concurrent tasks. The runs being copied are disjoint, as are the
// destination temporaries, so the two copies never touch shared state. The
// interleave phase stays single-threaded: each output write depends on the
// previous comparison and run-pointer state, so parallelizing it would take
// a different algorithm (merge by rank/partition), which this design
// deliberately does not attempt.
func (s *Sorter) mergeParallel(arr []int32, left, mid, right int) error {
	l := make([]int32, mid-left+1)
	r := make([]int32, right-mid)

	g := s.pool.NewGroup()
	g.Fork(func() error {
		copy(l, arr[left:mid+1])
		return nil
	})
	g.Fork(func() error {
		copy(r, arr[mid+1:right+1])
		return nil
	})
	// The interleave reads both temporaries from index 0, so it must not
	// start before both copies have completed.
	if err := g.Join(); err != nil {
		return err
	}

	interleave(arr, l, r, left)
	return nil
}

// interleave writes the merge of runs l and r into arr starting at index k.
// Ties go to l, so on equal keys the left run's element lands first.
func interleave(arr, l, r []int32, k int) {
	i, j := 0, 0
	for i < len(l) && j < len(r) {
		if l[i] <= r[j] {
			arr[k] = l[i]
			i++
		} else {
			arr[k] = r[j]
			j++
		}
		k++
	}
	for i < len(l) {
		arr[k] = l[i]
		i++
		k++
	}
	for j < len(r) {
		arr[k] = r[j]
		j++
		k++
	}
}
