// Copyright 2025 The parallel-algorithms Authors. SPDX-License-Identifier: Apache-2.0

package mergesort

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portscher/parallel-algorithms/forkjoin"
)

func makeRandomInt32s(n int, seed int64) []int32 {
	rng := rand.New(rand.NewSource(seed))
	arr := make([]int32, n)
	for i := range arr {
		arr[i] = rng.Int31n(1000) - 500
	}
	return arr
}

func sortedReference(arr []int32) []int32 {
	ref := make([]int32, len(arr))
	copy(ref, arr)
	sort.Slice(ref, func(i, j int) bool { return ref[i] < ref[j] })
	return ref
}

func TestSortScenarios(t *testing.T) {
	tests := []struct {
		name string
		arr  []int32
		want []int32
	}{
		{"empty", []int32{}, []int32{}},
		{"single element", []int32{5}, []int32{5}},
		{"three elements", []int32{3, 1, 2}, []int32{1, 2, 3}},
		{"reverse order", []int32{5, 4, 3, 2, 1}, []int32{1, 2, 3, 4, 5}},
		{"duplicates", []int32{2, 1, 2, 1}, []int32{1, 1, 2, 2}},
		{"already sorted", []int32{1, 2, 3, 4}, []int32{1, 2, 3, 4}},
		{"all equal", []int32{6, 6, 6}, []int32{6, 6, 6}},
		{"negative values", []int32{0, -3, 2, -1}, []int32{-3, -1, 0, 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, Sort(tc.arr))
			assert.Equal(t, tc.want, tc.arr)
			assert.True(t, IsSorted(tc.arr))
		})
	}
}

func TestSortNilSlice(t *testing.T) {
	require.NoError(t, Sort(nil))
	assert.True(t, IsSorted(nil))
}

func TestSortThresholdBoundary(t *testing.T) {
	pool := forkjoin.New(4)
	defer pool.Close()

	// Lengths straddling the cutoff exercise both the sequential and the
	// parallel branch of the driver.
	for _, threshold := range []int{2, 16, DefaultThreshold} {
		s := New(pool, WithThreshold(threshold))
		for _, n := range []int{threshold - 1, threshold, threshold + 1} {
			arr := makeRandomInt32s(n, int64(n))
			want := sortedReference(arr)

			require.NoError(t, s.Sort(arr))
			if diff := cmp.Diff(want, arr); diff != "" {
				t.Errorf("threshold %d, n %d: mismatch (-want +got):\n%s", threshold, n, diff)
			}
		}
	}
}

func TestSortIsPermutation(t *testing.T) {
	arr := makeRandomInt32s(10_000, 7)

	before := make(map[int32]int)
	for _, v := range arr {
		before[v]++
	}

	require.NoError(t, Sort(arr))

	after := make(map[int32]int)
	for _, v := range arr {
		after[v]++
	}
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("value multiset changed (-before +after):\n%s", diff)
	}
	assert.True(t, IsSorted(arr))
}

func TestSortIdempotent(t *testing.T) {
	arr := makeRandomInt32s(5000, 11)
	require.NoError(t, Sort(arr))

	want := make([]int32, len(arr))
	copy(want, arr)

	require.NoError(t, Sort(arr))
	assert.Equal(t, want, arr)
}

func TestSortMatchesStdlib(t *testing.T) {
	for _, n := range []int{1, 2, 3, 17, 1000, 4096, 100_000} {
		arr := makeRandomInt32s(n, int64(n)*31)
		want := sortedReference(arr)

		require.NoError(t, Sort(arr))
		if diff := cmp.Diff(want, arr); diff != "" {
			t.Errorf("n %d: mismatch (-want +got):\n%s", n, diff)
		}
	}
}

func TestSortStress(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	pool := forkjoin.New(0)
	defer pool.Close()

	// Low threshold on inputs well above it forces deep parallel recursion;
	// run under -race to check the fork/join barriers.
	s := New(pool, WithThreshold(500))
	for round := 0; round < 30; round++ {
		arr := makeRandomInt32s(50_000, int64(round))
		want := sortedReference(arr)

		require.NoError(t, s.Sort(arr))
		require.True(t, IsSorted(arr), "round %d produced unsorted output", round)
		if diff := cmp.Diff(want, arr); diff != "" {
			t.Fatalf("round %d: mismatch (-want +got):\n%s", round, diff)
		}
	}
}

func TestSorterConcurrentUse(t *testing.T) {
	pool := forkjoin.New(0)
	defer pool.Close()
	s := New(pool, WithThreshold(200))

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func(seed int64) {
			arr := makeRandomInt32s(10_000, seed)
			if err := s.Sort(arr); err != nil {
				done <- err
				return
			}
			if !IsSorted(arr) {
				done <- assert.AnError
				return
			}
			done <- nil
		}(int64(i))
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-done)
	}
}

func TestWithThreshold(t *testing.T) {
	pool := forkjoin.New(1)
	defer pool.Close()

	assert.Equal(t, DefaultThreshold, New(pool).Threshold())
	assert.Equal(t, 64, New(pool, WithThreshold(64)).Threshold())
	assert.Equal(t, DefaultThreshold, New(pool, WithThreshold(0)).Threshold())
	assert.Equal(t, DefaultThreshold, New(pool, WithThreshold(-5)).Threshold())
}

func TestIsSorted(t *testing.T) {
	assert.True(t, IsSorted([]int32{}))
	assert.True(t, IsSorted([]int32{1}))
	assert.True(t, IsSorted([]int32{1, 1, 2, 3}))
	assert.False(t, IsSorted([]int32{2, 1}))
	assert.False(t, IsSorted([]int32{1, 3, 2}))
}
