package bloomset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchedulerFairness(t *testing.T) {
	// Over one full cycle of weights [5,1,1], index 0 is selected five
	// times and indices 1 and 2 once each, with index 0's picks smoothed
	// to the front of the cycle rather than interleaved arbitrarily.
	s := newScheduler()
	weights := []int{5, 1, 1}

	var got []int
	for range 7 {
		idx, ok := s.next(weights)
		require.True(t, ok)
		got = append(got, idx)
	}
	require.Equal(t, []int{0, 0, 0, 0, 0, 1, 2}, got)
}

func TestSchedulerProportionality(t *testing.T) {
	s := newScheduler()
	weights := []int{4, 2, 2}

	counts := make([]int, 3)
	for range 80 {
		idx, ok := s.next(weights)
		require.True(t, ok)
		counts[idx]++
	}
	require.Equal(t, []int{40, 20, 20}, counts)
}

func TestSchedulerNoCandidates(t *testing.T) {
	s := newScheduler()

	_, ok := s.next(nil)
	require.False(t, ok)

	_, ok = s.next([]int{0, 0, 0})
	require.False(t, ok)

	// The scheduler recovers once a weight becomes positive.
	idx, ok := s.next([]int{0, 3, 0})
	require.True(t, ok)
	require.Equal(t, 1, idx)
}

func TestSchedulerStatePersists(t *testing.T) {
	s := newScheduler()
	weights := []int{1, 1}

	first, ok := s.next(weights)
	require.True(t, ok)
	second, ok := s.next(weights)
	require.True(t, ok)
	require.NotEqual(t, first, second, "equal weights must alternate")
}
