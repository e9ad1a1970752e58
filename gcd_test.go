package bloomset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGCDPairs(t *testing.T) {
	require.Equal(t, 6, gcd(54, 24))
	require.Equal(t, 1, gcd(17, 31))
	require.Equal(t, 5, gcd(0, 5))
	require.Equal(t, 5, gcd(5, 0))
	require.Equal(t, 0, gcd(0, 0))
}

func TestGCDAll(t *testing.T) {
	require.Equal(t, 0, gcdAll(nil))
	require.Equal(t, 0, gcdAll([]int{0, 0, 0}))
	require.Equal(t, 7, gcdAll([]int{7}))
	require.Equal(t, 4, gcdAll([]int{8, 12, 4}))
	require.Equal(t, 4, gcdAll([]int{8, 8, 12, 12, 4}))
	require.Equal(t, 1, gcdAll([]int{3, 5, 9}))
	// Zeros mixed with positive values do not disturb the reduction.
	require.Equal(t, 6, gcdAll([]int{0, 12, 18}))
}
