package bloomset

import "slices"

// gcd computes the greatest common divisor of two non-negative integers via
// the Euclidean algorithm. gcd(0, 0) is 0.
func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// gcdAll computes the gcd of a set of non-negative integers. Duplicates are
// ignored and the reduction short-circuits once the running gcd reaches 1,
// since no pair of positive integers can drive it lower. An empty or
// all-zero set yields 0.
func gcdAll(values []int) int {
	if len(values) == 0 {
		return 0
	}

	uniq := slices.Clone(values)
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)

	// All zero: Euclidean reduction would be a no-op chain of gcd(0, 0).
	if uniq[len(uniq)-1] == 0 {
		return 0
	}

	g := uniq[0]
	for _, v := range uniq[1:] {
		g = gcd(g, v)
		if g == 1 {
			break
		}
	}
	return g
}
