package bloomset

// scheduler implements LVS-style weighted round-robin selection. The state
// pair (index, currentWeight) persists across calls so that consecutive
// selections smooth each weight's picks across the scheduling window instead
// of emitting them contiguously.
//
// A Collection owns one scheduler per instance; the state is read-modify-write
// and must not be shared across goroutines without external locking.
type scheduler struct {
	index         int
	currentWeight int
}

// newScheduler returns a scheduler in its initial state: no index selected
// yet and a zero current weight.
func newScheduler() scheduler {
	return scheduler{index: -1}
}

// next selects the next index for the given weight vector. It reports false
// when no candidate is eligible: the vector is empty or every weight is zero.
//
// Each full wrap of the index lowers currentWeight by the gcd of the weights,
// and an index is selected when its weight is at least currentWeight. The
// loop terminates within one weight-decrement cycle because currentWeight is
// restored to max(weights) whenever it reaches zero.
func (s *scheduler) next(weights []int) (int, bool) {
	n := len(weights)
	if n == 0 {
		return 0, false
	}

	for {
		s.index = (s.index + 1) % n
		if s.index == 0 {
			s.currentWeight -= gcdAll(weights)
			if s.currentWeight <= 0 {
				s.currentWeight = maxWeight(weights)
				if s.currentWeight == 0 {
					return 0, false
				}
			}
		}
		if weights[s.index] >= s.currentWeight {
			return s.index, true
		}
	}
}

func maxWeight(weights []int) int {
	m := 0
	for _, w := range weights {
		if w > m {
			m = w
		}
	}
	return m
}
