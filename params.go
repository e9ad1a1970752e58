package bloomset

import "math"

const (
	// ln2 is the natural logarithm of 2.
	ln2 = 0.6931471805599453
	// ln2Squared is ln(2)^2.
	ln2Squared = 0.4804530139182014
)

// OptimalSize returns the number of bits a filter needs to hold items
// elements at the given target false-positive probability:
//
//	m = -n * ln(p) / ln(2)^2
//
// rounded up to a whole bit. The probability must lie strictly between 0
// and 1: the formula is undefined at the endpoints, which are reported as
// ErrDegenerateProbability rather than ErrProbabilityRange.
func OptimalSize(probability float64, items int) (uint, error) {
	if items < 0 {
		return 0, ErrItemsRange
	}
	if err := checkProbability(probability); err != nil {
		return 0, err
	}
	if probability == 0 || probability == 1 {
		return 0, ErrDegenerateProbability
	}
	bits := math.Ceil(-(float64(items) * math.Log(probability)) / ln2Squared)
	return uint(bits), nil
}

// OptimalHashCount returns the number of hash functions that minimizes the
// false-positive probability for a filter of the given size holding items
// elements:
//
//	k = max((m/n) * ln(2), 1)
//
// rounded to the nearest whole function.
func OptimalHashCount(size uint, items int) (int, error) {
	if items < 0 {
		return 0, ErrItemsRange
	}
	if items == 0 {
		// Any k is optimal for an empty set; the lower clamp applies.
		return 1, nil
	}
	k := int(math.Round(float64(size) / float64(items) * ln2))
	if k < 1 {
		k = 1
	}
	return k, nil
}

// EstimateCapacity returns how many elements the filter can hold before its
// false-positive probability reaches the given value:
//
//	n = -m * ln(2)^2 / ln(p)
//
// A probability of 1 yields +Inf (the filter never exceeds it) and 0 yields
// zero (no number of inserts keeps the probability at exactly zero).
func (f *Filter) EstimateCapacity(probability float64) (float64, error) {
	if err := checkProbability(probability); err != nil {
		return 0, err
	}
	switch probability {
	case 0:
		return 0, nil
	case 1:
		return math.Inf(1), nil
	}
	return -(float64(f.size) * ln2Squared) / math.Log(probability), nil
}

// EstimateFillRate returns the fraction of the filter's estimated capacity
// at the given probability that has been consumed by inserts. It is zero for
// a filter with no inserts.
func (f *Filter) EstimateFillRate(probability float64) (float64, error) {
	if f.inserts == 0 {
		return 0, nil
	}
	capacity, err := f.EstimateCapacity(probability)
	if err != nil {
		return 0, err
	}
	if math.IsInf(capacity, 1) {
		return 0, nil
	}
	return float64(f.inserts) / capacity, nil
}

// falsePositiveProbability computes (1 - e^(-k*n/m))^k.
func falsePositiveProbability(k int, inserts uint64, size uint) float64 {
	if inserts == 0 {
		return 0
	}
	kf := float64(k)
	return math.Pow(1-math.Exp(-kf*float64(inserts)/float64(size)), kf)
}

func checkProbability(probability float64) error {
	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		return ErrProbabilityRange
	}
	return nil
}
