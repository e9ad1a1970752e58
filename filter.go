package bloomset

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Interface is the capability contract shared by Filter, Collection, and
// ScalableCollection. Add returns the filter that ultimately handled the
// insert, which for composites is the leaf Filter the item landed in.
type Interface interface {
	Add(item []byte) (Interface, error)
	Has(item []byte) bool
	IsFull() bool
	Count() uint64
	FalsePositiveProbability() float64
}

// Filter is a fixed-size bloom filter: a bit array plus an ordered list of
// hash algorithms. Each algorithm contributes one bit position per item.
// Bits only ever flip from unset to set; there is no removal.
//
// Filter is not safe for concurrent use. See the package documentation for
// the recommended locking discipline.
type Filter struct {
	size       uint
	algorithms []Algorithm
	bits       *bitset.BitSet
	inserts    uint64
}

var _ Interface = (*Filter)(nil)

// NewFilter creates a filter with the given number of bits and hash
// algorithm list. The size must be positive and every algorithm must be in
// the registry; the list's order is preserved and significant (it defines
// the order in which bit positions are derived, and Union/Intersect require
// it to match exactly).
func NewFilter(size uint, algorithms []Algorithm) (*Filter, error) {
	if size == 0 {
		return nil, ErrInvalidSize
	}
	if len(algorithms) == 0 {
		return nil, ErrNoAlgorithms
	}
	for _, a := range algorithms {
		if !a.Supported() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, a)
		}
	}
	return &Filter{
		size:       size,
		algorithms: slices.Clone(algorithms),
		bits:       bitset.New(size),
	}, nil
}

// NewOptimalFilter creates a filter sized for the expected number of items
// at the target false-positive probability, using OptimalSize and
// OptimalHashCount and a random selection of distinct registry algorithms.
// The hash count is clamped to the registry size.
func NewOptimalFilter(probability float64, items int) (*Filter, error) {
	size, err := OptimalSize(probability, items)
	if err != nil {
		return nil, err
	}
	k, err := OptimalHashCount(size, items)
	if err != nil {
		return nil, err
	}
	if k > len(allAlgorithms) {
		k = len(allAlgorithms)
	}

	algorithms := make([]Algorithm, 0, k)
	for _, i := range rand.Perm(len(allAlgorithms))[:k] {
		algorithms = append(algorithms, allAlgorithms[i])
	}
	return NewFilter(size, algorithms)
}

// Size returns the number of bits in the filter.
func (f *Filter) Size() uint {
	return f.size
}

// Algorithms returns the filter's hash algorithm list in derivation order.
func (f *Filter) Algorithms() []Algorithm {
	return slices.Clone(f.algorithms)
}

// Count returns the number of Add calls made against the filter. Duplicate
// inserts count; this is not a distinct-element count.
func (f *Filter) Count() uint64 {
	return f.inserts
}

// positions derives one bit position per configured algorithm, in list
// order: the algorithm's digest of the item is folded to a fixed-width
// checksum and reduced modulo the filter size. The derivation is pure, so
// recomputing it for the same item always yields the same sequence.
func (f *Filter) positions(item []byte) []uint {
	out := make([]uint, len(f.algorithms))
	for i, a := range f.algorithms {
		out[i] = uint(foldDigest(a.digest(item))) % f.size
	}
	return out
}

// Add inserts an item, setting one bit per configured algorithm. Bits
// already set stay set; the insert counter increments either way. The
// returned Interface is the filter itself.
func (f *Filter) Add(item []byte) (Interface, error) {
	for _, pos := range f.positions(item) {
		f.bits.Set(pos)
	}
	f.inserts++
	return f, nil
}

// AddString inserts a string item.
func (f *Filter) AddString(item string) (Interface, error) {
	return f.Add([]byte(item))
}

// Has reports whether the item might be in the set. A false result is
// definitive; a true result may be a false positive, but never a false
// negative for an item previously added.
func (f *Filter) Has(item []byte) bool {
	for _, pos := range f.positions(item) {
		if !f.bits.Test(pos) {
			return false
		}
	}
	return true
}

// HasString reports whether the string item might be in the set.
func (f *Filter) HasString(item string) bool {
	return f.Has([]byte(item))
}

// DistanceWith returns how many of the item's bit positions are currently
// unset. Zero means the item is a member or a false positive; larger values
// mean the item is further from (apparent) membership.
func (f *Filter) DistanceWith(item []byte) int {
	distance := 0
	for _, pos := range f.positions(item) {
		if !f.bits.Test(pos) {
			distance++
		}
	}
	return distance
}

// IsFull reports whether every bit in the filter is set. A full filter
// answers true for every item and is useless for further inserts.
func (f *Filter) IsFull() bool {
	return f.bits.All()
}

// FillRatio returns the exact proportion of bits currently set.
func (f *Filter) FillRatio() float64 {
	return float64(f.bits.Count()) / float64(f.size)
}

// FalsePositiveProbability returns the filter's current false-positive
// probability, (1 - e^(-k*n/m))^k, where k is the number of hash
// algorithms, n the insert count, and m the size in bits.
func (f *Filter) FalsePositiveProbability() float64 {
	return falsePositiveProbability(len(f.algorithms), f.inserts, f.size)
}

// compatible reports whether two filters agree on size and on the hash
// algorithm list, including its order.
func (f *Filter) compatible(other *Filter) bool {
	return f.size == other.size && slices.Equal(f.algorithms, other.algorithms)
}

// Union returns a new filter whose bit array is the bitwise OR of the two
// operands. Both filters must have identical size and algorithm lists. The
// result's insert count is reset to zero: counts are not meaningfully
// summable across set operations, so the merged filter's derived
// false-positive probability reads zero until new inserts occur.
func (f *Filter) Union(other *Filter) (*Filter, error) {
	if !f.compatible(other) {
		return nil, fmt.Errorf("%w: union requires identical size and algorithms", ErrIncompatibleFilters)
	}
	return &Filter{
		size:       f.size,
		algorithms: slices.Clone(f.algorithms),
		bits:       f.bits.Union(other.bits),
	}, nil
}

// Intersect returns a new filter whose bit array is the bitwise AND of the
// two operands, under the same compatibility and insert-count rules as
// Union.
func (f *Filter) Intersect(other *Filter) (*Filter, error) {
	if !f.compatible(other) {
		return nil, fmt.Errorf("%w: intersect requires identical size and algorithms", ErrIncompatibleFilters)
	}
	return &Filter{
		size:       f.size,
		algorithms: slices.Clone(f.algorithms),
		bits:       f.bits.Intersection(other.bits),
	}, nil
}
