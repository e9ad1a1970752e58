// Package bloomset provides bloom filters and two compositional extensions:
// a weighted collection of filters and a self-growing, unbounded collection.
//
// A bloom filter answers set-membership queries in constant space with
// one-sided error: a negative answer is always definitive, while a positive
// answer carries a tunable false-positive probability. Items can only be
// added, never removed.
//
// # Architecture
//
// [Filter] is the atomic set: a fixed-size bit array plus an ordered list of
// named hash algorithms drawn from a closed registry (see [Algorithms]).
// Each algorithm contributes one bit position per item: the algorithm's
// digest is folded to a fixed 32-bit checksum and reduced modulo the filter
// size. Because the fold width is fixed ([FoldWidth]) rather than tied to
// the host word size, serialized filters are portable across architectures.
//
// [Collection] composes any number of children – filters or nested
// collections – behind the same interface. Inserts are distributed by a
// weighted round-robin scheduler: each child's weight tracks how much
// reliable capacity it has left (100 minus its false-positive probability in
// percent), and children that are full or past the configured
// false-probability threshold stop receiving inserts entirely. Membership
// queries poll every child.
//
// [ScalableCollection] pairs a collection with a [Factory]. When an insert
// finds no eligible child, it constructs a new filter, attaches it, and
// retries, so inserts never fail for lack of capacity. Growth is unbounded
// by design.
//
// # Choosing Parameters
//
// Use [NewOptimalFilter] with your target false-positive probability and
// expected number of items:
//
//	// Filter for 100,000 items with a 1% false positive rate
//	f, err := bloomset.NewOptimalFilter(0.01, 100_000)
//
// The size and hash count come from the standard closed forms
//
//	m = -n * ln(p) / ln(2)²
//	k = (m/n) * ln(2)
//
// exposed directly as [OptimalSize] and [OptimalHashCount]. For explicit
// control, [NewFilter] takes a size in bits and an algorithm list.
//
// When the filter is filled to its intended capacity it achieves
// approximately the target false positive rate; adding more items degrades
// it. [Filter.FalsePositiveProbability] reports the current rate, and
// [Filter.EstimateCapacity] and [Filter.EstimateFillRate] report how much
// headroom remains before a given rate is reached.
//
// # Set Operations
//
// [Filter.Union] and [Filter.Intersect] combine two filters bit-wise. Both
// require identical size and algorithm lists (order included) and return
// [ErrIncompatibleFilters] otherwise. The result's insert count is reset to
// zero, since counts are not meaningful across set operations.
//
// # Serialization
//
// Filters and collections implement json.Marshaler and json.Unmarshaler.
// The filter record carries the size, the ordered algorithm list, the insert
// count, the producer's fold width, and the bit array as a hex string (two
// characters per byte, least-significant-bit-first within each byte).
// Collections additionally persist their scheduler state and threshold, and
// their children recursively. Decoders reject unknown algorithms, malformed
// bitmaps, and fold widths other than [FoldWidth].
//
// # Error Handling
//
// All failures are sentinel errors discriminated with errors.Is.
// Configuration, logic, and incompatibility errors ([ErrInvalidSize],
// [ErrDegenerateProbability], [ErrIncompatibleFilters], ...) indicate
// programmer or data error and are never recovered internally. Two sentinels
// are expected control-flow signals: [ErrNoChildren] (collection has no
// children) and [ErrNoCapacity] (every child full or over threshold) are
// what [ScalableCollection.Add] consumes to trigger growth; a bare
// [Collection] surfaces them to its caller.
//
// # Thread Safety
//
// Nothing in this package synchronizes internally; every operation is a
// bounded, CPU-only computation. Share a [Filter] or [Collection] across
// goroutines only behind external mutual exclusion: filter bit mutations
// span multiple positions, and the collection's scheduler state is
// read-modify-write, so concurrent Add calls corrupt the fairness guarantee.
// One lock per collection guarding Add and Attach is the recommended
// discipline.
package bloomset
