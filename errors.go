package bloomset

import "errors"

var (
	// ErrInvalidSize is returned when a filter is constructed with a size
	// of zero bits.
	ErrInvalidSize = errors.New("bloomset: filter size must be positive")

	// ErrNoAlgorithms is returned when a filter is constructed with an
	// empty hash algorithm list.
	ErrNoAlgorithms = errors.New("bloomset: at least one hash algorithm is required")

	// ErrUnknownAlgorithm is returned when a requested hash algorithm is
	// not in the registry.
	ErrUnknownAlgorithm = errors.New("bloomset: unknown hash algorithm")

	// ErrProbabilityRange is returned when a probability argument falls
	// outside [0, 1].
	ErrProbabilityRange = errors.New("bloomset: probability must be in [0, 1]")

	// ErrItemsRange is returned when an item count argument is negative.
	ErrItemsRange = errors.New("bloomset: item count must not be negative")

	// ErrDegenerateProbability is returned when a probability of exactly
	// 0 or 1 is passed to a formula that is undefined at those points.
	ErrDegenerateProbability = errors.New("bloomset: probability must be strictly between 0 and 1")

	// ErrIncompatibleFilters is returned by Union and Intersect when the
	// two filters differ in size or hash algorithm list.
	ErrIncompatibleFilters = errors.New("bloomset: filters have incompatible configurations")

	// ErrFoldWidth is returned when serialized data carries a hash fold
	// width other than FoldWidth.
	ErrFoldWidth = errors.New("bloomset: unsupported hash fold width")

	// ErrInvalidData is returned when serialized data is malformed or
	// corrupted.
	ErrInvalidData = errors.New("bloomset: invalid serialized data")

	// ErrNoChildren is returned by Collection.Add when no filters are
	// attached. A ScalableCollection recovers from it by growing.
	ErrNoChildren = errors.New("bloomset: collection has no attached filters")

	// ErrNoCapacity is returned by Collection.Add when every attached
	// filter is full or over the false-probability threshold. A
	// ScalableCollection recovers from it by growing.
	ErrNoCapacity = errors.New("bloomset: no attached filter can accept inserts")
)
