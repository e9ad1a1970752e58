package bloomset

import (
	"errors"
	"fmt"
)

// Factory constructs a new child filter for a growing collection. It is
// called synchronously with the collection itself, so implementations can
// size new filters from the collection's current state (child count, counts,
// probabilities).
type Factory func(*ScalableCollection) (Interface, error)

// ScalableCollection composes a Collection with a Factory. Whenever an
// insert hits the collection's underflow or overflow condition it grows a
// new child and retries, so inserts never fail for lack of capacity. There
// is no bound on the number of children created.
type ScalableCollection struct {
	Collection
	factory Factory
}

var _ Interface = (*ScalableCollection)(nil)

// NewScalable creates an empty scalable collection with DefaultThreshold.
// The first Add grows the first child.
func NewScalable(factory Factory) *ScalableCollection {
	return &ScalableCollection{
		Collection: *NewCollection(),
		factory:    factory,
	}
}

// NewScalableWithThreshold creates an empty scalable collection with the
// given false-probability threshold in [0, 1].
func NewScalableWithThreshold(factory Factory, threshold float64) (*ScalableCollection, error) {
	c, err := NewCollectionWithThreshold(threshold)
	if err != nil {
		return nil, err
	}
	return &ScalableCollection{Collection: *c, factory: factory}, nil
}

// NewScalableFromCollection wraps an existing collection, typically one
// restored from serialized data, with a factory. The collection value is
// adopted as-is, children and scheduler state included.
func NewScalableFromCollection(c *Collection, factory Factory) *ScalableCollection {
	return &ScalableCollection{Collection: *c, factory: factory}
}

// Add inserts the item, growing a new child and retrying whenever the
// wrapped collection reports no eligible child. A freshly attached filter
// has nonzero weight, so the retry after a growth step cannot hit the same
// condition again for the same item; any other error is surfaced unchanged.
func (s *ScalableCollection) Add(item []byte) (Interface, error) {
	for {
		child, err := s.Collection.Add(item)
		if err == nil {
			return child, nil
		}
		if !errors.Is(err, ErrNoChildren) && !errors.Is(err, ErrNoCapacity) {
			return nil, err
		}

		fresh, err := s.factory(s)
		if err != nil {
			return nil, fmt.Errorf("bloomset: growth factory failed: %w", err)
		}
		if fresh == nil {
			return nil, errors.New("bloomset: growth factory returned no filter")
		}
		s.Attach(fresh)
	}
}

// AddString inserts a string item, growing as needed.
func (s *ScalableCollection) AddString(item string) (Interface, error) {
	return s.Add([]byte(item))
}
