package bloomset

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Wire format. A Filter serializes to a JSON record carrying its size, its
// ordered algorithm list, its insert count, the hash fold width of the
// producer, and the bit array as a hexadecimal string: two hex characters
// per byte, byte i/8 packing bit positions i..i+7 least-significant-bit
// first.
//
// Decoders reject records whose fold width differs from FoldWidth. Since the
// fold width is fixed rather than tied to the host word size, two correct
// implementations can never disagree; the check guards against data written
// by older producers that folded at the native width.
type filterJSON struct {
	Size           uint        `json:"size"`
	HashAlgorithms []Algorithm `json:"hashAlgorithms"`
	InsertCount    uint64      `json:"insertCount"`
	FoldWidth      int         `json:"foldWidth"`
	Bits           string      `json:"bits"`
}

// A Collection serializes to its scheduler state, its threshold option, and
// its children, recursively. Each child carries a type tag so heterogeneous
// and nested composites round-trip.
type collectionJSON struct {
	SchedulerIndex  int         `json:"schedulerIndex"`
	SchedulerWeight int         `json:"schedulerCurrentWeight"`
	Threshold       float64     `json:"falseProbabilityThreshold"`
	Children        []childJSON `json:"children"`
}

type childJSON struct {
	Type       string      `json:"type"`
	Filter     *Filter     `json:"filter,omitempty"`
	Collection *Collection `json:"collection,omitempty"`
}

const (
	childTypeFilter     = "filter"
	childTypeCollection = "collection"
)

// MarshalJSON implements json.Marshaler using the documented wire format.
func (f *Filter) MarshalJSON() ([]byte, error) {
	packed := make([]byte, (f.size+7)/8)
	for i, ok := f.bits.NextSet(0); ok; i, ok = f.bits.NextSet(i + 1) {
		packed[i/8] |= 1 << (i % 8)
	}
	return json.Marshal(filterJSON{
		Size:           f.size,
		HashAlgorithms: f.algorithms,
		InsertCount:    f.inserts,
		FoldWidth:      FoldWidth,
		Bits:           hex.EncodeToString(packed),
	})
}

// UnmarshalJSON implements json.Unmarshaler. It applies the same validation
// as NewFilter and additionally rejects mismatched fold widths, bitmap
// length mismatches, and set bits beyond the filter size.
func (f *Filter) UnmarshalJSON(data []byte) error {
	var fj filterJSON
	if err := json.Unmarshal(data, &fj); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	if fj.FoldWidth != FoldWidth {
		return fmt.Errorf("%w: got %d, want %d", ErrFoldWidth, fj.FoldWidth, FoldWidth)
	}

	restored, err := NewFilter(fj.Size, fj.HashAlgorithms)
	if err != nil {
		return err
	}

	packed, err := hex.DecodeString(fj.Bits)
	if err != nil {
		return fmt.Errorf("%w: bit array is not valid hex: %v", ErrInvalidData, err)
	}
	if uint(len(packed)) != (fj.Size+7)/8 {
		return fmt.Errorf("%w: bit array holds %d bytes, want %d", ErrInvalidData, len(packed), (fj.Size+7)/8)
	}
	for i := uint(0); i < uint(len(packed))*8; i++ {
		if packed[i/8]&(1<<(i%8)) == 0 {
			continue
		}
		if i >= fj.Size {
			return fmt.Errorf("%w: bit %d set beyond filter size %d", ErrInvalidData, i, fj.Size)
		}
		restored.bits.Set(i)
	}

	restored.inserts = fj.InsertCount
	*f = *restored
	return nil
}

// UnmarshalFilter decodes a filter from its serialized form.
func UnmarshalFilter(data []byte) (*Filter, error) {
	f := new(Filter)
	if err := f.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return f, nil
}

// MarshalJSON implements json.Marshaler. Children must be filters,
// collections, or scalable collections (which serialize as their wrapped
// collection, since a factory function has no wire representation).
func (c *Collection) MarshalJSON() ([]byte, error) {
	children := make([]childJSON, len(c.children))
	for i, child := range c.children {
		switch v := child.(type) {
		case *Filter:
			children[i] = childJSON{Type: childTypeFilter, Filter: v}
		case *Collection:
			children[i] = childJSON{Type: childTypeCollection, Collection: v}
		case *ScalableCollection:
			children[i] = childJSON{Type: childTypeCollection, Collection: &v.Collection}
		default:
			return nil, fmt.Errorf("%w: child %d has unserializable type %T", ErrInvalidData, i, child)
		}
	}
	return json.Marshal(collectionJSON{
		SchedulerIndex:  c.sched.index,
		SchedulerWeight: c.sched.currentWeight,
		Threshold:       c.threshold,
		Children:        children,
	})
}

// UnmarshalJSON implements json.Unmarshaler, restoring scheduler state, the
// threshold option, and every child recursively.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var cj collectionJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	if err := checkProbability(cj.Threshold); err != nil {
		return fmt.Errorf("%w: threshold %v out of range", ErrInvalidData, cj.Threshold)
	}
	// The scheduler index is either -1 (nothing selected yet) or a valid
	// child index; anything else would index out of range on the next Add.
	if cj.SchedulerIndex < -1 || cj.SchedulerIndex >= len(cj.Children) {
		return fmt.Errorf("%w: scheduler index %d out of range for %d children",
			ErrInvalidData, cj.SchedulerIndex, len(cj.Children))
	}

	restored := Collection{
		sched:     scheduler{index: cj.SchedulerIndex, currentWeight: cj.SchedulerWeight},
		threshold: cj.Threshold,
	}
	for i, child := range cj.Children {
		switch child.Type {
		case childTypeFilter:
			if child.Filter == nil {
				return fmt.Errorf("%w: child %d is missing its filter body", ErrInvalidData, i)
			}
			restored.children = append(restored.children, child.Filter)
		case childTypeCollection:
			if child.Collection == nil {
				return fmt.Errorf("%w: child %d is missing its collection body", ErrInvalidData, i)
			}
			restored.children = append(restored.children, child.Collection)
		default:
			return fmt.Errorf("%w: child %d has unknown type %q", ErrInvalidData, i, child.Type)
		}
	}

	*c = restored
	return nil
}

// UnmarshalCollection decodes a collection from its serialized form.
func UnmarshalCollection(data []byte) (*Collection, error) {
	c := new(Collection)
	if err := c.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return c, nil
}
