package bloomset

import (
	"math"
	"sort"
)

// DefaultThreshold is the default false-probability threshold for a
// Collection: children are eligible for inserts until they are literally
// full.
const DefaultThreshold = 1.0

// Collection is a composite filter: an ordered list of children (filters or
// nested collections), a weighted round-robin scheduler that spreads inserts
// across them, and a false-probability threshold beyond which a child stops
// receiving inserts.
//
// Children may be heterogeneous; nothing requires them to share a size or
// algorithm list. A Collection exclusively owns its child list.
//
// Collection is not safe for concurrent use: the scheduler state is
// read-modify-write and races under concurrent Add calls.
type Collection struct {
	children  []Interface
	sched     scheduler
	threshold float64
}

var _ Interface = (*Collection)(nil)

// NewCollection creates an empty collection with DefaultThreshold. Add
// fails with ErrNoChildren until at least one child is attached.
func NewCollection() *Collection {
	return &Collection{
		sched:     newScheduler(),
		threshold: DefaultThreshold,
	}
}

// NewCollectionWithThreshold creates an empty collection whose children
// become ineligible for inserts once their false-positive probability
// exceeds the given threshold. The threshold must lie in [0, 1].
func NewCollectionWithThreshold(threshold float64) (*Collection, error) {
	if err := checkProbability(threshold); err != nil {
		return nil, err
	}
	c := NewCollection()
	c.threshold = threshold
	return c, nil
}

// Attach appends a child to the collection. There is no capacity limit and
// no validation against existing children.
func (c *Collection) Attach(child Interface) {
	c.children = append(c.children, child)
}

// Len returns the number of attached children.
func (c *Collection) Len() int {
	return len(c.children)
}

// Children returns a snapshot of the attached children in order.
func (c *Collection) Children() []Interface {
	out := make([]Interface, len(c.children))
	copy(out, c.children)
	return out
}

// Threshold returns the collection's false-probability threshold.
func (c *Collection) Threshold() float64 {
	return c.threshold
}

// Count returns the sum of the children's insert counts.
func (c *Collection) Count() uint64 {
	var total uint64
	for _, child := range c.children {
		total += child.Count()
	}
	return total
}

// weights computes the scheduling weight of every child: 100 minus the
// child's false-positive probability scaled to percent, clamped to zero for
// children that are full or over the threshold. The second result is the
// weight sum.
func (c *Collection) weights() ([]int, int) {
	weights := make([]int, len(c.children))
	total := 0
	for i, child := range c.children {
		p := child.FalsePositiveProbability()
		if p > c.threshold || child.IsFull() {
			continue
		}
		weights[i] = 100 - int(math.Round(p*100))
		total += weights[i]
	}
	return weights, total
}

// Add routes the item to one child chosen by the weighted round-robin
// scheduler and returns the filter that handled it. It fails with
// ErrNoChildren when the collection is empty and with ErrNoCapacity when
// every child is full or over the threshold; both are the growth signals a
// ScalableCollection recovers from.
func (c *Collection) Add(item []byte) (Interface, error) {
	if len(c.children) == 0 {
		return nil, ErrNoChildren
	}

	weights, total := c.weights()
	if total == 0 {
		return nil, ErrNoCapacity
	}

	// total > 0 guarantees an eligible index exists.
	idx, _ := c.sched.next(weights)
	return c.children[idx].Add(item)
}

// AddString routes a string item.
func (c *Collection) AddString(item string) (Interface, error) {
	return c.Add([]byte(item))
}

// Has reports whether any child answers positive for the item.
func (c *Collection) Has(item []byte) bool {
	for _, child := range c.children {
		if child.Has(item) {
			return true
		}
	}
	return false
}

// HasString reports whether any child answers positive for the string item.
func (c *Collection) HasString(item string) bool {
	return c.Has([]byte(item))
}

// Positives returns the children that answer positive for the item, ordered
// by descending confidence (1 minus the child's false-positive probability,
// most reliable first). The result is empty when no child is positive.
func (c *Collection) Positives(item []byte) []Interface {
	var positives []Interface
	for _, child := range c.children {
		if child.Has(item) {
			positives = append(positives, child)
		}
	}
	sort.SliceStable(positives, func(i, j int) bool {
		return positives[i].FalsePositiveProbability() < positives[j].FalsePositiveProbability()
	})
	return positives
}

// IsFull reports whether every child is full. An empty collection is not
// full: it has no capacity in use, and reporting it full would make a parent
// aggregate treat it as saturated.
func (c *Collection) IsFull() bool {
	if len(c.children) == 0 {
		return false
	}
	for _, child := range c.children {
		if !child.IsFull() {
			return false
		}
	}
	return true
}

// FalsePositiveProbability returns the maximum probability across children,
// the conservative worst case for the whole collection. An empty collection
// reports zero.
func (c *Collection) FalsePositiveProbability() float64 {
	p := 0.0
	for _, child := range c.children {
		if cp := child.FalsePositiveProbability(); cp > p {
			p = cp
		}
	}
	return p
}
