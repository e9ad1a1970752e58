package bloomset

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterRoundtripEmpty(t *testing.T) {
	original, err := NewFilter(1024, []Algorithm{SHA256, MD5, XXH3})
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	restored, err := UnmarshalFilter(data)
	require.NoError(t, err)
	require.Equal(t, original.Size(), restored.Size())
	require.Equal(t, original.Algorithms(), restored.Algorithms())
	require.Equal(t, original.Count(), restored.Count())
	require.True(t, original.bits.Equal(restored.bits))
}

func TestFilterRoundtripWithData(t *testing.T) {
	original, err := NewFilter(9586, []Algorithm{SHA256, MD5, SHA1, SipHash, Blake3, XXHash64, CRC32})
	require.NoError(t, err)
	for i := range 1000 {
		_, err := original.Add(fmt.Appendf(nil, "item-%d", i))
		require.NoError(t, err)
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	restored, err := UnmarshalFilter(data)
	require.NoError(t, err)
	require.Equal(t, original.Size(), restored.Size())
	require.Equal(t, original.Algorithms(), restored.Algorithms())
	require.Equal(t, uint64(1000), restored.Count())
	require.True(t, original.bits.Equal(restored.bits), "bit arrays must match bit for bit")

	for i := range 1000 {
		require.True(t, restored.Has(fmt.Appendf(nil, "item-%d", i)))
	}

	// A second marshal reproduces the exact bytes.
	again, err := json.Marshal(restored)
	require.NoError(t, err)
	require.Equal(t, data, again)
}

func TestFilterWireLayout(t *testing.T) {
	// Bit i lives in byte i/8, least-significant-bit first: bit 0 of byte
	// 0 is position 0, so a bitmap with only position 0 set reads "0100"
	// for a 16-bit filter.
	raw := []byte(`{"size":16,"hashAlgorithms":["sha256"],"insertCount":3,"foldWidth":32,"bits":"0100"}`)

	f, err := UnmarshalFilter(raw)
	require.NoError(t, err)
	require.Equal(t, uint(16), f.Size())
	require.Equal(t, uint64(3), f.Count())
	require.True(t, f.bits.Test(0))
	require.Equal(t, uint(1), f.bits.Count())

	data, err := json.Marshal(f)
	require.NoError(t, err)
	require.JSONEq(t, string(raw), string(data))
}

func TestFilterDecodeRejectsFoldWidthMismatch(t *testing.T) {
	// Data folded at a 64-bit native word derives different positions and
	// would silently produce false negatives.
	raw := []byte(`{"size":16,"hashAlgorithms":["sha256"],"insertCount":0,"foldWidth":64,"bits":"0000"}`)
	_, err := UnmarshalFilter(raw)
	require.ErrorIs(t, err, ErrFoldWidth)
}

func TestFilterDecodeRejectsBadData(t *testing.T) {
	cases := map[string]struct {
		raw  string
		want error
	}{
		"not json": {
			raw:  "gibberish",
			want: ErrInvalidData,
		},
		"zero size": {
			raw:  `{"size":0,"hashAlgorithms":["sha256"],"insertCount":0,"foldWidth":32,"bits":""}`,
			want: ErrInvalidSize,
		},
		"no algorithms": {
			raw:  `{"size":16,"hashAlgorithms":[],"insertCount":0,"foldWidth":32,"bits":"0000"}`,
			want: ErrNoAlgorithms,
		},
		"unknown algorithm": {
			raw:  `{"size":16,"hashAlgorithms":["whirlpool"],"insertCount":0,"foldWidth":32,"bits":"0000"}`,
			want: ErrUnknownAlgorithm,
		},
		"bitmap not hex": {
			raw:  `{"size":16,"hashAlgorithms":["sha256"],"insertCount":0,"foldWidth":32,"bits":"zz00"}`,
			want: ErrInvalidData,
		},
		"bitmap too short": {
			raw:  `{"size":16,"hashAlgorithms":["sha256"],"insertCount":0,"foldWidth":32,"bits":"00"}`,
			want: ErrInvalidData,
		},
		"bit set beyond size": {
			raw:  `{"size":4,"hashAlgorithms":["sha256"],"insertCount":0,"foldWidth":32,"bits":"10"}`,
			want: ErrInvalidData,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := UnmarshalFilter([]byte(tc.raw))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCollectionRoundtrip(t *testing.T) {
	inner := NewCollection()
	f1, err := NewFilter(512, []Algorithm{SHA1, FNV1})
	require.NoError(t, err)
	inner.Attach(f1)

	outer, err := NewCollectionWithThreshold(0.25)
	require.NoError(t, err)
	f2, err := NewFilter(1024, []Algorithm{SHA256, MD5})
	require.NoError(t, err)
	outer.Attach(f2)
	outer.Attach(inner)

	// Advance the scheduler so its state is non-trivial.
	for i := range 7 {
		_, err := outer.Add(fmt.Appendf(nil, "item-%d", i))
		require.NoError(t, err)
	}

	data, err := json.Marshal(outer)
	require.NoError(t, err)

	restored, err := UnmarshalCollection(data)
	require.NoError(t, err)
	require.Equal(t, outer.Len(), restored.Len())
	require.Equal(t, outer.Threshold(), restored.Threshold())
	require.Equal(t, outer.Count(), restored.Count())
	require.Equal(t, outer.sched, restored.sched, "scheduler state provides round-robin continuity")

	for i := range 7 {
		require.True(t, restored.Has(fmt.Appendf(nil, "item-%d", i)))
	}

	again, err := json.Marshal(restored)
	require.NoError(t, err)
	require.Equal(t, data, again, "a second marshal reproduces the exact bytes")

	// Round-robin continuity: the original and the restored collection
	// route the same subsequent inserts identically.
	for i := range 10 {
		item := fmt.Appendf(nil, "later-%d", i)
		a, err := outer.Add(item)
		require.NoError(t, err)
		b, err := restored.Add(item)
		require.NoError(t, err)
		require.Equal(t, a.Count(), b.Count())
	}
}

func TestCollectionMarshalScalableChild(t *testing.T) {
	s := NewScalable(func(*ScalableCollection) (Interface, error) {
		return NewFilter(256, []Algorithm{SHA256})
	})
	_, err := s.Add([]byte("seed"))
	require.NoError(t, err)

	parent := NewCollection()
	parent.Attach(s)

	// A scalable child serializes as its wrapped collection; the factory
	// has no wire representation.
	data, err := json.Marshal(parent)
	require.NoError(t, err)

	restored, err := UnmarshalCollection(data)
	require.NoError(t, err)
	require.Equal(t, 1, restored.Len())
	_, isCollection := restored.Children()[0].(*Collection)
	require.True(t, isCollection)
	require.True(t, restored.Has([]byte("seed")))
}

func TestCollectionDecodeRejectsBadSchedulerIndex(t *testing.T) {
	filterBody := `{"type":"filter","filter":{"size":8,"hashAlgorithms":["sha256"],"insertCount":0,"foldWidth":32,"bits":"00"}}`
	children := filterBody + "," + filterBody + "," + filterBody

	// An index below -1 would make the next selection index out of range,
	// since Go's % keeps the sign of the dividend.
	raw := fmt.Sprintf(`{"schedulerIndex":-5,"schedulerCurrentWeight":0,"falseProbabilityThreshold":1,"children":[%s]}`, children)
	_, err := UnmarshalCollection([]byte(raw))
	require.ErrorIs(t, err, ErrInvalidData)

	// So would an index past the last child.
	raw = fmt.Sprintf(`{"schedulerIndex":3,"schedulerCurrentWeight":0,"falseProbabilityThreshold":1,"children":[%s]}`, children)
	_, err = UnmarshalCollection([]byte(raw))
	require.ErrorIs(t, err, ErrInvalidData)

	// The boundary values decode and keep Add working.
	for _, idx := range []int{-1, 0, 2} {
		raw = fmt.Sprintf(`{"schedulerIndex":%d,"schedulerCurrentWeight":0,"falseProbabilityThreshold":1,"children":[%s]}`, idx, children)
		c, err := UnmarshalCollection([]byte(raw))
		require.NoError(t, err)
		_, err = c.Add([]byte("item"))
		require.NoError(t, err)
	}
}

type fakeChild struct{ Interface }

func TestCollectionMarshalRejectsForeignChild(t *testing.T) {
	c := NewCollection()
	c.Attach(fakeChild{})
	_, err := json.Marshal(c)
	require.ErrorIs(t, err, ErrInvalidData)
}

func TestCollectionDecodeRejectsBadData(t *testing.T) {
	cases := map[string]string{
		"not json":      "gibberish",
		"bad threshold": `{"schedulerIndex":-1,"schedulerCurrentWeight":0,"falseProbabilityThreshold":7,"children":[]}`,
		"unknown type":  `{"schedulerIndex":-1,"schedulerCurrentWeight":0,"falseProbabilityThreshold":1,"children":[{"type":"cuckoo"}]}`,
		"missing body":  `{"schedulerIndex":-1,"schedulerCurrentWeight":0,"falseProbabilityThreshold":1,"children":[{"type":"filter"}]}`,
		"bad child":     `{"schedulerIndex":-1,"schedulerCurrentWeight":0,"falseProbabilityThreshold":1,"children":[{"type":"filter","filter":{"size":0,"hashAlgorithms":["sha256"],"insertCount":0,"foldWidth":32,"bits":""}}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := UnmarshalCollection([]byte(raw))
			require.Error(t, err)
		})
	}
}
