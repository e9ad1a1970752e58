package bloomset

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"hash/crc32"
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
	"github.com/zeebo/xxh3"
	"lukechampine.com/blake3"
)

// Algorithm names a digest algorithm in the registry. Filters validate
// requested names eagerly at construction; unknown names are rejected with
// ErrUnknownAlgorithm.
type Algorithm string

// The registry of supported hash algorithms. The set is closed: bit
// positions are derived only from these named digests, so two filters
// configured with the same names always agree on positions.
const (
	MD5      Algorithm = "md5"
	SHA1     Algorithm = "sha1"
	SHA224   Algorithm = "sha224"
	SHA256   Algorithm = "sha256"
	SHA384   Algorithm = "sha384"
	SHA512   Algorithm = "sha512"
	FNV1     Algorithm = "fnv1-32"
	FNV1a64  Algorithm = "fnv1a-64"
	CRC32    Algorithm = "crc32"
	XXH3     Algorithm = "xxh3"
	XXHash64 Algorithm = "xxhash64"
	SipHash  Algorithm = "siphash"
	Blake3   Algorithm = "blake3"
)

// Fixed SipHash key. Membership tests only need a deterministic digest, not
// keyed security, so the key is a constant rather than per-filter state.
const (
	sipK0 = 0x0706050403020100
	sipK1 = 0x0f0e0d0c0b0a0908
)

var digests = map[Algorithm]func([]byte) []byte{
	MD5: func(b []byte) []byte {
		sum := md5.Sum(b)
		return sum[:]
	},
	SHA1: func(b []byte) []byte {
		sum := sha1.Sum(b)
		return sum[:]
	},
	SHA224: func(b []byte) []byte {
		sum := sha256.Sum224(b)
		return sum[:]
	},
	SHA256: func(b []byte) []byte {
		sum := sha256.Sum256(b)
		return sum[:]
	},
	SHA384: func(b []byte) []byte {
		sum := sha512.Sum384(b)
		return sum[:]
	},
	SHA512: func(b []byte) []byte {
		sum := sha512.Sum512(b)
		return sum[:]
	},
	FNV1: func(b []byte) []byte {
		h := fnv.New32()
		h.Write(b)
		return h.Sum(nil)
	},
	FNV1a64: func(b []byte) []byte {
		h := fnv.New64a()
		h.Write(b)
		return h.Sum(nil)
	},
	CRC32: func(b []byte) []byte {
		return binary.BigEndian.AppendUint32(nil, crc32.ChecksumIEEE(b))
	},
	XXH3: func(b []byte) []byte {
		return binary.BigEndian.AppendUint64(nil, xxh3.Hash(b))
	},
	XXHash64: func(b []byte) []byte {
		return binary.BigEndian.AppendUint64(nil, xxhash.Sum64(b))
	},
	SipHash: func(b []byte) []byte {
		return binary.BigEndian.AppendUint64(nil, siphash.Hash(sipK0, sipK1, b))
	},
	Blake3: func(b []byte) []byte {
		sum := blake3.Sum256(b)
		return sum[:]
	},
}

// allAlgorithms lists the registry in a stable order, used by Algorithms and
// by NewOptimalFilter's random selection.
var allAlgorithms = []Algorithm{
	MD5, SHA1, SHA224, SHA256, SHA384, SHA512,
	FNV1, FNV1a64, CRC32, XXH3, XXHash64, SipHash, Blake3,
}

// Algorithms returns the names of every supported hash algorithm.
func Algorithms() []Algorithm {
	out := make([]Algorithm, len(allAlgorithms))
	copy(out, allAlgorithms)
	return out
}

// Supported reports whether the algorithm is in the registry.
func (a Algorithm) Supported() bool {
	_, ok := digests[a]
	return ok
}

// digest computes the algorithm's digest of the item. The algorithm must be
// in the registry; filters guarantee this at construction.
func (a Algorithm) digest(item []byte) []byte {
	return digests[a](item)
}

// FoldWidth is the fixed width, in bits, of the checksum every digest is
// folded to before deriving a bit position. Folding at a fixed width keeps
// bit positions identical across architectures, so serialized filters can be
// exchanged between hosts with different native word sizes.
const FoldWidth = 32

// foldDigest folds a digest of any length to a non-negative 32-bit checksum.
func foldDigest(digest []byte) uint32 {
	return crc32.ChecksumIEEE(digest) & 0x7fffffff
}
