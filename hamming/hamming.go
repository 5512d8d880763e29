// Package hamming defines the fixed-width binary fingerprint encodings the
// index operates on.
//
// A fingerprint of W bits decomposes into fixed-size, non-overlapping chunks
// used as index keys. Two encodings are supported: a 64-bit value split into
// 8 chunks of 8 bits, and a 256-bit value split into 16 chunks of 16 bits.
// All index and grouping code is generic over the Fingerprint constraint, so
// one implementation serves both encodings and they cannot be mixed within a
// single index.
package hamming

import "math/bits"

// Layout describes how an encoding decomposes into chunks.
type Layout struct {
	// Chunks is the number of non-overlapping chunks per fingerprint.
	Chunks int
	// ChunkBits is the bit width of each chunk.
	ChunkBits int
	// MaxDistance is the largest distance threshold for which probing the
	// exact bucket plus every single-bit-flip bucket still guarantees full
	// recall (threshold/Chunks must stay <= 1). Larger thresholds are
	// accepted by the index but silently lose recall.
	MaxDistance int
}

// Buckets returns the number of buckets per chunk position.
func (l Layout) Buckets() int { return 1 << l.ChunkBits }

// Bits returns the total fingerprint width in bits.
func (l Layout) Bits() int { return l.Chunks * l.ChunkBits }

// Fingerprint is the capability set an encoding must provide for indexing:
// chunk extraction for bucketing and full-width Hamming distance for
// candidate verification.
type Fingerprint[F any] interface {
	comparable
	// Chunk returns chunk k's bits as a value in [0, 1<<ChunkBits).
	Chunk(k int) uint16
	// Distance returns the number of differing bits against other.
	Distance(other F) int
	// Layout returns the encoding's chunk decomposition.
	Layout() Layout
}

// Layout64 is the decomposition of Hash64: 8 chunks of 8 bits. With 8 chunks
// and single-bit-flip probing, distances up to 15 keep full recall
// (16 would need a 2-bit per-chunk tolerance).
var Layout64 = Layout{Chunks: 8, ChunkBits: 8, MaxDistance: 15}

// Layout256 is the decomposition of Hash256: 16 chunks of 16 bits.
// The ceiling of 60 mirrors the 64-bit encoding's ~23% relative threshold.
var Layout256 = Layout{Chunks: 16, ChunkBits: 16, MaxDistance: 60}

// Hash64 is a 64-bit fingerprint (DCT perceptual hash width).
type Hash64 uint64

// Chunk returns bits [8k, 8k+8) of the value.
func (h Hash64) Chunk(k int) uint16 {
	return uint16(uint64(h)>>(k*8)) & 0xFF
}

// Distance returns the Hamming distance to other.
func (h Hash64) Distance(other Hash64) int {
	return bits.OnesCount64(uint64(h ^ other))
}

// Layout returns Layout64.
func (h Hash64) Layout() Layout { return Layout64 }

// Hash256 is a 256-bit fingerprint (PDQ hash width), stored as four 64-bit
// words holding the canonical 32-byte value little-endian: bit i of the
// fingerprint is bit i%64 of word i/64.
type Hash256 [4]uint64

// Hash256FromBytes converts the canonical little-endian 32-byte form.
func Hash256FromBytes(b [32]byte) Hash256 {
	var h Hash256
	for w := 0; w < 4; w++ {
		var v uint64
		for i := 0; i < 8; i++ {
			v |= uint64(b[w*8+i]) << (i * 8)
		}
		h[w] = v
	}
	return h
}

// Bytes returns the canonical little-endian 32-byte form.
func (h Hash256) Bytes() [32]byte {
	var b [32]byte
	for w := 0; w < 4; w++ {
		for i := 0; i < 8; i++ {
			b[w*8+i] = byte(h[w] >> (i * 8))
		}
	}
	return b
}

// Chunk returns bits [16k, 16k+16) of the value.
func (h Hash256) Chunk(k int) uint16 {
	return uint16(h[k/4] >> ((k % 4) * 16))
}

// Distance returns the Hamming distance to other, computed as four word-wise
// XOR popcounts.
func (h Hash256) Distance(other Hash256) int {
	return bits.OnesCount64(h[0]^other[0]) +
		bits.OnesCount64(h[1]^other[1]) +
		bits.OnesCount64(h[2]^other[2]) +
		bits.OnesCount64(h[3]^other[3])
}

// Layout returns Layout256.
func (h Hash256) Layout() Layout { return Layout256 }
