package hamming

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayouts(t *testing.T) {
	assert.Equal(t, 64, Layout64.Bits())
	assert.Equal(t, 256, Layout64.Buckets())
	assert.Equal(t, 256, Layout256.Bits())
	assert.Equal(t, 65536, Layout256.Buckets())

	// The ceiling must keep the per-chunk tolerance at one bit, the most
	// the single-flip probe strategy covers.
	assert.Equal(t, 1, Layout64.MaxDistance/Layout64.Chunks)
	assert.Equal(t, 1, Layout256.MaxDistance/Layout256.Chunks)
}

func TestHash64Chunks(t *testing.T) {
	h := Hash64(0x1122334455667788)
	want := []uint16{0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11}
	for k, w := range want {
		assert.Equal(t, w, h.Chunk(k), "chunk %d", k)
	}

	// Chunks reassemble to the original value.
	var back uint64
	for k := 0; k < Layout64.Chunks; k++ {
		back |= uint64(h.Chunk(k)) << (k * 8)
	}
	assert.Equal(t, uint64(h), back)
}

func TestHash256Chunks(t *testing.T) {
	var b [32]byte
	for i := range b {
		b[i] = byte(i * 7)
	}
	h := Hash256FromBytes(b)

	// Chunk k is the little-endian uint16 at byte offset 2k.
	for k := 0; k < Layout256.Chunks; k++ {
		want := uint16(b[2*k]) | uint16(b[2*k+1])<<8
		assert.Equal(t, want, h.Chunk(k), "chunk %d", k)
	}

	assert.Equal(t, b, h.Bytes())
}

func TestHash256BytesRoundtrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		h := Hash256{rng.Uint64(), rng.Uint64(), rng.Uint64(), rng.Uint64()}
		require.Equal(t, h, Hash256FromBytes(h.Bytes()))
	}
}

func TestDistanceSymmetricZeroOnSelf(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		a := Hash64(rng.Uint64())
		b := Hash64(rng.Uint64())
		assert.Equal(t, a.Distance(b), b.Distance(a))
		assert.Equal(t, 0, a.Distance(a))
	}
	for i := 0; i < 200; i++ {
		a := Hash256{rng.Uint64(), rng.Uint64(), rng.Uint64(), rng.Uint64()}
		b := Hash256{rng.Uint64(), rng.Uint64(), rng.Uint64(), rng.Uint64()}
		assert.Equal(t, a.Distance(b), b.Distance(a))
		assert.Equal(t, 0, a.Distance(a))
	}
}

// bitwiseDistance256 is a byte-level reference for the word-wise popcount.
func bitwiseDistance256(a, b Hash256) int {
	ab, bb := a.Bytes(), b.Bytes()
	var d int
	for i := range ab {
		d += bits.OnesCount8(ab[i] ^ bb[i])
	}
	return d
}

func TestHash256DistanceMatchesByteReference(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		a := Hash256{rng.Uint64(), rng.Uint64(), rng.Uint64(), rng.Uint64()}
		b := Hash256{rng.Uint64(), rng.Uint64(), rng.Uint64(), rng.Uint64()}
		require.Equal(t, bitwiseDistance256(a, b), a.Distance(b))
	}
}

func TestHash64KnownDistances(t *testing.T) {
	assert.Equal(t, 12, Hash64(0).Distance(Hash64(0xFFF)))
	assert.Equal(t, 16, Hash64(0).Distance(Hash64(0xFFFF)))
	assert.Equal(t, 1, Hash64(0).Distance(Hash64(1<<63)))
}
