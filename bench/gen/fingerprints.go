// Package gen provides synthetic fingerprints for benchmarks and dataset
// generation.
package gen

import (
	"math/rand"

	"github.com/ic-timon/hamdex/hamming"
)

// RandomHash64s returns n uniform random 64-bit fingerprints.
func RandomHash64s(n int, seed int64) []hamming.Hash64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]hamming.Hash64, n)
	for i := range out {
		out[i] = hamming.Hash64(rng.Uint64())
	}
	return out
}

// RandomHash256s returns n uniform random 256-bit fingerprints.
func RandomHash256s(n int, seed int64) []hamming.Hash256 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]hamming.Hash256, n)
	for i := range out {
		out[i] = hamming.Hash256{rng.Uint64(), rng.Uint64(), rng.Uint64(), rng.Uint64()}
	}
	return out
}

// Plant64 overwrites size distinct random positions in hashes with near
// duplicates of a random base value (member j is the base with bit j-1
// flipped, so every pair is within distance 2) and returns the positions.
// Random fingerprints elsewhere in the set are ~32 bits apart, so the
// planted members are the only guaranteed group at small thresholds.
func Plant64(hashes []hamming.Hash64, size int, rng *rand.Rand) []int {
	base := hamming.Hash64(rng.Uint64())
	positions := distinctPositions(len(hashes), size, rng)
	for j, pos := range positions {
		h := base
		if j > 0 {
			h ^= 1 << (j - 1)
		}
		hashes[pos] = h
	}
	return positions
}

// Plant256 is Plant64 for 256-bit fingerprints.
func Plant256(hashes []hamming.Hash256, size int, rng *rand.Rand) []int {
	base := hamming.Hash256{rng.Uint64(), rng.Uint64(), rng.Uint64(), rng.Uint64()}
	positions := distinctPositions(len(hashes), size, rng)
	for j, pos := range positions {
		h := base
		if j > 0 {
			bit := j - 1
			h[bit/64] ^= 1 << (bit % 64)
		}
		hashes[pos] = h
	}
	return positions
}

func distinctPositions(n, size int, rng *rand.Rand) []int {
	seen := make(map[int]struct{}, size)
	positions := make([]int, 0, size)
	for len(positions) < size {
		pos := rng.Intn(n)
		if _, ok := seen[pos]; ok {
			continue
		}
		seen[pos] = struct{}{}
		positions = append(positions, pos)
	}
	return positions
}
