package indexer

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ic-timon/hamdex/hamming"
)

// groupSets normalizes groups for membership comparison: each group sorted,
// groups ordered by first member.
func groupSets(groups [][]uint32) [][]uint32 {
	out := make([][]uint32, len(groups))
	for i, g := range groups {
		out[i] = sorted(g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func TestGroupsDistanceTwelve(t *testing.T) {
	// 0x0 and 0xFFF are 12 bits apart: at threshold 12 they form one group.
	idx := New([]hamming.Hash64{0x0, 0xFFF})
	groups := FindGroups(idx, 12)

	require.Len(t, groups, 1)
	assert.Equal(t, []uint32{0, 1}, sorted(groups[0]))
}

func TestGroupsDistanceSixteenAboveThreshold(t *testing.T) {
	// 0x0 and 0xFFFF are 16 bits apart: no group at threshold 15.
	idx := New([]hamming.Hash64{0x0, 0xFFFF})
	assert.Empty(t, FindGroups(idx, 15))
}

func TestGroupsStarAbsorptionIsOneHop(t *testing.T) {
	// Chain: d(A,B)=4, d(B,C)=4, d(A,C)=8, threshold 5. The seed A absorbs
	// its direct neighbor B only; C is not in A's neighbor list and B is
	// already claimed when C seeds, so C stays ungrouped. No transitive
	// closure.
	a, b, c := hamming.Hash64(0x00), hamming.Hash64(0x0F), hamming.Hash64(0xFF)
	require.Equal(t, 4, a.Distance(b))
	require.Equal(t, 4, b.Distance(c))
	require.Equal(t, 8, a.Distance(c))

	idx := New([]hamming.Hash64{a, b, c})
	groups := FindGroups(idx, 5)

	require.Len(t, groups, 1)
	assert.Equal(t, []uint32{0, 1}, sorted(groups[0]))
}

func TestGroupsSingletonExcluded(t *testing.T) {
	// Two near duplicates and one far outlier: the outlier is in no group.
	idx := New([]hamming.Hash64{0x3, 0x1, 0xFFFF_FFFF_0000_0000})
	groups := FindGroups(idx, 2)

	require.Len(t, groups, 1)
	assert.Equal(t, []uint32{0, 1}, sorted(groups[0]))
}

func TestGroupsAllSizesAtLeastTwo(t *testing.T) {
	hashes := randomHash64s(2000, 11)
	idx := New(hashes)
	for _, g := range FindGroups(idx, 15) {
		assert.GreaterOrEqual(t, len(g), 2)
	}
}

func TestGroupsDisjoint(t *testing.T) {
	hashes := randomHash64s(2000, 12)
	// Plant overlapping near duplicates to force multi-member groups.
	rng := rand.New(rand.NewSource(13))
	for i := 0; i < 50; i++ {
		src, dst := rng.Intn(len(hashes)), rng.Intn(len(hashes))
		hashes[dst] = hashes[src] ^ hamming.Hash64(1<<rng.Intn(64))
	}
	idx := New(hashes)

	claimed := make(map[uint32]bool)
	for _, g := range FindGroups(idx, 5) {
		for _, id := range g {
			assert.False(t, claimed[id], "id %d in two groups", id)
			claimed[id] = true
		}
	}
}

func TestGroupsIdempotent(t *testing.T) {
	hashes := randomHash64s(3000, 14)
	rng := rand.New(rand.NewSource(15))
	for i := 0; i < 80; i++ {
		src, dst := rng.Intn(len(hashes)), rng.Intn(len(hashes))
		hashes[dst] = hashes[src] ^ hamming.Hash64(1<<rng.Intn(64))
	}

	first := groupSets(FindGroups(New(hashes), 5))
	second := groupSets(FindGroups(New(hashes), 5))
	assert.Equal(t, first, second)
}

func TestGroupsDeterministicAcrossWorkerCounts(t *testing.T) {
	hashes := randomHash64s(3000, 16)
	rng := rand.New(rand.NewSource(17))
	for i := 0; i < 80; i++ {
		src, dst := rng.Intn(len(hashes)), rng.Intn(len(hashes))
		hashes[dst] = hashes[src] ^ hamming.Hash64(1<<rng.Intn(64))
	}
	idx := New(hashes)

	serial := groupSets(FindGroupsConfig(idx, 5, &Config{Workers: 1}))
	parallel := groupSets(FindGroupsConfig(idx, 5, &Config{Workers: 8, BatchSize: 7}))
	assert.Equal(t, serial, parallel)
}

func TestGroups256(t *testing.T) {
	base := hamming.Hash256{}
	target := hamming.Hash256{}
	for i := 0; i < 30; i++ {
		target[i/64] |= 1 << (i % 64)
	}
	require.Equal(t, 30, base.Distance(target))

	idx := New([]hamming.Hash256{base, target})
	groups := FindGroups(idx, 30)
	require.Len(t, groups, 1)
	assert.Equal(t, []uint32{0, 1}, sorted(groups[0]))
}

func TestGroupsPlantedClusterAtScale(t *testing.T) {
	n := 1_000_000
	if testing.Short() {
		n = 100_000
	}
	rng := rand.New(rand.NewSource(18))

	hashes := make([]hamming.Hash64, n)
	for i := range hashes {
		hashes[i] = hamming.Hash64(rng.Uint64())
	}

	// Plant 5 near duplicates at random positions, pairwise distance 1-2.
	target := hamming.Hash64(0xABCD_1234_5678_90EF)
	cluster := []hamming.Hash64{
		target,
		target ^ 1,
		target ^ 2,
		target ^ 0x8000,
		target ^ 0x8001,
	}
	planted := make(map[int]bool)
	positions := make([]int, 0, len(cluster))
	for len(positions) < len(cluster) {
		pos := rng.Intn(n)
		if planted[pos] {
			continue
		}
		planted[pos] = true
		positions = append(positions, pos)
	}
	for i, pos := range positions {
		hashes[pos] = cluster[i]
	}

	idx := New(hashes)
	groups := FindGroups(idx, 5)

	// Exactly one group holds all five planted positions.
	holding := 0
	for _, g := range groups {
		members := make(map[uint32]bool, len(g))
		for _, id := range g {
			members[id] = true
		}
		all := true
		for _, pos := range positions {
			if !members[uint32(pos)] {
				all = false
				break
			}
		}
		if all {
			holding++
		}
	}
	require.Equal(t, 1, holding, "planted cluster not recalled in one group")
}
