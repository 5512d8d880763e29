package indexer

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ic-timon/hamdex/hamming"
)

// FindGroups collapses the within-maxDist neighbor relation over idx into
// disjoint groups of ids, using the default Config.
//
// Phase 1 discovers, in parallel, each fingerprint's true neighbors within
// maxDist. Phase 2 walks ids in ascending order and greedily opens a group
// at each unclaimed id with neighbors, absorbing the unclaimed ids from its
// own neighbor list. Absorption is one hop: neighbors of absorbed neighbors
// are not pulled in, so groups are stars anchored at their lowest id rather
// than transitive closures. Every returned group has size >= 2; an item
// with no neighbor within maxDist appears in no group.
//
// Group membership is deterministic for a given input and maxDist. For full
// recall maxDist must not exceed the encoding's Layout.MaxDistance; larger
// values are accepted but only single-bit-flip buckets are probed, so some
// true neighbors may be missed.
func FindGroups[F hamming.Fingerprint[F]](idx *Index[F], maxDist int) [][]uint32 {
	return FindGroupsConfig(idx, maxDist, nil)
}

// FindGroupsConfig is FindGroups with explicit grouping parameters.
func FindGroupsConfig[F hamming.Fingerprint[F]](idx *Index[F], maxDist int, cfg *Config) [][]uint32 {
	cfg = cfg.OrDefault()
	n := idx.Len()
	if n == 0 {
		return nil
	}

	// Phase 1: parallel neighbor discovery. Workers claim batches of ids
	// off a shared cursor and write only their own adjacency slots, each
	// reusing one Searcher's scratch across its batches. Wait is the hard
	// barrier phase 2 depends on.
	adjacency := make([][]uint32, n)
	var cursor atomic.Int64
	g := new(errgroup.Group)
	for w := 0; w < cfg.Workers; w++ {
		g.Go(func() error {
			s := NewSearcher(idx)
			batch := int64(cfg.BatchSize)
			for {
				start := cursor.Add(batch) - batch
				if start >= int64(n) {
					return nil
				}
				end := min(start+batch, int64(n))
				for i := start; i < end; i++ {
					if ns := s.SearchItem(uint32(i), maxDist); len(ns) > 0 {
						adjacency[i] = append([]uint32(nil), ns...)
					}
				}
			}
		})
	}
	_ = g.Wait() // workers have no fallible paths

	// Phase 2: sequential greedy clustering.
	claimed := make([]bool, n)
	var groups [][]uint32
	for i := 0; i < n; i++ {
		if claimed[i] || len(adjacency[i]) == 0 {
			continue
		}
		group := make([]uint32, 0, len(adjacency[i])+1)
		group = append(group, uint32(i))
		claimed[i] = true
		for _, nb := range adjacency[i] {
			if !claimed[nb] {
				claimed[nb] = true
				group = append(group, nb)
			}
		}
		if len(group) > 1 {
			groups = append(groups, group)
		}
	}
	return groups
}
