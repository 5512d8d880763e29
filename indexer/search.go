package indexer

import "github.com/ic-timon/hamdex/hamming"

// noSkip is passed as the skip id when the query is not itself an indexed
// item.
const noSkip = ^uint32(0)

// Searcher holds the per-query scratch (visited set and result buffer) for
// probing one index. It is reused across queries to avoid per-query
// allocation; a Searcher is not safe for concurrent use, each goroutine
// owns its own.
type Searcher[F hamming.Fingerprint[F]] struct {
	idx     *Index[F]
	visited *sparseSet
	results []uint32
}

// NewSearcher creates a Searcher bound to idx.
func NewSearcher[F hamming.Fingerprint[F]](idx *Index[F]) *Searcher[F] {
	return &Searcher[F]{
		idx:     idx,
		visited: newSparseSet(idx.Len()),
		results: make([]uint32, 0, 16),
	}
}

// Search returns the ids of all indexed fingerprints within maxDist of
// query. If query itself is indexed its own id is included (distance zero).
// The returned slice aliases internal scratch and is only valid until the
// next call.
func (s *Searcher[F]) Search(query F, maxDist int) []uint32 {
	return s.search(query, maxDist, noSkip)
}

// SearchItem is Search for the indexed fingerprint id, with id itself
// excluded from the result.
func (s *Searcher[F]) SearchItem(id uint32, maxDist int) []uint32 {
	return s.search(s.idx.Hash(id), maxDist, id)
}

// search probes, for every chunk position, the bucket matching the query's
// chunk value and, when the per-chunk tolerance is at least one bit, every
// bucket reachable by flipping a single bit of that value. By the pigeonhole
// principle any fingerprint within maxDist must agree with the query on some
// chunk up to maxDist/Chunks flipped bits, so for maxDist <=
// Layout.MaxDistance every true neighbor lands in at least one probed
// bucket. Bucket co-membership is only a candidate signal: every candidate
// is deduplicated through the visited set and verified by its true
// full-width distance.
func (s *Searcher[F]) search(query F, maxDist int, skip uint32) []uint32 {
	s.visited.reset()
	s.results = s.results[:0]

	layout := s.idx.layout
	chunkTolerance := maxDist / layout.Chunks

	for k := 0; k < layout.Chunks; k++ {
		qc := query.Chunk(k)
		s.probe(query, k, qc, maxDist, skip)
		if chunkTolerance >= 1 {
			for bit := 0; bit < layout.ChunkBits; bit++ {
				s.probe(query, k, qc^(1<<bit), maxDist, skip)
			}
		}
	}
	return s.results
}

func (s *Searcher[F]) probe(query F, k int, val uint16, maxDist int, skip uint32) {
	for _, id := range s.idx.Bucket(k, val) {
		if id == skip || s.visited.mark(id) {
			continue
		}
		if query.Distance(s.idx.Hash(id)) <= maxDist {
			s.results = append(s.results, id)
		}
	}
}
