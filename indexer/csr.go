package indexer

import "github.com/ic-timon/hamdex/hamming"

// Index is an immutable multi-index over one batch of fingerprints.
//
// For every chunk position k and chunk value v there is a bucket holding the
// ids of all fingerprints whose chunk k equals v. Buckets are stored in a
// flattened CSR layout: bucket (k, v) occupies
// values[offsets[flat]:offsets[flat+1]] with flat = k*Buckets + v. The three
// arrays are never mutated after New returns, so they may be shared freely
// across goroutines.
type Index[F hamming.Fingerprint[F]] struct {
	hashes  []F
	layout  hamming.Layout
	offsets []uint32
	values  []uint32
}

// New builds the index over hashes in two passes: a histogram over the
// flattened (chunk, value) space turned into boundary offsets by prefix sum,
// then a scatter of ids into values guided by per-bucket write cursors.
// O(n*Chunks) time and space. An empty input yields a valid empty index.
//
// The id of a fingerprint is its position in hashes; New keeps a reference
// to the slice, which the caller must not modify afterwards.
func New[F hamming.Fingerprint[F]](hashes []F) *Index[F] {
	var zero F
	layout := zero.Layout()
	buckets := layout.Buckets()
	total := layout.Chunks * buckets

	offsets := make([]uint32, total+1)
	for _, h := range hashes {
		for k := 0; k < layout.Chunks; k++ {
			flat := k*buckets + int(h.Chunk(k))
			offsets[flat+1]++
		}
	}
	for i := 1; i < len(offsets); i++ {
		offsets[i] += offsets[i-1]
	}

	values := make([]uint32, offsets[total])
	cursor := make([]uint32, total)
	copy(cursor, offsets[:total])
	for i, h := range hashes {
		for k := 0; k < layout.Chunks; k++ {
			flat := k*buckets + int(h.Chunk(k))
			values[cursor[flat]] = uint32(i)
			cursor[flat]++
		}
	}

	return &Index[F]{
		hashes:  hashes,
		layout:  layout,
		offsets: offsets,
		values:  values,
	}
}

// Len returns the number of indexed fingerprints.
func (x *Index[F]) Len() int { return len(x.hashes) }

// Hash returns the fingerprint stored under id.
func (x *Index[F]) Hash(id uint32) F { return x.hashes[id] }

// Layout returns the chunk decomposition of the indexed encoding.
func (x *Index[F]) Layout() hamming.Layout { return x.layout }

// Bucket returns the ids whose chunk k equals val. The returned slice
// aliases the index and must not be modified.
func (x *Index[F]) Bucket(k int, val uint16) []uint32 {
	flat := k*x.layout.Buckets() + int(val)
	return x.values[x.offsets[flat]:x.offsets[flat+1]]
}
