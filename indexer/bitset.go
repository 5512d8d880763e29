package indexer

// sparseSet is a fixed-capacity bitmap with a dirty-word list, reused once
// per query across potentially millions of queries. reset only zeroes the
// words actually touched since the last reset (typically tens), instead of
// the whole bitmap.
type sparseSet struct {
	words []uint64
	dirty []int
}

func newSparseSet(n int) *sparseSet {
	return &sparseSet{
		words: make([]uint64, (n+63)/64),
		dirty: make([]int, 0, 512),
	}
}

// mark sets bit id and reports whether it was already set. A word is
// recorded dirty the first time it becomes non-zero.
func (s *sparseSet) mark(id uint32) bool {
	w := id >> 6
	bit := uint64(1) << (id & 63)
	word := s.words[w]
	if word&bit != 0 {
		return true
	}
	if word == 0 {
		s.dirty = append(s.dirty, int(w))
	}
	s.words[w] = word | bit
	return false
}

// reset zeroes the dirty words and empties the dirty list.
func (s *sparseSet) reset() {
	for _, w := range s.dirty {
		s.words[w] = 0
	}
	s.dirty = s.dirty[:0]
}
