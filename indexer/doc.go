// Package indexer provides the multi-index hashing (MIH) near-duplicate
// index: approximate Hamming-distance search over a batch of fixed-width
// fingerprints, and grouping of mutual near-duplicates.
//
// Quick start:
//
//	idx := indexer.New(hashes) // []hamming.Hash64 or []hamming.Hash256
//	groups := indexer.FindGroups(idx, 5)
//
// The index is built once per batch and is read-only afterwards; there is no
// incremental insert or delete. FindGroups runs neighbor discovery in
// parallel across all fingerprints and then folds the neighbor relation into
// disjoint groups of size >= 2.
package indexer
