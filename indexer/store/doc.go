// Package store reads and writes fingerprint dataset files: a fixed 32-byte
// header followed by count fixed-width fingerprints, little-endian. Reads
// are mmap-backed so a million-item dataset can be handed to the index
// without a copy.
package store
