// Package starter implements the starter-code filter of spec.md §4.3:
// fingerprints shared with instructor-provided starter code are
// excluded from matching, since they were never a student's own work
// and would otherwise produce false-positive matches between every
// pair of students who started from the same skeleton.
package starter

import (
	"github.com/bits-and-blooms/bloom/v3"

	"armsim/internal/fingerprint"
)

// Set is the union of every starter-code fingerprint hash, gated by a
// bloom filter so the common case — a project fingerprint that isn't
// starter code — is rejected without touching the exact hash set.
// Grounded on the teacher's NewNGramTrieWithBloom, which uses a bloom
// filter the same way: as a cheap pre-check in front of an expensive
// exact lookup, not as a replacement for it.
type Set struct {
	filter *bloom.BloomFilter
	hashes map[uint64]struct{}
}

// Build unions the fingerprints of every starter-code project into one
// Set. falsePositiveRate controls the bloom filter's tuning; a
// starter-code corpus is typically small, so the filter is sized
// generously to keep its own false-positive rate negligible next to
// the exact set it guards.
func Build(starterFingerprints [][]fingerprint.Fingerprint, falsePositiveRate float64) *Set {
	total := uint(0)
	for _, fps := range starterFingerprints {
		total += uint(len(fps))
	}
	if total == 0 {
		total = 1
	}

	s := &Set{
		filter: bloom.NewWithEstimates(total, falsePositiveRate),
		hashes: make(map[uint64]struct{}, total),
	}
	for _, fps := range starterFingerprints {
		for _, fp := range fps {
			s.add(fp.Hash)
		}
	}
	return s
}

func (s *Set) add(hash uint64) {
	if _, seen := s.hashes[hash]; seen {
		return
	}
	s.hashes[hash] = struct{}{}
	s.filter.Add(hashKey(hash))
}

// Contains reports whether hash belongs to the starter-code fingerprint
// union. The bloom filter is consulted first: a negative there is
// certain, so the exact map is only ever probed on a possible hit.
func (s *Set) Contains(hash uint64) bool {
	if s == nil || len(s.hashes) == 0 {
		return false
	}
	if !s.filter.Test(hashKey(hash)) {
		return false
	}
	_, ok := s.hashes[hash]
	return ok
}

// Filter returns the subset of fps whose Hash is not in the
// starter-code set, preserving order.
func (s *Set) Filter(fps []fingerprint.Fingerprint) []fingerprint.Fingerprint {
	if s == nil || len(s.hashes) == 0 {
		return fps
	}
	out := make([]fingerprint.Fingerprint, 0, len(fps))
	for _, fp := range fps {
		if !s.Contains(fp.Hash) {
			out = append(out, fp)
		}
	}
	return out
}

func hashKey(hash uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(hash >> (8 * i))
	}
	return b
}
