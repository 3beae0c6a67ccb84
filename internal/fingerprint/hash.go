// Package fingerprint implements spec.md §4.2: polynomial rolling-hash
// k-gram hashing over a project's token-kind stream, followed by
// winnowing to select a sparse, locally-optimal fingerprint set.
package fingerprint

import "armsim/internal/token"

// Polynomial rolling-hash constants, fixed per spec.md §4.2/§9 ("the
// concrete base and modulus are implementation choices but MUST be
// fixed"). base is an odd 64-bit constant chosen for good bit
// dispersion across small-alphabet Kind values; modulus is 2^64 (i.e.
// the computation is simply allowed to wrap, which is both free and
// still deterministic across runs in Go's unsigned-overflow semantics).
const rollingBase uint64 = 1099511628211 // FNV-1a's prime, reused for its known-good dispersion

// KGramHashes computes the rolling hash of every k-gram of token kinds
// in kinds, i.e. hashes[i] is the hash of kinds[i:i+k]. len(hashes) ==
// len(kinds)-k+1, or 0 if len(kinds) < k.
func KGramHashes(kinds []token.Kind, k int) []uint64 {
	n := len(kinds)
	if n < k || k <= 0 {
		return nil
	}

	// basePowK1 = rollingBase^(k-1), needed to remove the outgoing term
	// when rolling the window forward by one position.
	basePowK1 := uint64(1)
	for i := 0; i < k-1; i++ {
		basePowK1 *= rollingBase
	}

	hashes := make([]uint64, n-k+1)

	var h uint64
	for i := 0; i < k; i++ {
		h = h*rollingBase + uint64(kinds[i])
	}
	hashes[0] = h

	for i := 1; i <= n-k; i++ {
		h -= uint64(kinds[i-1]) * basePowK1
		h *= rollingBase
		h += uint64(kinds[i+k-1])
		hashes[i] = h
	}

	return hashes
}
