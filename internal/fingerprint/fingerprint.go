package fingerprint

import "armsim/internal/token"

// Params bundles the noise and guarantee thresholds (spec.md §4.2).
// Window size w = Guarantee - Noise + 1.
type Params struct {
	Noise     int // k
	Guarantee int // t
}

// Window returns w = t - k + 1.
func (p Params) Window() int { return p.Guarantee - p.Noise + 1 }

// Result is the outcome of fingerprinting one token-kind stream: the
// winnowed set used for cross-project indexing, the dense k-gram hash
// stream the winnowed set was drawn from (kept so the matcher can
// extend a seed position-by-position against every underlying k-gram,
// not only the sparse winnowed ones — spec.md §4.4), and whether the
// stream was too short to fingerprint at all (fewer than Noise tokens,
// spec.md §4.2 "Edge policy").
type Result struct {
	Fingerprints []Fingerprint
	Hashes       []uint64
	TooShort     bool
}

// Compute computes the k-gram hashes of kinds and winnows them per
// params. If kinds has fewer than params.Noise tokens, Result.TooShort
// is set and Fingerprints/Hashes are empty (the caller is responsible
// for emitting the Fingerprint warning spec.md §4.2 calls for).
func Compute(kinds []token.Kind, params Params) Result {
	if len(kinds) < params.Noise {
		return Result{TooShort: true}
	}

	hashes := KGramHashes(kinds, params.Noise)
	w := params.Window()
	return Result{Fingerprints: Winnow(hashes, w), Hashes: hashes}
}
