package fingerprint

// Fingerprint is a single (hash, position) pair surviving winnowing.
// Position is the logical token index of the k-gram's first token
// (spec.md §3).
type Fingerprint struct {
	Hash     uint64
	Position int
}

// Winnow selects, from every window of w consecutive k-gram hashes, the
// minimum hash — rightmost on ties — and records it as a fingerprint,
// skipping a window whose selected position was already recorded by the
// previous window (spec.md §4.2). It guarantees that every substring of
// length >= guarantee threshold t contains at least one selected
// fingerprint, where w = t-k+1.
//
// Edge policy: if hashes is shorter than w, the whole slice is treated
// as one window (spec.md §4.2 "Edge policy": best-effort below the
// guarantee threshold, but at least one window is still run as long as
// hashes is non-empty).
func Winnow(hashes []uint64, w int) []Fingerprint {
	if len(hashes) == 0 {
		return nil
	}
	if w < 1 {
		w = 1
	}
	if w > len(hashes) {
		w = len(hashes)
	}

	var fps []Fingerprint
	lastPos := -1

	for start := 0; start+w <= len(hashes); start++ {
		minPos := start
		minHash := hashes[start]
		for i := start + 1; i < start+w; i++ {
			if hashes[i] <= minHash {
				minHash = hashes[i]
				minPos = i
			}
		}
		if minPos != lastPos {
			fps = append(fps, Fingerprint{Hash: minHash, Position: minPos})
			lastPos = minPos
		}
	}

	return fps
}
