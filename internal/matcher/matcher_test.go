package matcher

import (
	"testing"

	"go.uber.org/zap"

	"armsim/internal/fingerprint"
	"armsim/internal/project"
)

func TestRun_FindsSharedFingerprintsAcrossProjects(t *testing.T) {
	logger := zap.NewNop()

	shared := []fingerprint.Fingerprint{
		{Hash: 10, Position: 0},
		{Hash: 11, Position: 1},
		{Hash: 12, Position: 2},
	}
	sharedHashes := []uint64{10, 11, 12}

	projects := []ProjectFingerprints{
		{Name: "alice", Fingerprints: shared, Hashes: sharedHashes, Origins: flatOrigins("alice.s", 10)},
		{Name: "bob", Fingerprints: shared, Hashes: sharedHashes, Origins: flatOrigins("bob.s", 10)},
		{Name: "carol", Fingerprints: []fingerprint.Fingerprint{{Hash: 999, Position: 0}}, Hashes: []uint64{999}, Origins: flatOrigins("carol.s", 10)},
	}

	pairs, warnings := Run(projects, Options{Noise: 3, MaxPostingList: 100}, logger)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected exactly one matching pair (alice,bob), got %v", pairs)
	}
	if pairs[0].ProjectA != "alice" || pairs[0].ProjectB != "bob" {
		t.Fatalf("unexpected pair: %+v", pairs[0])
	}
	if len(pairs[0].Matches) == 0 {
		t.Fatal("expected at least one match region")
	}
}

func TestRun_PostingListGuardExcludesCommonHash(t *testing.T) {
	logger := zap.NewNop()

	common := uint64(7)
	projects := make([]ProjectFingerprints, 5)
	for i := range projects {
		projects[i] = ProjectFingerprints{
			Name:         string(rune('a' + i)),
			Fingerprints: []fingerprint.Fingerprint{{Hash: common, Position: 0}},
			Hashes:       []uint64{common},
			Origins:      flatOrigins("f.s", 10),
		}
	}

	pairs, warnings := Run(projects, Options{Noise: 3, MaxPostingList: 2}, logger)
	if len(pairs) != 0 {
		t.Fatalf("expected the common hash to be excluded by the posting-list guard, got pairs %v", pairs)
	}
	if len(warnings) == 0 {
		t.Fatal("expected a warning recording the excluded hash")
	}
}

func TestMatchPair_ExtendsConsecutiveRun(t *testing.T) {
	a := ProjectFingerprints{
		Name:         "a",
		Fingerprints: []fingerprint.Fingerprint{{Hash: 1, Position: 0}, {Hash: 2, Position: 1}, {Hash: 3, Position: 2}},
		Hashes:       []uint64{1, 2, 3},
		Origins:      flatOrigins("a.s", 10),
	}
	b := ProjectFingerprints{
		Name:         "b",
		Fingerprints: []fingerprint.Fingerprint{{Hash: 1, Position: 0}, {Hash: 2, Position: 1}, {Hash: 3, Position: 2}},
		Hashes:       []uint64{1, 2, 3},
		Origins:      flatOrigins("b.s", 10),
	}

	matches := matchPair(a, b, Options{Noise: 3})
	if len(matches) != 1 {
		t.Fatalf("expected the three consecutive anchors to merge into a single match, got %v", matches)
	}
	if matches[0].Tokens != 5 { // hash positions 0..2 plus k=3 -> end = 2+3 = 5
		t.Fatalf("expected a 5-token match, got %d", matches[0].Tokens)
	}
}

// TestMatchPair_ExtendsThroughWinnowedGaps is the regression case for
// spec.md §4.4's "as long as the underlying k-gram hashes (not only
// winnowed ones) agree": winnowing only kept two of ten underlying
// k-gram positions as fingerprints, with three dense, un-winnowed
// positions separating them. Extending anchor-to-anchor across the
// sparse Fingerprints slice alone would treat those two fingerprints as
// adjacent and stop the run far short of its true boundary; extending
// across the dense Hashes stream must instead walk through every
// intervening position and reach the full ten-wide run.
func TestMatchPair_ExtendsThroughWinnowedGaps(t *testing.T) {
	noise := 3
	hashes := []uint64{100, 101, 102, 103, 104, 105, 106, 107, 108, 109}

	newSide := func(name string) ProjectFingerprints {
		return ProjectFingerprints{
			Name: name,
			Fingerprints: []fingerprint.Fingerprint{
				{Hash: hashes[2], Position: 2},
				{Hash: hashes[6], Position: 6},
			},
			Hashes:  hashes,
			Origins: flatOrigins(name+".s", len(hashes)+noise-1),
		}
	}

	matches := matchPair(newSide("a"), newSide("b"), Options{Noise: noise})
	if len(matches) != 1 {
		t.Fatalf("expected the two winnowed anchors to extend into a single maximal run, got %v", matches)
	}
	wantTokens := len(hashes) - 1 + noise
	if matches[0].Tokens != wantTokens {
		t.Fatalf("expected a %d-token match spanning the entire dense hash stream, got %d", wantTokens, matches[0].Tokens)
	}
}

func flatOrigins(path string, n int) []project.Origin {
	o := make([]project.Origin, n)
	for i := range o {
		o[i].Path = path
		o[i].Span.Start = i
		o[i].Span.End = i + 1
	}
	return o
}
