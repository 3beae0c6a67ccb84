package fingerprint

import "testing"

func TestCompute_TooShort(t *testing.T) {
	result := Compute(kindSeq(1, 2), Params{Noise: 5, Guarantee: 8})
	if !result.TooShort {
		t.Fatal("expected TooShort for a stream shorter than the noise threshold")
	}
	if len(result.Fingerprints) != 0 {
		t.Fatalf("expected no fingerprints when TooShort, got %v", result.Fingerprints)
	}
}

func TestCompute_WindowSize(t *testing.T) {
	p := Params{Noise: 5, Guarantee: 9}
	if got, want := p.Window(), 5; got != want {
		t.Fatalf("Window() = %d, want %d", got, want)
	}
}

func TestCompute_ProducesFingerprints(t *testing.T) {
	kinds := kindSeq(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)
	result := Compute(kinds, Params{Noise: 3, Guarantee: 5})
	if result.TooShort {
		t.Fatal("did not expect TooShort")
	}
	if len(result.Fingerprints) == 0 {
		t.Fatal("expected at least one fingerprint")
	}
}

func TestCompute_HashesIsDenseAndAlignedWithFingerprintPositions(t *testing.T) {
	kinds := kindSeq(5, 1, 9, 2, 8, 3, 7, 4, 6)
	params := Params{Noise: 4, Guarantee: 6}
	result := Compute(kinds, params)

	if len(result.Hashes) != len(kinds)-params.Noise+1 {
		t.Fatalf("expected %d dense hashes, got %d", len(kinds)-params.Noise+1, len(result.Hashes))
	}
	for _, fp := range result.Fingerprints {
		if result.Hashes[fp.Position] != fp.Hash {
			t.Fatalf("fingerprint at position %d has hash %d, but dense hashes[%d] = %d", fp.Position, fp.Hash, fp.Position, result.Hashes[fp.Position])
		}
	}
}

func TestCompute_IdenticalStreamsProduceIdenticalFingerprints(t *testing.T) {
	params := Params{Noise: 4, Guarantee: 6}
	a := Compute(kindSeq(5, 1, 9, 2, 8, 3, 7, 4, 6), params)
	b := Compute(kindSeq(5, 1, 9, 2, 8, 3, 7, 4, 6), params)

	if len(a.Fingerprints) != len(b.Fingerprints) {
		t.Fatalf("expected identical fingerprint counts, got %d vs %d", len(a.Fingerprints), len(b.Fingerprints))
	}
	for i := range a.Fingerprints {
		if a.Fingerprints[i] != b.Fingerprints[i] {
			t.Fatalf("fingerprint %d differs: %v vs %v", i, a.Fingerprints[i], b.Fingerprints[i])
		}
	}
}
