package bulletproof

import (
	"encoding/binary"
	"errors"
	"testing"

	"gargantua/internal/curve"
	"gargantua/internal/transcript"
)

func freshTranscript() *transcript.Transcript {
	tr := transcript.New()
	tr.AppendBytes("domain", []byte("bulletproof/test"))
	return tr
}

// structuralProof builds a proof with the given number of IPA rounds,
// filled with identity points/zero scalars; callers pick the round count,
// either the one VerifyAggregated expects or a deliberately wrong one. It is not a sound proof — only a well-formed one —
// since generating a genuine proof requires a client-side prover that is
// out of this verifier's scope.
func structuralProof(rounds int) *RangeProof {
	identity := curve.Identity()
	zero := curve.ScalarZero()
	ipa := &InnerProductProof{A: zero, B: zero}
	for i := 0; i < rounds; i++ {
		ipa.L = append(ipa.L, identity)
		ipa.R = append(ipa.R, identity)
	}
	return &RangeProof{A: identity, S: identity, T1: identity, T2: identity, TauX: zero, Mu: zero, THat: zero, IPA: ipa}
}

func TestVerifyAggregatedRejectsEmptyCommitments(t *testing.T) {
	err := VerifyAggregated(freshTranscript(), nil, structuralProof(0))
	if !errors.Is(err, ErrProofStructure) {
		t.Fatalf("expected ErrProofStructure for zero commitments, got %v", err)
	}
}

func TestVerifyAggregatedRejectsNonPowerOfTwoAggregation(t *testing.T) {
	commitments := []*curve.Point{curve.Identity(), curve.Identity(), curve.Identity()}
	err := VerifyAggregated(freshTranscript(), commitments, structuralProof(7))
	if !errors.Is(err, ErrProofStructure) {
		t.Fatalf("expected ErrProofStructure for m=3, got %v", err)
	}
}

func TestVerifyAggregatedRejectsAggregationBeyondMax(t *testing.T) {
	commitments := make([]*curve.Point, curve.MaxAggregation*2)
	for i := range commitments {
		commitments[i] = curve.Identity()
	}
	err := VerifyAggregated(freshTranscript(), commitments, structuralProof(6))
	if !errors.Is(err, ErrProofStructure) {
		t.Fatalf("expected ErrProofStructure for m beyond MaxAggregation, got %v", err)
	}
}

func TestVerifyAggregatedRejectsWrongIPARoundCount(t *testing.T) {
	commitments := []*curve.Point{curve.Identity()} // m=1, N=32, k=5
	err := VerifyAggregated(freshTranscript(), commitments, structuralProof(3))
	if !errors.Is(err, ErrProofStructure) {
		t.Fatalf("expected ErrProofStructure for wrong round count, got %v", err)
	}
}

func TestVerifyAggregatedRejectsMissingIPA(t *testing.T) {
	commitments := []*curve.Point{curve.Identity()}
	proof := structuralProof(5)
	proof.IPA = nil
	err := VerifyAggregated(freshTranscript(), commitments, proof)
	if !errors.Is(err, ErrProofStructure) {
		t.Fatalf("expected ErrProofStructure for nil IPA, got %v", err)
	}
}

func TestVerifyAggregatedRejectsUnsoundStructuralProof(t *testing.T) {
	// A structurally valid but unsound proof (no real witness behind it)
	// must still fail the t-polynomial or inner-product identity — it must
	// never be accepted just because its shape is right.
	commitments := []*curve.Point{curve.Identity()}
	err := VerifyAggregated(freshTranscript(), commitments, structuralProof(5))
	if err == nil {
		t.Fatal("an unsound structural proof was accepted")
	}
}

func TestRangeProofWireRoundTrip(t *testing.T) {
	proof := structuralProof(5)
	proof.IPA.A = curve.ScalarFromUint64(7)
	proof.IPA.B = curve.ScalarFromUint64(9)
	proof.TauX = curve.ScalarFromUint64(3)

	encoded := proof.Encode()
	decoded, consumed, err := DecodeRangeProof(encoded)
	if err != nil {
		t.Fatalf("DecodeRangeProof: %v", err)
	}
	if consumed != len(encoded) {
		t.Fatalf("consumed %d bytes, encoded length was %d", consumed, len(encoded))
	}
	if !decoded.IPA.A.Equal(proof.IPA.A) || !decoded.IPA.B.Equal(proof.IPA.B) {
		t.Fatal("IPA scalars did not round-trip")
	}
	if !decoded.TauX.Equal(proof.TauX) {
		t.Fatal("TauX did not round-trip")
	}
	if len(decoded.IPA.L) != 5 || len(decoded.IPA.R) != 5 {
		t.Fatalf("round count did not round-trip: got %d", len(decoded.IPA.L))
	}
}

func TestDecodeRangeProofRejectsTruncatedBuffer(t *testing.T) {
	proof := structuralProof(5)
	encoded := proof.Encode()
	if _, _, err := DecodeRangeProof(encoded[:len(encoded)-10]); err == nil {
		t.Fatal("expected error decoding a truncated buffer")
	}
}

func TestDecodeRangeProofRejectsOversizedRoundCount(t *testing.T) {
	proof := structuralProof(0)
	encoded := proof.Encode()
	// The round-count field sits right after the 7 fixed 32-byte fields.
	roundOffset := 7 * 32
	binary.LittleEndian.PutUint32(encoded[roundOffset:], 33)
	if _, _, err := DecodeRangeProof(encoded); err == nil {
		t.Fatal("expected error decoding a round count above 32")
	}
}
