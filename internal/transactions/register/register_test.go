package register

import (
	"testing"

	"gargantua/internal/curve"
	"gargantua/internal/transcript"
)

func genuineProof(sk *curve.Scalar, salt string) *Proof {
	pk := curve.ScalarBaseMult(sk)
	pkEnc := pk.Encode()
	r := curve.HashToScalar("register-test/nonce", pkEnc[:], []byte(salt))
	commitment := curve.ScalarBaseMult(r)

	tr := transcript.New()
	tr.AppendBytes("domain", []byte("gargantua/register"))
	tr.AppendPoint("public_key", pk)
	tr.AppendPoint("R", commitment)
	challenge := tr.ChallengeScalar("challenge")
	response := r.Add(challenge.Mul(sk))

	return &Proof{PublicKey: pkEnc, Challenge: challenge.Encode(), Response: response.Encode()}
}

func TestVerifyAcceptsGenuineProof(t *testing.T) {
	sk := curve.HashToScalar("register-test/sk")
	if err := Verify(genuineProof(sk, "a")); err != nil {
		t.Fatalf("genuine proof rejected: %v", err)
	}
}

func TestVerifyRejectsTamperedResponse(t *testing.T) {
	sk := curve.HashToScalar("register-test/sk2")
	proof := genuineProof(sk, "b")
	proof.Response = curve.HashToScalar("register-test/garbage").Encode()
	if err := Verify(proof); err != ErrChallengeMismatch {
		t.Fatalf("expected ErrChallengeMismatch, got %v", err)
	}
}

func TestVerifyRejectsTamperedChallenge(t *testing.T) {
	sk := curve.HashToScalar("register-test/sk3")
	proof := genuineProof(sk, "c")
	proof.Challenge = curve.HashToScalar("register-test/other-challenge").Encode()
	if err := Verify(proof); err != ErrChallengeMismatch {
		t.Fatalf("expected ErrChallengeMismatch, got %v", err)
	}
}

func TestVerifyRejectsProofBoundToWrongKey(t *testing.T) {
	sk := curve.HashToScalar("register-test/sk4")
	proof := genuineProof(sk, "d")
	otherPk := curve.ScalarBaseMult(curve.HashToScalar("register-test/other-sk"))
	proof.PublicKey = otherPk.Encode()
	if err := Verify(proof); err != ErrChallengeMismatch {
		t.Fatalf("expected ErrChallengeMismatch, got %v", err)
	}
}

func TestVerifyRejectsMalformedFields(t *testing.T) {
	sk := curve.HashToScalar("register-test/sk5")
	proof := genuineProof(sk, "e")
	proof.PublicKey = [32]byte{0xFF} // not a canonical point encoding in general
	err := Verify(proof)
	if err != ErrMalformedProof && err != ErrChallengeMismatch {
		t.Fatalf("expected ErrMalformedProof or ErrChallengeMismatch, got %v", err)
	}
}
