package burn

import (
	"testing"

	"gargantua/internal/bulletproof"
	"gargantua/internal/curve"
)

func structuralRangeProof(rounds int) *bulletproof.RangeProof {
	identity := curve.Identity()
	zero := curve.ScalarZero()
	ipa := &bulletproof.InnerProductProof{A: zero, B: zero}
	for i := 0; i < rounds; i++ {
		ipa.L = append(ipa.L, identity)
		ipa.R = append(ipa.R, identity)
	}
	return &bulletproof.RangeProof{A: identity, S: identity, T1: identity, T2: identity, TauX: zero, Mu: zero, THat: zero, IPA: ipa}
}

func TestVerifyPropagatesMalformedRangeProof(t *testing.T) {
	pk := curve.ScalarBaseMult(curve.HashToScalar("burn-test/sk"))
	postBalance := curve.Commit(curve.ScalarFromUint64(40), curve.HashToScalar("burn-test/r"))

	stmt := &Statement{
		Epoch:       1,
		Nonce:       curve.HashToScalar("burn-test/nonce").Encode(),
		Amount:      10,
		PublicKey:   pk,
		PostBalance: postBalance,
	}
	// m=1 (a single post-balance commitment) needs N=32, k=5 IPA rounds;
	// this proof supplies 2, so the verifier must reject it on structure
	// before ever reaching the ownership check.
	proof := &Proof{Range: structuralRangeProof(2)}
	if err := Verify(stmt, proof); err != bulletproof.ErrProofStructure {
		t.Fatalf("expected ErrProofStructure, got %v", err)
	}
}

func TestVerifyRejectsUnsoundRangeProof(t *testing.T) {
	pk := curve.ScalarBaseMult(curve.HashToScalar("burn-test/sk2"))
	postBalance := curve.Commit(curve.ScalarFromUint64(40), curve.HashToScalar("burn-test/r2"))
	stmt := &Statement{
		Epoch:       1,
		Nonce:       curve.HashToScalar("burn-test/nonce2").Encode(),
		Amount:      10,
		PublicKey:   pk,
		PostBalance: postBalance,
	}
	// Right shape (5 rounds for m=1) but no real witness behind it: the
	// t-polynomial/inner-product identity must fail.
	proof := &Proof{Range: structuralRangeProof(5)}
	if err := Verify(stmt, proof); err == nil {
		t.Fatal("an unsound structural range proof was accepted")
	}
}
