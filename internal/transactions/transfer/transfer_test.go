package transfer

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

func balancedStatement(amount uint64) *Statement {
	r1 := curve.HashToScalar("transfer-test/r1")
	c1 := curve.Commit(curve.ScalarFromUint64(amount), r1)
	remainder := curve.Commit(curve.ScalarFromUint64(amount), r1)
	fee := curve.Commit(curve.ScalarZero(), curve.ScalarZero())
	pk := curve.ScalarBaseMult(curve.HashToScalar("transfer-test/sk"))

	return &Statement{
		Epoch:         1,
		Nonce:         curve.HashToScalar("transfer-test/nonce").Encode(),
		Beneficiary:   curve.HashToScalar("transfer-test/beneficiary").Encode(),
		Commitments:   []*curve.Point{c1},
		PublicKeys:    []*curve.Point{pk},
		AccountLeft:   []*curve.Point{c1},
		AccountRight:  []*curve.Point{curve.Identity()},
		Remainder:     remainder,
		FeeCommitment: fee,
	}
}

func TestVerifyRejectsEmptyInputs(t *testing.T) {
	stmt := &Statement{Commitments: nil, PublicKeys: nil}
	err := Verify(stmt, &Proof{Ownership: nil})
	if err != ErrInputCountZero {
		t.Fatalf("expected ErrInputCountZero, got %v", err)
	}
}

func TestVerifyRejectsMismatchedInputCounts(t *testing.T) {
	stmt := balancedStatement(10)
	stmt.PublicKeys = append(stmt.PublicKeys, stmt.PublicKeys[0])
	err := Verify(stmt, &Proof{Ownership: []OwnershipProof{{}}})
	if err != ErrInputCountZero {
		t.Fatalf("expected ErrInputCountZero for mismatched public-key count, got %v", err)
	}
}

func TestVerifyRejectsImbalancedStatement(t *testing.T) {
	stmt := balancedStatement(10)
	// Perturb the remainder so inputs no longer sum to remainder + fee.
	stmt.Remainder = stmt.Remainder.Add(curve.ScalarBaseMult(curve.ScalarFromUint64(1)))
	proof := &Proof{Range: structuralRangeProof(6), Ownership: []OwnershipProof{{}}}
	err := Verify(stmt, proof)
	if err != ErrBalanceFailed {
		t.Fatalf("expected ErrBalanceFailed, got %v", err)
	}
}

func TestVerifyPropagatesMalformedRangeProof(t *testing.T) {
	stmt := balancedStatement(10)
	// The balance identity holds, so this must reach the range-proof
	// check and fail there on the wrong IPA round count (m=2 needs N=64,
	// k=6; this supplies 3).
	proof := &Proof{Range: structuralRangeProof(3), Ownership: []OwnershipProof{{}}}
	err := Verify(stmt, proof)
	if err != bulletproof.ErrProofStructure {
		t.Fatalf("expected ErrProofStructure, got %v", err)
	}
}
