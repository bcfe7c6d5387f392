// Package transfer verifies anonymous Transfer instructions: an
// aggregated range proof over the input and remaining-balance
// commitments, direct balance-conservation arithmetic on the public
// commitments, and a Schnorr ownership response per input, all bound to
// one Fiat-Shamir transcript.
package transfer

import (
	"errors"

	"gargantua/internal/bulletproof"
	"gargantua/internal/constraints"
	"gargantua/internal/curve"
	"gargantua/internal/transcript"
)

var (
	ErrMalformedProof       = errors.New("transfer: malformed proof field")
	ErrInputCountZero       = errors.New("transfer: no inputs or mismatched input counts")
	ErrOwnershipFailed      = errors.New("transfer: ownership response mismatch")
	ErrBalanceFailed        = errors.New("transfer: balance conservation failed")
	ErrAccountLinkageFailed = errors.New("transfer: account linkage check failed")
)

// OwnershipProof is one input's Schnorr proof of knowledge of the secret
// key behind its public key, bound to the transcript (spec §4.D
// "Ownership"), plus the Chaum-Pedersen equality-of-discrete-logs
// component that ties the same secret key to the account's own stored
// commitments (spec §4.D "Account linkage").
type OwnershipProof struct {
	Commitment        [32]byte // R_i = r_i*G, the prover's first message in base G
	LinkageCommitment [32]byte // R'_i = r_i*account_left_i, same nonce r_i, base account_left_i
	Response          [32]byte // s_i = r_i + c*sk_i, shared by both equations
}

// Proof bundles the aggregate range proof and the per-input ownership
// responses that accompany a Transfer instruction (spec §4.F "Transfer").
type Proof struct {
	Range      *bulletproof.RangeProof
	Ownership  []OwnershipProof
	FeeOpening [32]byte // encoding of the fee commitment's value-0 blinding point, i.e. fee*G
}

// Statement is the public data a Transfer instruction commits to, in the
// exact order the transcript absorbs it.
type Statement struct {
	Epoch         uint64
	Nonce         [32]byte
	Beneficiary   [32]byte
	Commitments   []*curve.Point // C_1..C_k, one per input
	PublicKeys    []*curve.Point // participant keys, aligned with Commitments
	AccountLeft   []*curve.Point // each input's real, settled commitment_left
	AccountRight  []*curve.Point // each input's real, settled commitment_right
	Remainder     *curve.Point   // D, the beneficiary's output commitment
	FeeCommitment *curve.Point
}

// Verify runs the checks of spec §4.F step 3-6 (nullifier uniqueness
// and epoch matching are the dispatcher's responsibility, not this
// package's — they require store state this package does not see).
func Verify(stmt *Statement, proof *Proof) error {
	k := len(stmt.Commitments)
	if k == 0 || len(stmt.PublicKeys) != k || len(proof.Ownership) != k ||
		len(stmt.AccountLeft) != k || len(stmt.AccountRight) != k {
		return ErrInputCountZero
	}

	tr := transcript.New()
	tr.AppendBytes("domain", []byte("gargantua/transfer"))
	tr.AppendUint64("epoch", stmt.Epoch)
	tr.AppendBytes("nonce", stmt.Nonce[:])
	tr.AppendBytes("beneficiary", stmt.Beneficiary[:])
	for i, c := range stmt.Commitments {
		tr.AppendPoint("commitment", c)
		tr.AppendPoint("public_key", stmt.PublicKeys[i])
		tr.AppendPoint("account_left", stmt.AccountLeft[i])
		tr.AppendPoint("account_right", stmt.AccountRight[i])
	}
	tr.AppendPoint("remainder", stmt.Remainder)
	tr.AppendPoint("fee", stmt.FeeCommitment)

	// Balance conservation is directly checkable on the public
	// commitments: Sum(C_i) - D - fee == identity (spec §4.D).
	if !constraints.VerifyBalanceConservation(stmt.Commitments, stmt.Remainder, stmt.FeeCommitment) {
		return ErrBalanceFailed
	}

	// Aggregated range proof over {C_i} union {account_left_i - C_i}. The
	// second half is the account-linkage sufficiency check (spec §4.D
	// "Account linkage"): it binds each input to its own account's real
	// settled balance instead of a self-chosen remainder, so a
	// registered-but-unfunded account (account_left_i == identity) cannot
	// construct a positive C_i and still pass — account_left_i - C_i then
	// opens to a negative value, which no honest range proof can cover.
	rangeTargets := make([]*curve.Point, 0, 2*k)
	rangeTargets = append(rangeTargets, stmt.Commitments...)
	for i, c := range stmt.Commitments {
		rangeTargets = append(rangeTargets, stmt.AccountLeft[i].Sub(c))
	}
	if err := bulletproof.VerifyAggregated(tr, rangeTargets, proof.Range); err != nil {
		return err
	}

	// Per-input Schnorr ownership response (spec §4.D "Ownership") plus
	// the account-linkage equality of discrete logs (spec §4.D "Account
	// linkage"): both share the nonce r_i and response s_i, one checked
	// in base G against the public key, the other in base account_left_i
	// against account_right_i — a Chaum-Pedersen proof that the secret
	// key behind the ownership proof is the same one the account's own
	// stored commitments were built with.
	for i, pk := range stmt.PublicKeys {
		r, err := curve.DecodePoint(proof.Ownership[i].Commitment[:])
		if err != nil {
			return ErrMalformedProof
		}
		linkage, err := curve.DecodePoint(proof.Ownership[i].LinkageCommitment[:])
		if err != nil {
			return ErrMalformedProof
		}
		s, err := curve.DecodeScalar(proof.Ownership[i].Response[:])
		if err != nil {
			return ErrMalformedProof
		}
		tr.AppendPoint("ownership_R", r)
		tr.AppendPoint("ownership_linkage_R", linkage)
		c := tr.ChallengeScalar("ownership_challenge")
		if !constraints.VerifySchnorr(pk, r, c, s) {
			return ErrOwnershipFailed
		}
		negOne := curve.ScalarFromUint64(1).Neg()
		if !constraints.VerifyLinearCombination(
			[]*curve.Scalar{s, negOne, c.Neg()},
			[]*curve.Point{stmt.AccountLeft[i], linkage, stmt.AccountRight[i]},
		) {
			return ErrAccountLinkageFailed
		}
	}
	return nil
}
