// Package burn verifies Burn (withdrawal) instructions: a Schnorr
// ownership proof over the account's public key and a range proof that
// the post-burn balance remains non-negative, both bound to the
// Fiat-Shamir transcript together with the withdrawn amount and nonce.
package burn

import (
	"errors"

	"gargantua/internal/bulletproof"
	"gargantua/internal/constraints"
	"gargantua/internal/curve"
	"gargantua/internal/transcript"
)

var (
	ErrMalformedProof  = errors.New("burn: malformed proof field")
	ErrOwnershipFailed = errors.New("burn: ownership response mismatch")
)

// Proof bundles the range proof on the post-burn balance and the Schnorr
// ownership response (spec §4.D "Balance sufficiency", "Ownership").
type Proof struct {
	Range      *bulletproof.RangeProof
	Commitment [32]byte // R = r*G, the Schnorr first message
	Response   [32]byte // s = r + c*sk
}

// Statement is the public data a Burn instruction commits to.
type Statement struct {
	Epoch        uint64
	Nonce        [32]byte
	Amount       uint64
	PublicKey    *curve.Point
	PostBalance  *curve.Point // commitment_left - Commit(amount, 0)
}

// Verify checks ownership of PublicKey and that PostBalance opens to a
// value in [0, 2^n) (spec §4.F "Burn").
func Verify(stmt *Statement, proof *Proof) error {
	tr := transcript.New()
	tr.AppendBytes("domain", []byte("gargantua/burn"))
	tr.AppendUint64("epoch", stmt.Epoch)
	tr.AppendBytes("nonce", stmt.Nonce[:])
	tr.AppendUint64("amount", stmt.Amount)
	tr.AppendPoint("public_key", stmt.PublicKey)
	tr.AppendPoint("post_balance", stmt.PostBalance)

	if err := bulletproof.VerifyAggregated(tr, []*curve.Point{stmt.PostBalance}, proof.Range); err != nil {
		return err
	}

	r, err := curve.DecodePoint(proof.Commitment[:])
	if err != nil {
		return ErrMalformedProof
	}
	s, err := curve.DecodeScalar(proof.Response[:])
	if err != nil {
		return ErrMalformedProof
	}
	tr.AppendPoint("ownership_R", r)
	c := tr.ChallengeScalar("ownership_challenge")
	if !constraints.VerifySchnorr(stmt.PublicKey, r, c, s) {
		return ErrOwnershipFailed
	}
	return nil
}
