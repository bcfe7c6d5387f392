package constraints

import "gargantua/internal/curve"

// VerifySchnorr checks a Schnorr proof of knowledge of the discrete log of
// publicKey = sk·G, bound to the supplied challenge (spec §4.D
// "Ownership"): response·G == commitment + challenge·publicKey.
//
// commitment is the prover's first-message point (named R in the classic
// three-move Schnorr protocol, ay/ad/ag in the sigma-protocol responses of
// a Transfer/Burn); challenge and response are squeezed from, and bound
// to, the Fiat-Shamir transcript by the caller before this check runs.
func VerifySchnorr(publicKey, commitment *curve.Point, challenge, response *curve.Scalar) bool {
	lhs := curve.FastScalarBaseMult(response)
	rhs := commitment.Add(publicKey.ScalarMult(challenge))
	return lhs.Equal(rhs)
}
