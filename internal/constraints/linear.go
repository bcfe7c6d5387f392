package constraints

import "gargantua/internal/curve"

// VerifyLinearCombination checks Σ scalars[i]·points[i] == identity in a
// single MSM, with the scalars supplied by the caller; no random weighting
// is applied here. transfer.Verify uses it for the account-linkage check
// of spec §4.D; balance conservation uses VerifyBalanceConservation.
func VerifyLinearCombination(scalars []*curve.Scalar, points []*curve.Point) bool {
	sum := curve.MultiScalarMult(scalars, points)
	return sum.IsIdentity()
}

// VerifyBalanceConservation checks spec §4.D's transfer identity:
// Σ Commit(vᵢ, rᵢ) − Commit(v_out, r_out) − Commit(fee, 0) = 0, expressed
// directly on commitments (the prover never opens v, r) as
// Σ inputs − output − fee == identity.
func VerifyBalanceConservation(inputs []*curve.Point, output, fee *curve.Point) bool {
	sum := output.Add(fee).Neg()
	for _, in := range inputs {
		sum = sum.Add(in)
	}
	return sum.IsIdentity()
}
