// Package bulletproof implements the Gargantua range-proof verifier (spec
// §4.C): an aggregated Bulletproof over m Pedersen commitments, each
// asserted to hide a value in [0, 2^n) with n = curve.BitWidth, verified
// with the t-polynomial identity and the inner-product argument folded
// into a single multi-scalar multiplication.
//
// The verification equations are grounded on the real (non-placeholder)
// range-proof verifier in the Evanesco-Labs xv-crypto repository
// (VerifyRangeProof / VerifySigmaRangeProof / VerifyInnerProductProof),
// generalized here from their fixed one/two-value cases to an arbitrary
// aggregation count m, per the aggregated-proof construction this spec
// calls for.
package bulletproof
