// Package constraints implements the reusable primitives of the Gargantua
// constraint-system verifier (spec §4.D): Schnorr proof-of-knowledge
// checks, a generic "linear combination of points equals the identity"
// helper, and a balance-conservation check on commitments. Every fact enforced here is checked *in the
// exponent* — the verifier never recovers a witness scalar, only confirms
// an algebraic identity among the prover's commitments and responses.
//
// The per-operation wiring of these primitives (which facts a Transfer vs.
// a Burn must satisfy) lives in internal/transactions/{register,transfer,burn},
// grounded on the Evanesco-Labs xv-crypto smartcontract verification
// equations.
package constraints
