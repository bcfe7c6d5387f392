// Package curve implements Ristretto255 scalar/point algebra for Gargantua.
//
// Overview:
//   - Wraps github.com/gtank/ristretto255 with the reduced operation set the
//     rest of the engine needs: add, scalar-mul, multi-scalar-mul,
//     hash-to-point, and canonical compressed encode/decode.
//   - Exposes two global generators (G, H) plus bit-decomposition generator
//     vectors, all derived deterministically and cached lazily.
//
// Security model:
//   - Point decoding rejects any non-canonical encoding (InvalidCommitment).
//   - HashToPoint uses Elligator2 via Element.FromUniformBytes, which is
//     constant-time and always lands on a valid prime-order point.
//
// WARNING: scalars and points here may carry secret values (blinding
// factors, private keys); callers must not branch on their contents outside
// the operations this package exposes.
package curve
