package curve

import (
	"errors"

	"github.com/gtank/ristretto255"
)

// ErrNonCanonicalScalar is returned when a scalar field fails canonical
// reduced-form validation (spec §4.A).
var ErrNonCanonicalScalar = errors.New("curve: scalar is not in canonical reduced form")

// ErrNonCanonicalPoint is returned when a point's 32-byte encoding is not the
// unique canonical compressed Ristretto255 representation of a group
// element (spec §4.A).
var ErrNonCanonicalPoint = errors.New("curve: point encoding is not canonical")

// Point is an element of the Ristretto255 prime-order group, held internally
// in projective form and only ever exchanged in 32-byte canonical compressed
// form.
type Point struct {
	inner *ristretto255.Element
}

// Identity returns the group identity element.
func Identity() *Point {
	return &Point{inner: ristretto255.NewElement()}
}

// DecodePoint parses a 32-byte canonical compressed Ristretto255 encoding.
// Any input whose canonical re-encoding would differ from the input bytes
// is rejected, satisfying spec §8 scenario 6.
func DecodePoint(b []byte) (*Point, error) {
	if len(b) != 32 {
		return nil, ErrNonCanonicalPoint
	}
	e := ristretto255.NewElement()
	if err := e.Decode(b); err != nil {
		return nil, ErrNonCanonicalPoint
	}
	return &Point{inner: e}, nil
}

// Encode returns the 32-byte canonical compressed encoding.
func (p *Point) Encode() [32]byte {
	var out [32]byte
	copy(out[:], p.inner.Encode(nil))
	return out
}

// Add returns p + q.
func (p *Point) Add(q *Point) *Point {
	return &Point{inner: ristretto255.NewElement().Add(p.inner, q.inner)}
}

// Sub returns p - q.
func (p *Point) Sub(q *Point) *Point {
	return &Point{inner: ristretto255.NewElement().Subtract(p.inner, q.inner)}
}

// Neg returns -p.
func (p *Point) Neg() *Point {
	return &Point{inner: ristretto255.NewElement().Negate(p.inner)}
}

// ScalarMult returns s*p (variable-base scalar multiplication).
func (p *Point) ScalarMult(s *Scalar) *Point {
	return &Point{inner: ristretto255.NewElement().ScalarMult(s.inner, p.inner)}
}

// ScalarBaseMult returns s*G.
func ScalarBaseMult(s *Scalar) *Point {
	return &Point{inner: ristretto255.NewElement().ScalarBaseMult(s.inner)}
}

// Equal reports whether p and q represent the same group element.
func (p *Point) Equal(q *Point) bool {
	return p.inner.Equal(q.inner) == 1
}

// IsIdentity reports whether p is the group identity.
func (p *Point) IsIdentity() bool {
	return p.Equal(Identity())
}

// MultiScalarMult computes Σ scalars[i]*points[i] in a single call.
//
// The verification equations this engine checks operate exclusively on
// values the prover has already revealed as part of a proof (commitments,
// challenges, sigma-protocol responses) — never on a raw secret such as a
// spending key — so a variable-time multi-scalar multiplication is the
// correct choice here, matching every Bulletproof verifier in the
// surrounding ecosystem (the constant-time requirement of spec §4.A/§9
// binds proof *generation*, which is out of scope).
func MultiScalarMult(scalars []*Scalar, points []*Point) *Point {
	if len(scalars) != len(points) {
		panic("curve: MultiScalarMult length mismatch")
	}
	ss := make([]*ristretto255.Scalar, len(scalars))
	ps := make([]*ristretto255.Element, len(points))
	for i := range scalars {
		ss[i] = scalars[i].inner
		ps[i] = points[i].inner
	}
	return &Point{inner: ristretto255.NewElement().VarTimeMultiScalarMult(ss, ps)}
}

// PointFromUniformBytes derives a point from 64 uniformly-random bytes via
// the Elligator2 map, used to derive the Bulletproof inner-product
// generator u from the transcript state.
func PointFromUniformBytes(b []byte) *Point {
	return &Point{inner: ristretto255.NewElement().FromUniformBytes(b)}
}

func (p *Point) raw() *ristretto255.Element { return p.inner }
