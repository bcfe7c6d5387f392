package curve

import (
	"crypto/sha512"

	"github.com/gtank/ristretto255"
)

// Scalar is an integer modulo the Ristretto255 prime subgroup order, held in
// canonical reduced form.
type Scalar struct {
	inner *ristretto255.Scalar
}

// ScalarZero returns the additive identity.
func ScalarZero() *Scalar {
	return &Scalar{inner: ristretto255.NewScalar()}
}

// ScalarFromUint64 embeds a small non-negative integer as a scalar.
func ScalarFromUint64(v uint64) *Scalar {
	var buf [64]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	return &Scalar{inner: ristretto255.NewScalar().FromUniformBytes(buf[:])}
}

// DecodeScalar parses a 32-byte canonical little-endian scalar encoding.
// Non-canonical (unreduced) input is rejected per spec §4.A.
func DecodeScalar(b []byte) (*Scalar, error) {
	if len(b) != 32 {
		return nil, ErrNonCanonicalScalar
	}
	s := ristretto255.NewScalar()
	if err := s.Decode(b); err != nil {
		return nil, ErrNonCanonicalScalar
	}
	return &Scalar{inner: s}, nil
}

// Encode returns the 32-byte canonical little-endian encoding.
func (s *Scalar) Encode() [32]byte {
	var out [32]byte
	copy(out[:], s.inner.Encode(nil))
	return out
}

// Add returns s + t.
func (s *Scalar) Add(t *Scalar) *Scalar {
	return &Scalar{inner: ristretto255.NewScalar().Add(s.inner, t.inner)}
}

// Sub returns s - t.
func (s *Scalar) Sub(t *Scalar) *Scalar {
	return &Scalar{inner: ristretto255.NewScalar().Subtract(s.inner, t.inner)}
}

// Neg returns -s.
func (s *Scalar) Neg() *Scalar {
	return &Scalar{inner: ristretto255.NewScalar().Negate(s.inner)}
}

// Mul returns s * t.
func (s *Scalar) Mul(t *Scalar) *Scalar {
	return &Scalar{inner: ristretto255.NewScalar().Multiply(s.inner, t.inner)}
}

// Invert returns s^-1. It does not check for the zero scalar, which
// callers must not pass.
func (s *Scalar) Invert() *Scalar {
	return &Scalar{inner: ristretto255.NewScalar().Invert(s.inner)}
}

// Square returns s * s.
func (s *Scalar) Square() *Scalar {
	return s.Mul(s)
}

// Pow returns s^n via square-and-multiply.
func (s *Scalar) Pow(n uint64) *Scalar {
	result := ScalarFromUint64(1)
	base := s
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return result
}

// Equal reports whether s and t are equal, in constant time.
func (s *Scalar) Equal(t *Scalar) bool {
	return s.inner.Equal(t.inner) == 1
}

// IsZero reports whether s is the zero scalar.
func (s *Scalar) IsZero() bool {
	return s.Equal(ScalarZero())
}

// ScalarFromUniformBytes reduces 64 uniformly-random bytes into a scalar.
// Used to turn a transcript's squeezed challenge bytes into a challenge
// scalar.
func ScalarFromUniformBytes(b []byte) *Scalar {
	return &Scalar{inner: ristretto255.NewScalar().FromUniformBytes(b)}
}

// HashToScalar derives a scalar deterministically from a domain-separated
// label and message, by expanding SHA-512(label || 0x00 || data) into the
// 64 uniform bytes FromUniformBytes requires.
func HashToScalar(label string, data ...[]byte) *Scalar {
	h := sha512.New()
	h.Write([]byte(label))
	h.Write([]byte{0x00})
	for _, d := range data {
		h.Write(d)
	}
	sum := h.Sum(nil)
	return &Scalar{inner: ristretto255.NewScalar().FromUniformBytes(sum)}
}

func (s *Scalar) raw() *ristretto255.Scalar { return s.inner }
