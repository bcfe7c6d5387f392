package curve

import (
	"crypto/sha512"

	"github.com/gtank/ristretto255"
)

// HashToPoint implements the domain-separated "Elligator-style" map of
// spec §4.A: HashToPoint(label, bytes) = map_to_curve(hash(label || bytes)).
//
// hash expands label‖data into the 64 uniform bytes that
// Element.FromUniformBytes consumes to apply the (constant-time)
// Elligator2 map twice and sum the results, which always lands on a valid
// point of the prime-order subgroup — unlike a "hash to scalar, then
// scalar·G" construction, which reveals a discrete-log relationship to G
// and is not a valid substitute.
func HashToPoint(label string, data ...[]byte) *Point {
	h := sha512.New()
	h.Write([]byte(label))
	h.Write([]byte{0x01})
	for _, d := range data {
		h.Write(d)
	}
	sum := h.Sum(nil)
	return &Point{inner: ristretto255.NewElement().FromUniformBytes(sum)}
}
