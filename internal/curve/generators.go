package curve

import (
	"fmt"
	"sync"

	"github.com/gtank/ristretto255"
)

// BitWidth is the number of bits a single range proof covers (n = 32,
// spec §4.C).
const BitWidth = 32

// MaxAggregation bounds how many values a single aggregated range proof may
// cover in one Transfer (spec §4.C's m); it sizes the precomputed
// generator-vector cache, which must hold n*m entries for the largest
// aggregation this engine will verify.
const MaxAggregation = 8

// maxVectorLen is the precomputed generator-vector capacity, n*MaxAggregation.
const maxVectorLen = BitWidth * MaxAggregation

var oneUniform = func() [64]byte {
	var b [64]byte
	b[0] = 1
	return b
}()

var (
	genOnce sync.Once
	gGen    *Point
	hGen    *Point
	giGen   []*Point
	hiGen   []*Point

	gTable *windowedTable
	hTable *windowedTable
)

func initGenerators() {
	one := ristretto255.NewScalar().FromUniformBytes(oneUniform[:])
	gGen = &Point{inner: ristretto255.NewElement().ScalarBaseMult(one)}
	gGenBytes := gGen.Encode()
	hGen = HashToPoint("gargantua/H", gGenBytes[:])

	giGen = make([]*Point, maxVectorLen)
	hiGen = make([]*Point, maxVectorLen)
	for i := 0; i < maxVectorLen; i++ {
		idx := []byte{byte(i), byte(i >> 8)}
		giGen[i] = HashToPoint("gargantua/Gi", idx)
		hiGen[i] = HashToPoint("gargantua/Hi", idx)
	}

	gTable = newWindowedTable(gGen)
	hTable = newWindowedTable(hGen)
}

// G returns the prime-order base generator, derived and cached on first use.
func G() *Point {
	genOnce.Do(initGenerators)
	return gGen
}

// H returns the second Pedersen generator, H = HashToPoint("gargantua/H",
// G.encoding), derived and cached on first use (spec §4.A).
func H() *Point {
	genOnce.Do(initGenerators)
	return hGen
}

// Gi returns the i-th bit-decomposition generator, i in
// [0, BitWidth*MaxAggregation).
func Gi(i int) *Point {
	genOnce.Do(initGenerators)
	return giGen[i]
}

// Hi returns the i-th bit-decomposition generator, i in
// [0, BitWidth*MaxAggregation).
func Hi(i int) *Point {
	genOnce.Do(initGenerators)
	return hiGen[i]
}

// GVector returns the full G⃗ generator vector of length n.
func GVector(n int) []*Point {
	genOnce.Do(initGenerators)
	if n > len(giGen) {
		panic(fmt.Sprintf("curve: requested %d generators, only %d precomputed", n, len(giGen)))
	}
	return giGen[:n]
}

// HVector returns the full H⃗ generator vector of length n.
func HVector(n int) []*Point {
	genOnce.Do(initGenerators)
	if n > len(hiGen) {
		panic(fmt.Sprintf("curve: requested %d generators, only %d precomputed", n, len(hiGen)))
	}
	return hiGen[:n]
}

// windowedTable is a width-4 precomputed multiple table: entry i holds
// i*base for i in [0, 16). It is built once per base point and then
// treated as read-only shared state (spec §9 "Precomputation").
type windowedTable struct {
	entries [16]*Point
}

func newWindowedTable(base *Point) *windowedTable {
	t := &windowedTable{}
	t.entries[0] = Identity()
	for i := 1; i < 16; i++ {
		t.entries[i] = t.entries[i-1].Add(base)
	}
	return t
}

func (t *windowedTable) mult(s *Scalar) *Point {
	enc := s.Encode()
	acc := Identity()
	// 256 bits, 4 bits per window, most significant nibble first.
	for nibble := 63; nibble >= 0; nibble-- {
		byteIdx := nibble / 2
		var digit byte
		if nibble%2 == 0 {
			digit = enc[byteIdx] & 0x0f
		} else {
			digit = enc[byteIdx] >> 4
		}
		for b := 0; b < 4; b++ {
			acc = acc.Add(acc)
		}
		if digit != 0 {
			acc = acc.Add(t.entries[digit])
		}
	}
	return acc
}

// FastScalarBaseMult computes s*G using the precomputed windowed table for G.
func FastScalarBaseMult(s *Scalar) *Point {
	genOnce.Do(initGenerators)
	return gTable.mult(s)
}

// FastScalarMultH computes s*H using the precomputed windowed table for H.
func FastScalarMultH(s *Scalar) *Point {
	genOnce.Do(initGenerators)
	return hTable.mult(s)
}

// Commit computes the Pedersen commitment v*G + r*H using the precomputed
// tables for G and H (spec §4.B).
func Commit(v, r *Scalar) *Point {
	return FastScalarBaseMult(v).Add(FastScalarMultH(r))
}
