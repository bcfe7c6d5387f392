package curve

import "testing"

func TestScalarAddSubRoundTrip(t *testing.T) {
	a := ScalarFromUint64(17)
	b := ScalarFromUint64(5)
	sum := a.Add(b)
	back := sum.Sub(b)
	if !back.Equal(a) {
		t.Fatal("(a+b)-b != a")
	}
}

func TestScalarNegIsAdditiveInverse(t *testing.T) {
	a := ScalarFromUint64(42)
	if !a.Add(a.Neg()).IsZero() {
		t.Fatal("a + (-a) != 0")
	}
}

func TestScalarInvert(t *testing.T) {
	a := ScalarFromUint64(7)
	inv := a.Invert()
	if !a.Mul(inv).Equal(ScalarFromUint64(1)) {
		t.Fatal("a * a^-1 != 1")
	}
}

func TestScalarPow(t *testing.T) {
	base := ScalarFromUint64(3)
	got := base.Pow(4)
	want := ScalarFromUint64(81)
	if !got.Equal(want) {
		t.Fatalf("3^4 = %v, want 81", got.Encode())
	}
	if !base.Pow(0).Equal(ScalarFromUint64(1)) {
		t.Fatal("3^0 != 1")
	}
}

func TestScalarEncodeDecodeRoundTrip(t *testing.T) {
	s := ScalarFromUint64(123456789)
	enc := s.Encode()
	decoded, err := DecodeScalar(enc[:])
	if err != nil {
		t.Fatalf("DecodeScalar: %v", err)
	}
	if !decoded.Equal(s) {
		t.Fatal("decoded scalar does not match original")
	}
}

func TestDecodeScalarRejectsWrongLength(t *testing.T) {
	if _, err := DecodeScalar([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error decoding a short buffer")
	}
}

func TestPointEncodeDecodeRoundTrip(t *testing.T) {
	p := ScalarBaseMult(ScalarFromUint64(9))
	enc := p.Encode()
	decoded, err := DecodePoint(enc[:])
	if err != nil {
		t.Fatalf("DecodePoint: %v", err)
	}
	if !decoded.Equal(p) {
		t.Fatal("decoded point does not match original")
	}
}

func TestDecodePointRejectsWrongLength(t *testing.T) {
	if _, err := DecodePoint([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error decoding a short buffer")
	}
}

func TestPointAddSubNeg(t *testing.T) {
	p := ScalarBaseMult(ScalarFromUint64(11))
	q := ScalarBaseMult(ScalarFromUint64(4))
	sum := p.Add(q)
	if !sum.Sub(q).Equal(p) {
		t.Fatal("(p+q)-q != p")
	}
	if !p.Add(p.Neg()).IsIdentity() {
		t.Fatal("p + (-p) != identity")
	}
}

func TestScalarMultDistributesOverAdd(t *testing.T) {
	a := ScalarFromUint64(6)
	b := ScalarFromUint64(8)
	p := ScalarBaseMult(ScalarFromUint64(3))
	lhs := p.ScalarMult(a.Add(b))
	rhs := p.ScalarMult(a).Add(p.ScalarMult(b))
	if !lhs.Equal(rhs) {
		t.Fatal("p*(a+b) != p*a + p*b")
	}
}

func TestMultiScalarMultMatchesSequential(t *testing.T) {
	scalars := []*Scalar{ScalarFromUint64(2), ScalarFromUint64(5), ScalarFromUint64(9)}
	points := []*Point{
		ScalarBaseMult(ScalarFromUint64(1)),
		ScalarBaseMult(ScalarFromUint64(2)),
		ScalarBaseMult(ScalarFromUint64(3)),
	}
	got := MultiScalarMult(scalars, points)

	want := Identity()
	for i := range scalars {
		want = want.Add(points[i].ScalarMult(scalars[i]))
	}
	if !got.Equal(want) {
		t.Fatal("MultiScalarMult disagrees with sequential scalar-mult-and-add")
	}
}

func TestMultiScalarMultLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on length mismatch")
		}
	}()
	MultiScalarMult([]*Scalar{ScalarFromUint64(1)}, nil)
}

func TestCommitIsAdditivelyHomomorphic(t *testing.T) {
	v1, r1 := ScalarFromUint64(10), ScalarFromUint64(3)
	v2, r2 := ScalarFromUint64(20), ScalarFromUint64(4)
	c1 := Commit(v1, r1)
	c2 := Commit(v2, r2)
	sum := c1.Add(c2)
	combined := Commit(v1.Add(v2), r1.Add(r2))
	if !sum.Equal(combined) {
		t.Fatal("Commit(v1,r1)+Commit(v2,r2) != Commit(v1+v2,r1+r2)")
	}
}

func TestFastScalarBaseMultMatchesScalarBaseMult(t *testing.T) {
	s := ScalarFromUint64(777)
	if !FastScalarBaseMult(s).Equal(ScalarBaseMult(s)) {
		t.Fatal("FastScalarBaseMult disagrees with ScalarBaseMult")
	}
}

func TestHashToScalarIsDeterministic(t *testing.T) {
	a := HashToScalar("test/label", []byte("hello"))
	b := HashToScalar("test/label", []byte("hello"))
	if !a.Equal(b) {
		t.Fatal("HashToScalar is not deterministic for identical inputs")
	}
	c := HashToScalar("test/label", []byte("world"))
	if a.Equal(c) {
		t.Fatal("HashToScalar collided across distinct inputs")
	}
}

func TestHashToPointIsOnCurveAndDeterministic(t *testing.T) {
	p := HashToPoint("test/point-label", []byte("seed"))
	q := HashToPoint("test/point-label", []byte("seed"))
	if !p.Equal(q) {
		t.Fatal("HashToPoint is not deterministic")
	}
	enc := p.Encode()
	if _, err := DecodePoint(enc[:]); err != nil {
		t.Fatalf("derived point is not canonically encodable: %v", err)
	}
}

func TestPowers(t *testing.T) {
	base := ScalarFromUint64(2)
	got := Powers(base, 5)
	want := []uint64{1, 2, 4, 8, 16}
	for i, w := range want {
		if !got[i].Equal(ScalarFromUint64(w)) {
			t.Fatalf("Powers(2,5)[%d] = %v, want %d", i, got[i].Encode(), w)
		}
	}
}

func TestInnerProduct(t *testing.T) {
	a := []*Scalar{ScalarFromUint64(1), ScalarFromUint64(2), ScalarFromUint64(3)}
	b := []*Scalar{ScalarFromUint64(4), ScalarFromUint64(5), ScalarFromUint64(6)}
	got := InnerProduct(a, b)
	want := ScalarFromUint64(1*4 + 2*5 + 3*6)
	if !got.Equal(want) {
		t.Fatal("InnerProduct([1,2,3],[4,5,6]) != 32")
	}
}

func TestInnerProductLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on length mismatch")
		}
	}()
	InnerProduct([]*Scalar{ScalarFromUint64(1)}, nil)
}

func TestGeneratorVectorsAreDistinctAndStable(t *testing.T) {
	g := GVector(4)
	h := HVector(4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i != j && g[i].Equal(g[j]) {
				t.Fatalf("G vector entries %d and %d collide", i, j)
			}
		}
		if g[i].Equal(h[i]) {
			t.Fatalf("G[%d] and H[%d] collide", i, i)
		}
	}
	// Stability: repeated calls must return the same cached points.
	g2 := GVector(4)
	if !g[0].Equal(g2[0]) {
		t.Fatal("GVector is not stable across calls")
	}
}

func TestGVectorPanicsBeyondPrecomputedCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic requesting more generators than precomputed")
		}
	}()
	GVector(maxVectorLen + 1)
}
