package bulletproof

import (
	"math/bits"

	"gargantua/internal/curve"
	"gargantua/internal/transcript"
)

// InnerProductProof is the logarithmic tail of a range proof: one (L, R)
// pair per folding round, plus the two final scalars a, b (spec §4.C).
type InnerProductProof struct {
	L []*curve.Point
	R []*curve.Point
	A *curve.Scalar
	B *curve.Scalar
}

// RangeProof is an aggregated Bulletproof over m Pedersen commitments, each
// asserted to lie in [0, 2^n) (spec §4.C).
type RangeProof struct {
	A, S, T1, T2   *curve.Point
	TauX, Mu, THat *curve.Scalar
	IPA            *InnerProductProof
}

// VerifyAggregated checks that every commitment in commitments hides a
// value in [0, 2^curve.BitWidth), using a single aggregated proof and a
// single folded multi-scalar multiplication (spec §4.C).
//
// tr must already have absorbed the statement this proof is bound to
// (commitments, public keys, epoch, nonce, etc. per spec §4.B); this
// function absorbs the proof's own messages (A, S, T1, T2, L⃗, R⃗) in
// protocol order and squeezes y, z, x, and the IPA round challenges from
// it.
func VerifyAggregated(tr *transcript.Transcript, commitments []*curve.Point, proof *RangeProof) error {
	m := len(commitments)
	if m == 0 || m > curve.MaxAggregation || (m&(m-1)) != 0 {
		return ErrProofStructure
	}
	n := curve.BitWidth
	N := n * m
	k := bits.TrailingZeros(uint(N))
	if proof.IPA == nil || len(proof.IPA.L) != k || len(proof.IPA.R) != k {
		return ErrProofStructure
	}

	G := curve.GVector(N)
	H := curve.HVector(N)

	tr.AppendPoint("A", proof.A)
	tr.AppendPoint("S", proof.S)
	y := tr.ChallengeScalar("y")
	z := tr.ChallengeScalar("z")
	if y.IsZero() || z.IsZero() {
		return ErrZeroChallenge
	}

	tr.AppendPoint("T1", proof.T1)
	tr.AppendPoint("T2", proof.T2)
	x := tr.ChallengeScalar("x")
	if x.IsZero() {
		return ErrZeroChallenge
	}
	u := tr.ChallengePoint("u")

	invY := y.Invert()
	powersOfY := curve.Powers(y, N)
	powersOfInvY := curve.Powers(invY, N)
	hPrime := make([]*curve.Point, N)
	for i := range hPrime {
		hPrime[i] = H[i].ScalarMult(powersOfInvY[i])
	}

	zz := z.Mul(z)
	xx := x.Mul(x)
	powersOfZ := curve.Powers(z, m+3) // z^0 .. z^(m+2)
	powersOfTwo := curve.Powers(curve.ScalarFromUint64(2), n)
	sumPowersOfTwo := curve.SumScalars(powersOfTwo...)

	ones := make([]*curve.Scalar, N)
	for i := range ones {
		ones[i] = curve.ScalarFromUint64(1)
	}
	innerY := curve.InnerProduct(ones, powersOfY)

	p1 := z.Sub(zz).Mul(innerY)
	p2 := curve.ScalarZero()
	for j := 0; j < m; j++ {
		p2 = p2.Add(powersOfZ[j+2].Mul(sumPowersOfTwo))
	}
	delta := p1.Sub(p2)

	// Identity 1: the t-polynomial check, g^t̂ · h^τx == Σ z^(j+2)·V_j ·
	// g^δ(y,z) · T1^x · T2^(x²).
	lhs := curve.Commit(proof.THat, proof.TauX)
	vScalars := make([]*curve.Scalar, m)
	for j := 0; j < m; j++ {
		vScalars[j] = powersOfZ[j+2]
	}
	rhs := curve.MultiScalarMult(vScalars, commitments)
	rhs = rhs.Add(curve.FastScalarBaseMult(delta))
	rhs = rhs.Add(proof.T1.ScalarMult(x))
	rhs = rhs.Add(proof.T2.ScalarMult(xx))
	if !lhs.Equal(rhs) {
		return ErrRangeProofFailed
	}

	// Reconstruct P' for the inner-product statement.
	negZ := z.Neg()
	gScalars := make([]*curve.Scalar, N)
	hScalars := make([]*curve.Scalar, N)
	for i := range gScalars {
		gScalars[i] = negZ
	}
	for j := 0; j < m; j++ {
		for i := 0; i < n; i++ {
			idx := j*n + i
			hScalars[idx] = z.Mul(powersOfY[idx]).Add(powersOfZ[j+2].Mul(powersOfTwo[i]))
		}
	}
	p0 := curve.MultiScalarMult(append(gScalars, hScalars...), append(append([]*curve.Point{}, G...), hPrime...))
	p := proof.A.Add(proof.S.ScalarMult(x)).Add(p0)
	pPrime := p.Sub(curve.H().ScalarMult(proof.Mu)).Add(u.ScalarMult(proof.THat))

	return verifyInnerProduct(tr, N, pPrime, u, G, hPrime, proof.IPA)
}

// verifyInnerProduct checks identity 2 of spec §4.C: folding the log(N)
// (L, R) pairs with the round challenges collapses to a single generator
// pair and P' == g^a · h^b · u^(ab).
func verifyInnerProduct(tr *transcript.Transcript, n int, p *curve.Point, u *curve.Point, G, H []*curve.Point, proof *InnerProductProof) error {
	k := len(proof.L)
	challenges := make([]*curve.Scalar, k)
	challengesSq := make([]*curve.Scalar, k)
	for i := 0; i < k; i++ {
		tr.AppendPoint("L", proof.L[i])
		tr.AppendPoint("R", proof.R[i])
		c := tr.ChallengeScalar("ipa")
		if c.IsZero() {
			return ErrZeroChallenge
		}
		challenges[i] = c
		challengesSq[i] = c.Square()
	}

	s := innerProductS(challenges, challengesSq, n, k)

	as := make([]*curve.Scalar, n)
	bsInv := make([]*curve.Scalar, n)
	for i := 0; i < n; i++ {
		as[i] = proof.A.Mul(s[i])
		bsInv[i] = proof.B.Mul(s[n-i-1])
	}

	right := curve.MultiScalarMult(as, G)
	right = right.Add(curve.MultiScalarMult(bsInv, H))
	right = right.Add(u.ScalarMult(proof.A.Mul(proof.B)))

	left := p
	for i := 0; i < k; i++ {
		left = left.Add(proof.L[i].ScalarMult(challengesSq[i]))
		left = left.Add(proof.R[i].ScalarMult(challengesSq[i].Invert()))
	}

	if !left.Equal(right) {
		return ErrInnerProductFailed
	}
	return nil
}

// innerProductS computes the length-n vector s where s[i] is the product
// of the round challenges (or their inverses) selected by the bits of i,
// used to recombine the folded generators (spec §4.C identity 2).
func innerProductS(challenges, challengesSq []*curve.Scalar, n, k int) []*curve.Scalar {
	prodInv := curve.ScalarFromUint64(1)
	for _, c := range challenges {
		prodInv = prodInv.Mul(c)
	}
	prodInv = prodInv.Invert()

	s := make([]*curve.Scalar, n)
	for idx := 0; idx < n; idx++ {
		v := prodInv
		for j := 0; j < k; j++ {
			if idx&(1<<j) != 0 {
				v = v.Mul(challengesSq[j])
			}
		}
		s[idx] = v
	}
	return s
}
