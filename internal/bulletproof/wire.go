package bulletproof

import (
	"encoding/binary"

	"gargantua/internal/curve"
)

// Encode serializes a RangeProof to the wire layout: A, S, T1, T2 (32
// bytes each), TauX, Mu, THat (32 bytes each), then the inner-product
// proof's round count (uint32), its L and R vectors, and finally A, B.
func (p *RangeProof) Encode() []byte {
	var buf []byte
	appendPoint := func(pt *curve.Point) {
		e := pt.Encode()
		buf = append(buf, e[:]...)
	}
	appendScalar := func(s *curve.Scalar) {
		e := s.Encode()
		buf = append(buf, e[:]...)
	}

	appendPoint(p.A)
	appendPoint(p.S)
	appendPoint(p.T1)
	appendPoint(p.T2)
	appendScalar(p.TauX)
	appendScalar(p.Mu)
	appendScalar(p.THat)

	var roundBuf [4]byte
	binary.LittleEndian.PutUint32(roundBuf[:], uint32(len(p.IPA.L)))
	buf = append(buf, roundBuf[:]...)
	for _, l := range p.IPA.L {
		appendPoint(l)
	}
	for _, r := range p.IPA.R {
		appendPoint(r)
	}
	appendScalar(p.IPA.A)
	appendScalar(p.IPA.B)
	return buf
}

// DecodeRangeProof parses the layout written by Encode, returning the
// proof and the number of bytes consumed.
func DecodeRangeProof(b []byte) (*RangeProof, int, error) {
	off := 0
	readPoint := func() (*curve.Point, error) {
		if off+32 > len(b) {
			return nil, ErrProofStructure
		}
		pt, err := curve.DecodePoint(b[off : off+32])
		off += 32
		return pt, err
	}
	readScalar := func() (*curve.Scalar, error) {
		if off+32 > len(b) {
			return nil, ErrProofStructure
		}
		s, err := curve.DecodeScalar(b[off : off+32])
		off += 32
		return s, err
	}

	proof := &RangeProof{IPA: &InnerProductProof{}}
	var err error
	if proof.A, err = readPoint(); err != nil {
		return nil, 0, err
	}
	if proof.S, err = readPoint(); err != nil {
		return nil, 0, err
	}
	if proof.T1, err = readPoint(); err != nil {
		return nil, 0, err
	}
	if proof.T2, err = readPoint(); err != nil {
		return nil, 0, err
	}
	if proof.TauX, err = readScalar(); err != nil {
		return nil, 0, err
	}
	if proof.Mu, err = readScalar(); err != nil {
		return nil, 0, err
	}
	if proof.THat, err = readScalar(); err != nil {
		return nil, 0, err
	}

	if off+4 > len(b) {
		return nil, 0, ErrProofStructure
	}
	rounds := int(binary.LittleEndian.Uint32(b[off:]))
	off += 4
	if rounds < 0 || rounds > 32 {
		return nil, 0, ErrProofStructure
	}
	proof.IPA.L = make([]*curve.Point, rounds)
	for i := 0; i < rounds; i++ {
		if proof.IPA.L[i], err = readPoint(); err != nil {
			return nil, 0, err
		}
	}
	proof.IPA.R = make([]*curve.Point, rounds)
	for i := 0; i < rounds; i++ {
		if proof.IPA.R[i], err = readPoint(); err != nil {
			return nil, 0, err
		}
	}
	if proof.IPA.A, err = readScalar(); err != nil {
		return nil, 0, err
	}
	if proof.IPA.B, err = readScalar(); err != nil {
		return nil, 0, err
	}
	return proof, off, nil
}
