package transcript

import (
	"encoding/binary"

	"github.com/gtank/merlin"

	"gargantua/internal/curve"
)

// DomainSeparator is the fixed label every Gargantua transcript is keyed
// with (spec §4.B).
const DomainSeparator = "GARGANTUA-v1"

// Transcript binds a sequence of protocol messages to a deterministic
// stream of challenges.
type Transcript struct {
	inner *merlin.Transcript
}

// New creates a fresh transcript keyed with the Gargantua domain separator.
func New() *Transcript {
	return &Transcript{inner: merlin.NewTranscript(DomainSeparator)}
}

// AppendBytes absorbs a labeled raw message.
func (t *Transcript) AppendBytes(label string, b []byte) {
	t.inner.AppendMessage([]byte(label), b)
}

// AppendPoint absorbs a labeled point's canonical encoding.
func (t *Transcript) AppendPoint(label string, p *curve.Point) {
	enc := p.Encode()
	t.inner.AppendMessage([]byte(label), enc[:])
}

// AppendScalar absorbs a labeled scalar's canonical encoding.
func (t *Transcript) AppendScalar(label string, s *curve.Scalar) {
	enc := s.Encode()
	t.inner.AppendMessage([]byte(label), enc[:])
}

// AppendUint64 absorbs a labeled 64-bit little-endian integer.
func (t *Transcript) AppendUint64(label string, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	t.inner.AppendMessage([]byte(label), buf[:])
}

// ChallengePoint squeezes a labeled challenge point from the transcript
// state accumulated so far, used to derive the Bulletproof inner-product
// generator u.
func (t *Transcript) ChallengePoint(label string) *curve.Point {
	raw := t.inner.ExtractBytes([]byte(label), 64)
	return curve.PointFromUniformBytes(raw)
}

// ChallengeScalar squeezes a labeled challenge scalar from the transcript
// state accumulated so far.
func (t *Transcript) ChallengeScalar(label string) *curve.Scalar {
	raw := t.inner.ExtractBytes([]byte(label), 64)
	return curve.ScalarFromUniformBytes(raw)
}
