package transcript

import (
	"testing"

	"gargantua/internal/curve"
)

func TestChallengeScalarIsDeterministicGivenSameTranscriptHistory(t *testing.T) {
	build := func() *Transcript {
		tr := New()
		tr.AppendBytes("domain", []byte("gargantua/test"))
		tr.AppendUint64("epoch", 7)
		return tr
	}
	a := build().ChallengeScalar("challenge")
	b := build().ChallengeScalar("challenge")
	if !a.Equal(b) {
		t.Fatal("identical transcript histories produced different challenges")
	}
}

func TestChallengeScalarDivergesOnDifferentHistory(t *testing.T) {
	trA := New()
	trA.AppendUint64("epoch", 7)
	a := trA.ChallengeScalar("challenge")

	trB := New()
	trB.AppendUint64("epoch", 8)
	b := trB.ChallengeScalar("challenge")

	if a.Equal(b) {
		t.Fatal("distinct transcript histories collided on the same challenge")
	}
}

func TestChallengeScalarDivergesOnLabel(t *testing.T) {
	build := func() *Transcript {
		tr := New()
		tr.AppendBytes("domain", []byte("gargantua/test"))
		return tr
	}
	a := build().ChallengeScalar("first")
	b := build().ChallengeScalar("second")
	if a.Equal(b) {
		t.Fatal("distinct challenge labels collided")
	}
}

func TestAppendPointAffectsChallenge(t *testing.T) {
	trA := New()
	trA.AppendPoint("point", curve.G())
	a := trA.ChallengeScalar("c")

	trB := New()
	b := trB.ChallengeScalar("c")

	if a.Equal(b) {
		t.Fatal("appending a point did not change the derived challenge")
	}
}

func TestChallengePointIsCanonicallyEncodable(t *testing.T) {
	tr := New()
	tr.AppendBytes("domain", []byte("x"))
	p := tr.ChallengePoint("u")
	enc := p.Encode()
	if _, err := curve.DecodePoint(enc[:]); err != nil {
		t.Fatalf("challenge point encoding did not decode canonically: %v", err)
	}
}
