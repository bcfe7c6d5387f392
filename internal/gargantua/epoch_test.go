package gargantua

import (
	"testing"

	"gargantua/internal/curve"
)

// curveCommitEncoded returns a non-identity Pedersen commitment to v with
// a fixed, deterministic blinding factor, encoded to the account's wire
// form — enough to tell "folded into settled state" apart from "left
// untouched" in a rollover test without needing a real secret.
func curveCommitEncoded(v uint64) [32]byte {
	return curve.Commit(curve.ScalarFromUint64(v), curve.ScalarFromUint64(1)).Encode()
}

func TestEpochOfDivision(t *testing.T) {
	cases := []struct {
		now         int64
		epochLength uint64
		want        uint64
	}{
		{0, 60, 0},
		{59, 60, 0},
		{60, 60, 1},
		{3600, 60, 60},
		{-1, 60, 0}, // a negative clock reading must not underflow
	}
	for _, c := range cases {
		if got := epochOf(c.now, c.epochLength); got != c.want {
			t.Errorf("epochOf(%d, %d) = %d, want %d", c.now, c.epochLength, got, c.want)
		}
	}
}

func TestEpochOfZeroLengthIsZero(t *testing.T) {
	if epochOf(1000, 0) != 0 {
		t.Fatal("epochOf with zero epoch_length must not divide by zero")
	}
}

func TestBumpEpochNeverDecreases(t *testing.T) {
	g := &GlobalState{EpochLength: 10, CurrentEpoch: 5}
	bumpEpoch(g, 30) // epoch(30) = 3 < 5
	if g.CurrentEpoch != 5 {
		t.Fatalf("CurrentEpoch decreased to %d", g.CurrentEpoch)
	}
	bumpEpoch(g, 80) // epoch(80) = 8 > 5
	if g.CurrentEpoch != 8 {
		t.Fatalf("CurrentEpoch did not advance: %d", g.CurrentEpoch)
	}
}

func TestBumpEpochUpdatesLastGlobalUpdateOnlyOnAdvance(t *testing.T) {
	g := &GlobalState{EpochLength: 10, CurrentEpoch: 0, LastGlobalUpdate: 1}
	bumpEpoch(g, 5) // still epoch 0, no advance
	if g.LastGlobalUpdate != 1 {
		t.Fatalf("LastGlobalUpdate changed on a non-advancing tick: %d", g.LastGlobalUpdate)
	}
	bumpEpoch(g, 25) // epoch 2
	if g.LastGlobalUpdate != 25 {
		t.Fatalf("LastGlobalUpdate not updated on advance: %d", g.LastGlobalUpdate)
	}
}

func TestRolloverFoldsPendingIntoSettled(t *testing.T) {
	left, right := identityPair()
	account := &ZerosolAccount{CommitmentLeft: left, CommitmentRight: right, LastRollover: 0}
	amount := curveCommitEncoded(5)
	pending := &PendingAccount{CommitmentLeft: amount, CommitmentRight: amount}

	if err := rollover(account, pending, 1); err != nil {
		t.Fatalf("rollover: %v", err)
	}
	if account.LastRollover != 1 {
		t.Fatalf("LastRollover not advanced: %d", account.LastRollover)
	}
	if account.CommitmentLeft != amount {
		t.Fatal("settled commitment did not absorb the pending one")
	}
	wantPending, _ := identityPair()
	if pending.CommitmentLeft != wantPending {
		t.Fatal("pending commitment was not reset to identity after rollover")
	}
}

func TestRolloverIsNoOpWhenAlreadyCurrent(t *testing.T) {
	left, right := identityPair()
	account := &ZerosolAccount{CommitmentLeft: left, CommitmentRight: right, LastRollover: 3}
	amount := curveCommitEncoded(7)
	pending := &PendingAccount{CommitmentLeft: amount, CommitmentRight: amount}

	if err := rollover(account, pending, 3); err != nil {
		t.Fatalf("rollover: %v", err)
	}
	if account.CommitmentLeft != left {
		t.Fatal("settled commitment changed on a no-op rollover")
	}
	if pending.CommitmentLeft != amount {
		t.Fatal("pending commitment was cleared on a no-op rollover")
	}
}
