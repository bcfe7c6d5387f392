package gargantua

import "gargantua/internal/curve"

// epochOf is the pure epoch calculation of spec §4.E:
// epoch(now) = (now - genesis) / epoch_length. Genesis is fixed at the
// Unix epoch (time zero): the source computes current_epoch as
// clock.unix_timestamp / epoch_length with no separate genesis field
// persisted in GlobalState, and this implementation follows that exact
// convention.
func epochOf(now int64, epochLength uint64) uint64 {
	if epochLength == 0 || now < 0 {
		return 0
	}
	return uint64(now) / epochLength
}

// bumpEpoch updates GlobalState.CurrentEpoch to max(current, epoch(now))
// and records the tick time, which every instruction must do before
// depending on settled state (spec §4.E).
func bumpEpoch(g *GlobalState, now int64) {
	target := epochOf(now, g.EpochLength)
	if target > g.CurrentEpoch {
		g.CurrentEpoch = target
		g.LastGlobalUpdate = now
	}
}

// rollover performs the per-account fold of spec §4.E:
//
//	if account.last_rollover < current_epoch:
//	    account.commitment_left  += pending.commitment_left
//	    account.commitment_right += pending.commitment_right
//	    pending.commitment_left   = identity
//	    pending.commitment_right  = identity
//	    account.last_rollover     = current_epoch
//
// It is invoked implicitly as a prelude to every read of settled state,
// and explicitly by the RollOver instruction. Calling it when
// account.LastRollover is already current is a no-op (idempotence,
// spec §8 property 3).
func rollover(account *ZerosolAccount, pending *PendingAccount, currentEpoch uint64) error {
	if account.LastRollover >= currentEpoch {
		return nil
	}
	left, err := account.Left()
	if err != nil {
		return err
	}
	right, err := account.Right()
	if err != nil {
		return err
	}
	pendingLeft, err := pending.Left()
	if err != nil {
		return err
	}
	pendingRight, err := pending.Right()
	if err != nil {
		return err
	}

	account.setLeft(left.Add(pendingLeft))
	account.setRight(right.Add(pendingRight))
	pending.setLeft(curve.Identity())
	pending.setRight(curve.Identity())
	account.LastRollover = currentEpoch
	return nil
}

// effectiveLeft and effectiveRight read an account's settled commitments
// as they would appear after a rollover at currentEpoch, without
// mutating the stored record. Operations that touch several accounts
// use these to validate and build a verification statement for every
// account before writing anything, so a later AccountNotRegistered never
// leaves an earlier account's rollover already committed (spec §4.E
// "load -> verify -> write; no interleaving").
func effectiveLeft(account *ZerosolAccount, pending *PendingAccount, currentEpoch uint64) (*curve.Point, error) {
	left, err := account.Left()
	if err != nil {
		return nil, err
	}
	if account.LastRollover >= currentEpoch {
		return left, nil
	}
	pendingLeft, err := pending.Left()
	if err != nil {
		return nil, err
	}
	return left.Add(pendingLeft), nil
}

func effectiveRight(account *ZerosolAccount, pending *PendingAccount, currentEpoch uint64) (*curve.Point, error) {
	right, err := account.Right()
	if err != nil {
		return nil, err
	}
	if account.LastRollover >= currentEpoch {
		return right, nil
	}
	pendingRight, err := pending.Right()
	if err != nil {
		return nil, err
	}
	return right.Add(pendingRight), nil
}
