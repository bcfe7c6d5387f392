package gargantua

import (
	"sync"

	"gargantua/internal/curve"
	"gargantua/internal/transactions/burn"
	"gargantua/internal/transactions/register"
	"gargantua/internal/transactions/transfer"
)

// Engine is the dispatcher of spec §4.F: it holds exclusive logical
// access to every record an instruction touches for the instruction's
// duration, sequences verifier calls, and writes new state only after
// every check has passed (spec §4.E "Ordering and atomicity").
type Engine struct {
	mu       sync.Mutex
	store    *Store
	clock    Clock
	identity IdentitySource
	custody  Custody
}

// NewEngine constructs an Engine over an empty store.
func NewEngine(clock Clock, identity IdentitySource, custody Custody) *Engine {
	return &Engine{
		store:    NewStore(),
		clock:    clock,
		identity: identity,
		custody:  custody,
	}
}

// Dispatch decodes and executes one instruction. It is the sole entry
// point: no instruction handler is reachable except through here, so
// every operation is serialized behind the Engine's mutex (spec §5
// "the dispatcher holds exclusive logical access to every record it
// touches").
func (e *Engine) Dispatch(payload []byte) error {
	ins, err := DecodeInstruction(payload)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	switch ins.Tag {
	case TagInitialize:
		return e.initialize(ins.Initialize)
	case TagRegister:
		return e.register(ins.Register)
	case TagFund:
		return e.fund(ins.Fund)
	case TagTransfer:
		return e.transfer(ins.Transfer)
	case TagBurn:
		return e.burn(ins.Burn)
	case TagRollOver:
		return e.rollOver(ins.RollOver)
	default:
		return newError(InvalidInstruction, "unreachable tag")
	}
}

// initialize writes GlobalState exactly once (spec §4.F "Initialize").
func (e *Engine) initialize(p *InitializePayload) error {
	if e.store.global != nil {
		return newError(InvalidInstruction, "global state already initialized")
	}
	if p.EpochLength == 0 {
		return newError(InvalidEpoch, "epoch_length must be positive")
	}
	caller := e.identity.CurrentCaller()
	e.store.global = &GlobalState{
		Authority:        caller,
		TokenMint:        caller,
		EpochLength:      p.EpochLength,
		Fee:              p.Fee,
		LastGlobalUpdate: e.clock.Now(),
		CurrentEpoch:     0,
	}
	return nil
}

// register creates a ZerosolAccount + PendingAccount at the identity
// commitment once the Schnorr proof of knowledge of the public key's
// discrete log checks out (spec §4.F "Register").
func (e *Engine) register(p *register.Proof) error {
	if e.store.global == nil {
		return newError(InvalidInstruction, "global state not initialized")
	}
	if _, _, ok := e.store.account(p.PublicKey); ok {
		return newError(AccountAlreadyRegistered, "")
	}
	if err := register.Verify(p); err != nil {
		return newError(InvalidRegistrationSignature, err.Error())
	}

	left, right := identityPair()
	e.store.accounts[p.PublicKey] = &ZerosolAccount{
		CommitmentLeft:  left,
		CommitmentRight: right,
		PublicKey:       p.PublicKey,
		LastRollover:    e.store.global.CurrentEpoch,
		IsRegistered:    true,
	}
	pendingLeft, pendingRight := identityPair()
	e.store.pending[p.PublicKey] = &PendingAccount{CommitmentLeft: pendingLeft, CommitmentRight: pendingRight}
	return nil
}

// fund moves amount tokens from the caller into custody and credits the
// account's pending commitments (spec §4.F "Fund").
func (e *Engine) fund(p *FundPayload) error {
	g := e.store.global
	if g == nil {
		return newError(InvalidInstruction, "global state not initialized")
	}
	bumpEpoch(g, e.clock.Now())

	account, pending, ok := e.store.account(p.AccountPublicKey)
	if !ok {
		return newError(AccountNotRegistered, "")
	}
	if err := rollover(account, pending, g.CurrentEpoch); err != nil {
		return err
	}

	pubkey, err := account.Pubkey()
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

	amountScalar := curve.ScalarFromUint64(p.Amount)
	newPendingLeft := pendingLeft.Add(curve.Commit(amountScalar, curve.ScalarZero()))
	newPendingRight := pendingRight.Add(pubkey.ScalarMult(amountScalar))

	// The custody debit must succeed before the funded amount is written
	// to the pending commitments: on failure the core raises
	// TransactionFailed (spec §6). The epoch bump and rollover above are
	// already applied and stay applied.
	caller := e.identity.CurrentCaller()
	if err := e.custody.Debit(caller, e.store.global.TokenMint, p.Amount); err != nil {
		return newError(TransactionFailed, err.Error())
	}

	pending.setLeft(newPendingLeft)
	pending.setRight(newPendingRight)
	return nil
}

// transfer verifies an anonymous transfer and, on success, moves value
// out of each input's pending commitments into the beneficiary's and
// the relayer's (fee) pending commitments (spec §4.F "Transfer").
func (e *Engine) transfer(p *TransferPayload) error {
	g := e.store.global
	if g == nil {
		return newError(InvalidInstruction, "global state not initialized")
	}
	bumpEpoch(g, e.clock.Now())

	if e.store.hasNonce(p.Nonce, g.CurrentEpoch) {
		return newError(NonceAlreadySeen, "")
	}

	commitments := make([]*curve.Point, len(p.Commitments))
	publicKeys := make([]*curve.Point, len(p.PublicKeys))
	for i, c := range p.Commitments {
		pt, err := curve.DecodePoint(c[:])
		if err != nil {
			return newError(InvalidCommitment, err.Error())
		}
		commitments[i] = pt
	}
	for i, pk := range p.PublicKeys {
		pt, err := curve.DecodePoint(pk[:])
		if err != nil {
			return newError(InvalidCommitment, err.Error())
		}
		publicKeys[i] = pt
	}
	remainder, err := curve.DecodePoint(p.CommitmentD[:])
	if err != nil {
		return newError(InvalidCommitment, err.Error())
	}
	feeCommitment := curve.Commit(curve.ScalarFromUint64(g.Fee), curve.ScalarZero())

	// Resolve and validate every touched account up front, without
	// mutating anything: a missing beneficiary or relayer must not leave
	// an earlier input already rolled over (spec §4.E "load -> verify ->
	// write; no interleaving").
	type touchedAccount struct {
		account *ZerosolAccount
		pending *PendingAccount
	}
	inputs := make([]touchedAccount, len(p.PublicKeys))
	accountLeft := make([]*curve.Point, len(p.PublicKeys))
	accountRight := make([]*curve.Point, len(p.PublicKeys))
	for i, pk := range p.PublicKeys {
		account, pending, ok := e.store.account(pk)
		if !ok {
			return newError(AccountNotRegistered, "")
		}
		left, err := effectiveLeft(account, pending, g.CurrentEpoch)
		if err != nil {
			return err
		}
		right, err := effectiveRight(account, pending, g.CurrentEpoch)
		if err != nil {
			return err
		}
		inputs[i] = touchedAccount{account: account, pending: pending}
		accountLeft[i] = left
		accountRight[i] = right
	}
	beneficiaryAccount, beneficiaryPending, ok := e.store.account(p.Beneficiary)
	if !ok {
		return newError(AccountNotRegistered, "")
	}
	relayerAccount, relayerPending, ok := e.store.account(p.Relayer)
	if !ok {
		return newError(AccountNotRegistered, "")
	}

	stmt := &transfer.Statement{
		Epoch:         g.CurrentEpoch,
		Nonce:         p.Nonce,
		Beneficiary:   p.Beneficiary,
		Commitments:   commitments,
		PublicKeys:    publicKeys,
		AccountLeft:   accountLeft,
		AccountRight:  accountRight,
		Remainder:     remainder,
		FeeCommitment: feeCommitment,
	}
	if err := transfer.Verify(stmt, p.Proof); err != nil {
		return newError(TransferProofVerificationFailed, err.Error())
	}

	// Every check has passed: perform the real mutations.
	for i, in := range inputs {
		if err := rollover(in.account, in.pending, g.CurrentEpoch); err != nil {
			return err
		}
		pendingLeft, err := in.pending.Left()
		if err != nil {
			return err
		}
		pendingRight, err := in.pending.Right()
		if err != nil {
			return err
		}
		// Conceptually pending.right -= sk_i*C_i, but the verifier never
		// learns sk_i: it applies the same prover-supplied commitment to
		// both components directly (spec §4.F "Transfer": "implemented
		// as direct subtraction of the prover-supplied commitments").
		in.pending.setLeft(pendingLeft.Sub(commitments[i]))
		in.pending.setRight(pendingRight.Sub(commitments[i]))
	}

	if err := rollover(beneficiaryAccount, beneficiaryPending, g.CurrentEpoch); err != nil {
		return err
	}
	benLeft, err := beneficiaryPending.Left()
	if err != nil {
		return err
	}
	beneficiaryPending.setLeft(benLeft.Add(remainder))

	if err := rollover(relayerAccount, relayerPending, g.CurrentEpoch); err != nil {
		return err
	}
	relayerLeft, err := relayerPending.Left()
	if err != nil {
		return err
	}
	relayerPending.setLeft(relayerLeft.Add(feeCommitment))

	e.store.putNonce(p.Nonce, g.CurrentEpoch)
	return nil
}

// burn verifies ownership and balance sufficiency, debits the settled
// balance, and releases amount tokens from custody (spec §4.F "Burn").
func (e *Engine) burn(p *BurnPayload) error {
	g := e.store.global
	if g == nil {
		return newError(InvalidInstruction, "global state not initialized")
	}
	bumpEpoch(g, e.clock.Now())

	if e.store.hasNonce(p.Nonce, g.CurrentEpoch) {
		return newError(NonceAlreadySeen, "")
	}

	account, pending, ok := e.store.account(p.AccountPublicKey)
	if !ok {
		return newError(AccountNotRegistered, "")
	}
	if err := rollover(account, pending, g.CurrentEpoch); err != nil {
		return err
	}

	pubkey, err := account.Pubkey()
	if err != nil {
		return err
	}
	left, err := account.Left()
	if err != nil {
		return err
	}
	postBalance := left.Sub(curve.Commit(curve.ScalarFromUint64(p.Amount), curve.ScalarZero()))

	stmt := &burn.Statement{
		Epoch:       g.CurrentEpoch,
		Nonce:       p.Nonce,
		Amount:      p.Amount,
		PublicKey:   pubkey,
		PostBalance: postBalance,
	}
	if err := burn.Verify(stmt, p.Proof); err != nil {
		return newError(BurnProofVerificationFailed, err.Error())
	}

	// The custody credit must succeed before the post-burn balance and
	// nonce are written: on failure the core raises TransactionFailed
	// (spec §6). The epoch bump and rollover above are already applied and
	// stay applied.
	if err := e.custody.Credit(e.store.global.TokenMint, e.identity.CurrentCaller(), p.Amount); err != nil {
		return newError(TransactionFailed, err.Error())
	}

	account.setLeft(postBalance)
	e.store.putNonce(p.Nonce, g.CurrentEpoch)
	return nil
}

// EngineStatus is a point-in-time snapshot of engine state for health
// reporting; it never exposes account data, only what a liveness check
// needs.
type EngineStatus struct {
	Initialized  bool
	CurrentEpoch uint64
	LastUpdate   int64 // wall-clock seconds at the last epoch tick
}

// Status reports whether GlobalState has been initialized and the
// epoch/clock values it last observed, for a health checker to compare
// against its own wall clock.
func (e *Engine) Status() EngineStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.store.global == nil {
		return EngineStatus{}
	}
	return EngineStatus{
		Initialized:  true,
		CurrentEpoch: e.store.global.CurrentEpoch,
		LastUpdate:   e.store.global.LastGlobalUpdate,
	}
}

// SaveSnapshot persists the engine's current state to path, for a host
// process to checkpoint across restarts.
func (e *Engine) SaveSnapshot(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.SaveToFile(path)
}

// LoadSnapshot replaces the engine's state with the snapshot at path. It
// must only be called before the engine starts serving instructions.
func (e *Engine) LoadSnapshot(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	loaded, err := LoadStoreFromFile(path)
	if err != nil {
		return err
	}
	e.store = loaded
	return nil
}

// rollOver performs the engine's rollover step on one account; it is
// idempotent and requires no proof (spec §4.F "RollOver").
func (e *Engine) rollOver(p *RollOverPayload) error {
	g := e.store.global
	if g == nil {
		return newError(InvalidInstruction, "global state not initialized")
	}
	bumpEpoch(g, e.clock.Now())

	account, pending, ok := e.store.account(p.AccountPublicKey)
	if !ok {
		return newError(AccountNotRegistered, "")
	}
	return rollover(account, pending, g.CurrentEpoch)
}
