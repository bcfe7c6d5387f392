package gargantua

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// nonceKey identifies a NonceState record: nullifiers are scoped per
// epoch (spec §4.E "Nullifier set").
type nonceKey struct {
	nullifier [32]byte
	epoch     uint64
}

// Store is the engine's persisted-record table: accounts and nonces keyed
// by identity, generalizing the teacher's append-only note ledger
// (internal/zerocash/ledger.go) to a keyed account model. It is not
// exported for direct mutation — Engine holds the lock that makes the
// load → verify → write sequence of spec §4.E/§5 atomic.
type Store struct {
	mu       sync.Mutex
	global   *GlobalState
	accounts map[[32]byte]*ZerosolAccount
	pending  map[[32]byte]*PendingAccount
	nonces   map[nonceKey]*NonceState
}

// NewStore creates an empty store. GlobalState is populated by Initialize.
func NewStore() *Store {
	return &Store{
		accounts: make(map[[32]byte]*ZerosolAccount),
		pending:  make(map[[32]byte]*PendingAccount),
		nonces:   make(map[nonceKey]*NonceState),
	}
}

func (s *Store) account(pubkey [32]byte) (*ZerosolAccount, *PendingAccount, bool) {
	a, ok := s.accounts[pubkey]
	if !ok {
		return nil, nil, false
	}
	return a, s.pending[pubkey], true
}

func (s *Store) hasNonce(nullifier [32]byte, epoch uint64) bool {
	n, ok := s.nonces[nonceKey{nullifier, epoch}]
	return ok && n.Used
}

func (s *Store) putNonce(nullifier [32]byte, epoch uint64) {
	s.nonces[nonceKey{nullifier, epoch}] = &NonceState{Nullifier: nullifier, Epoch: epoch, Used: true}
}

// snapshot is the on-disk JSON representation of a Store, mirroring the
// teacher's Ledger.SaveToFile/LoadLedgerFromFile shape (internal/zerocash/
// ledger.go) generalized from an append-only list to keyed records.
type snapshot struct {
	Global   *GlobalState
	Accounts map[string]*ZerosolAccount
	Pending  map[string]*PendingAccount
	Nonces   []*NonceState
}

// SaveToFile persists the store to a JSON snapshot file, overwriting any
// existing file at path.
func (s *Store) SaveToFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &snapshot{
		Global:   s.global,
		Accounts: make(map[string]*ZerosolAccount, len(s.accounts)),
		Pending:  make(map[string]*PendingAccount, len(s.pending)),
	}
	for k, v := range s.accounts {
		snap.Accounts[fmt.Sprintf("%x", k)] = v
	}
	for k, v := range s.pending {
		snap.Pending[fmt.Sprintf("%x", k)] = v
	}
	for _, n := range s.nonces {
		snap.Nonces = append(snap.Nonces, n)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// LoadStoreFromFile loads a store from a JSON snapshot file written by
// SaveToFile.
func LoadStoreFromFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var snap snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return nil, err
	}

	s := NewStore()
	s.global = snap.Global
	for k, v := range snap.Accounts {
		decoded, err := hex.DecodeString(k)
		if err != nil || len(decoded) != 32 {
			continue
		}
		var key [32]byte
		copy(key[:], decoded)
		s.accounts[key] = v
	}
	for k, v := range snap.Pending {
		decoded, err := hex.DecodeString(k)
		if err != nil || len(decoded) != 32 {
			continue
		}
		var key [32]byte
		copy(key[:], decoded)
		s.pending[key] = v
	}
	for _, n := range snap.Nonces {
		s.nonces[nonceKey{n.Nullifier, n.Epoch}] = n
	}
	return s, nil
}
