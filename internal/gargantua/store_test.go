package gargantua

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreAccountLookupMissing(t *testing.T) {
	s := NewStore()
	_, _, ok := s.account([32]byte{1})
	if ok {
		t.Fatal("account lookup succeeded on an empty store")
	}
}

func TestStoreNonceLifecycle(t *testing.T) {
	s := NewStore()
	nullifier := [32]byte{9, 9, 9}
	if s.hasNonce(nullifier, 1) {
		t.Fatal("hasNonce reported true before the nonce was ever recorded")
	}
	s.putNonce(nullifier, 1)
	if !s.hasNonce(nullifier, 1) {
		t.Fatal("hasNonce reported false right after putNonce")
	}
	// Nullifiers are scoped per epoch: the same nullifier bytes in a
	// different epoch must not collide.
	if s.hasNonce(nullifier, 2) {
		t.Fatal("nonce leaked across epoch scope")
	}
}

func TestStoreSaveAndLoadRoundTrip(t *testing.T) {
	s := NewStore()
	s.global = &GlobalState{Authority: Identity{1}, TokenMint: Identity{2}, EpochLength: 60, Fee: 1, CurrentEpoch: 3}

	pub := [32]byte{5, 6, 7}
	left, right := identityPair()
	s.accounts[pub] = &ZerosolAccount{CommitmentLeft: left, CommitmentRight: right, PublicKey: pub, LastRollover: 3, IsRegistered: true}
	s.pending[pub] = &PendingAccount{CommitmentLeft: left, CommitmentRight: right}
	s.putNonce([32]byte{8, 8, 8}, 3)

	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	if err := s.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	loaded, err := LoadStoreFromFile(path)
	if err != nil {
		t.Fatalf("LoadStoreFromFile: %v", err)
	}
	if loaded.global == nil || loaded.global.CurrentEpoch != 3 {
		t.Fatal("GlobalState did not round-trip")
	}
	account, pending, ok := loaded.account(pub)
	if !ok {
		t.Fatal("account did not round-trip")
	}
	if account.PublicKey != pub || !account.IsRegistered {
		t.Fatal("account fields did not round-trip")
	}
	if pending.CommitmentLeft != left {
		t.Fatal("pending account did not round-trip")
	}
	if !loaded.hasNonce([32]byte{8, 8, 8}, 3) {
		t.Fatal("nonce did not round-trip")
	}
}

func TestLoadStoreFromFileMissingPath(t *testing.T) {
	if _, err := LoadStoreFromFile(filepath.Join(os.TempDir(), "gargantua-does-not-exist.json")); err == nil {
		t.Fatal("expected error loading a nonexistent snapshot file")
	}
}
