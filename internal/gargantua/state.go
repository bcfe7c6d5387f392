package gargantua

import (
	"encoding/binary"
	"fmt"

	"gargantua/internal/curve"
)

// GlobalState is the singleton record created by Initialize (spec §3, §6:
// 96 bytes, all integers little-endian).
type GlobalState struct {
	Authority        Identity
	TokenMint        Identity
	EpochLength      uint64 // seconds, positive
	Fee              uint64 // charged per transfer, non-negative
	LastGlobalUpdate int64  // wall-clock seconds at last epoch tick
	CurrentEpoch     uint64 // monotonically non-decreasing
}

const globalStateSize = 32 + 32 + 8 + 8 + 8 + 8 // 96

// MarshalBinary encodes GlobalState to its fixed 96-byte layout.
func (g *GlobalState) MarshalBinary() ([]byte, error) {
	buf := make([]byte, globalStateSize)
	off := 0
	off += copy(buf[off:], g.Authority[:])
	off += copy(buf[off:], g.TokenMint[:])
	binary.LittleEndian.PutUint64(buf[off:], g.EpochLength)
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], g.Fee)
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], uint64(g.LastGlobalUpdate))
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], g.CurrentEpoch)
	return buf, nil
}

// UnmarshalBinary decodes GlobalState from its fixed 96-byte layout.
func (g *GlobalState) UnmarshalBinary(b []byte) error {
	if len(b) != globalStateSize {
		return newError(InvalidAccountData, fmt.Sprintf("GlobalState: want %d bytes, got %d", globalStateSize, len(b)))
	}
	off := 0
	copy(g.Authority[:], b[off:off+32])
	off += 32
	copy(g.TokenMint[:], b[off:off+32])
	off += 32
	g.EpochLength = binary.LittleEndian.Uint64(b[off:])
	off += 8
	g.Fee = binary.LittleEndian.Uint64(b[off:])
	off += 8
	g.LastGlobalUpdate = int64(binary.LittleEndian.Uint64(b[off:]))
	off += 8
	g.CurrentEpoch = binary.LittleEndian.Uint64(b[off:])
	return nil
}

// ZerosolAccount is one per registered participant (spec §3: 105 bytes =
// 32+32+32+8+1).
type ZerosolAccount struct {
	CommitmentLeft  [32]byte // settled-balance commitment
	CommitmentRight [32]byte // blinding component anchored to PublicKey
	PublicKey       [32]byte // the participant's Schnorr identity
	LastRollover    uint64   // epoch against which Commitment{Left,Right} are current
	IsRegistered    bool
}

const zerosolAccountSize = 32 + 32 + 32 + 8 + 1 // 105

// MarshalBinary encodes ZerosolAccount to its fixed 105-byte layout.
func (a *ZerosolAccount) MarshalBinary() ([]byte, error) {
	buf := make([]byte, zerosolAccountSize)
	off := 0
	off += copy(buf[off:], a.CommitmentLeft[:])
	off += copy(buf[off:], a.CommitmentRight[:])
	off += copy(buf[off:], a.PublicKey[:])
	binary.LittleEndian.PutUint64(buf[off:], a.LastRollover)
	off += 8
	if a.IsRegistered {
		buf[off] = 1
	}
	return buf, nil
}

// UnmarshalBinary decodes ZerosolAccount from its fixed 105-byte layout.
func (a *ZerosolAccount) UnmarshalBinary(b []byte) error {
	if len(b) != zerosolAccountSize {
		return newError(InvalidAccountData, fmt.Sprintf("ZerosolAccount: want %d bytes, got %d", zerosolAccountSize, len(b)))
	}
	off := 0
	copy(a.CommitmentLeft[:], b[off:off+32])
	off += 32
	copy(a.CommitmentRight[:], b[off:off+32])
	off += 32
	copy(a.PublicKey[:], b[off:off+32])
	off += 32
	a.LastRollover = binary.LittleEndian.Uint64(b[off:])
	off += 8
	a.IsRegistered = b[off] != 0
	return nil
}

// Left decodes CommitmentLeft as a canonical point, rejecting malformed
// encodings with InvalidCommitment (spec §8 scenario 6).
func (a *ZerosolAccount) Left() (*curve.Point, error) {
	return decodeCommitment(a.CommitmentLeft)
}

// Right decodes CommitmentRight as a canonical point.
func (a *ZerosolAccount) Right() (*curve.Point, error) {
	return decodeCommitment(a.CommitmentRight)
}

// Pubkey decodes PublicKey as a canonical point.
func (a *ZerosolAccount) Pubkey() (*curve.Point, error) {
	return decodeCommitment(a.PublicKey)
}

func (a *ZerosolAccount) setLeft(p *curve.Point)  { a.CommitmentLeft = p.Encode() }
func (a *ZerosolAccount) setRight(p *curve.Point) { a.CommitmentRight = p.Encode() }

// PendingAccount is paired 1:1 with a ZerosolAccount (spec §3: 64 bytes).
// Reset to the identity pair on rollover; additive during the current
// epoch.
type PendingAccount struct {
	CommitmentLeft  [32]byte
	CommitmentRight [32]byte
}

const pendingAccountSize = 32 + 32 // 64

// MarshalBinary encodes PendingAccount to its fixed 64-byte layout.
func (p *PendingAccount) MarshalBinary() ([]byte, error) {
	buf := make([]byte, pendingAccountSize)
	copy(buf[:32], p.CommitmentLeft[:])
	copy(buf[32:], p.CommitmentRight[:])
	return buf, nil
}

// UnmarshalBinary decodes PendingAccount from its fixed 64-byte layout.
func (p *PendingAccount) UnmarshalBinary(b []byte) error {
	if len(b) != pendingAccountSize {
		return newError(InvalidAccountData, fmt.Sprintf("PendingAccount: want %d bytes, got %d", pendingAccountSize, len(b)))
	}
	copy(p.CommitmentLeft[:], b[:32])
	copy(p.CommitmentRight[:], b[32:])
	return nil
}

// Left decodes CommitmentLeft as a canonical point.
func (p *PendingAccount) Left() (*curve.Point, error) {
	return decodeCommitment(p.CommitmentLeft)
}

// Right decodes CommitmentRight as a canonical point.
func (p *PendingAccount) Right() (*curve.Point, error) {
	return decodeCommitment(p.CommitmentRight)
}

func (p *PendingAccount) setLeft(pt *curve.Point)  { p.CommitmentLeft = pt.Encode() }
func (p *PendingAccount) setRight(pt *curve.Point) { p.CommitmentRight = pt.Encode() }

func identityPair() (left, right [32]byte) {
	enc := curve.Identity().Encode()
	return enc, enc
}

// NonceState is one per consumed transfer nullifier (spec §3: 41 bytes).
// Once Used is true it is permanent within its Epoch scope.
type NonceState struct {
	Nullifier [32]byte
	Epoch     uint64
	Used      bool
}

const nonceStateSize = 32 + 8 + 1 // 41

// MarshalBinary encodes NonceState to its fixed 41-byte layout.
func (n *NonceState) MarshalBinary() ([]byte, error) {
	buf := make([]byte, nonceStateSize)
	copy(buf[:32], n.Nullifier[:])
	binary.LittleEndian.PutUint64(buf[32:], n.Epoch)
	if n.Used {
		buf[40] = 1
	}
	return buf, nil
}

// UnmarshalBinary decodes NonceState from its fixed 41-byte layout.
func (n *NonceState) UnmarshalBinary(b []byte) error {
	if len(b) != nonceStateSize {
		return newError(InvalidAccountData, fmt.Sprintf("NonceState: want %d bytes, got %d", nonceStateSize, len(b)))
	}
	copy(n.Nullifier[:], b[:32])
	n.Epoch = binary.LittleEndian.Uint64(b[32:])
	n.Used = b[40] != 0
	return nil
}

func decodeCommitment(b [32]byte) (*curve.Point, error) {
	p, err := curve.DecodePoint(b[:])
	if err != nil {
		return nil, newError(InvalidCommitment, err.Error())
	}
	return p, nil
}
