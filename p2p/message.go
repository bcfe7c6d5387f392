package p2p

import (
	"encoding/json"
	"fmt"

	"gargantua/internal/curve"
)

// Message is the generic envelope for any message sent over the network.
// It allows for flexible communication of different data structures.
type Message struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	SenderID string          `json:"senderId"`
}

// --- Diffie-Hellman state and payloads ---
//
// Peers use an ephemeral Ristretto255 DH exchange to agree on a shared
// point before relaying anything sensitive; the core never sees or
// depends on this secret, it only protects the gossip hop between
// participant and relayer.

// DHState holds the state of a single Diffie-Hellman exchange.
type DHState struct {
	OurSecret    *curve.Scalar
	OurPublic    *curve.Point
	TheirPublic  *curve.Point
	SharedSecret *curve.Point
	Status       string // "initiated" or "completed"
}

// pointJSON is the wire form of a curve.Point: its 32-byte canonical
// encoding.
type pointJSON [32]byte

func encodePoint(p *curve.Point) pointJSON {
	return pointJSON(p.Encode())
}

func decodePoint(j pointJSON) (*curve.Point, error) {
	p, err := curve.DecodePoint(j[:])
	if err != nil {
		return nil, fmt.Errorf("p2p: malformed point: %w", err)
	}
	return p, nil
}

// DHInitiatePayload is used to send the initiator's public point.
type DHInitiatePayload struct {
	SenderID  string
	PublicKey pointJSON
}

// DHResponsePayload is used by the responder to send their public point
// back.
type DHResponsePayload struct {
	SenderID  string
	PublicKey pointJSON
}

// InstructionPayload relays one encoded Gargantua instruction between a
// participant and a relayer — most commonly a Transfer envelope a
// participant cannot submit to the host ledger directly because it
// would reveal which account originated the submission.
type InstructionPayload struct {
	SenderID string
	Encoded  []byte
}

// SimpleTextMessage is a diagnostic payload used for liveness checks
// between peers.
type SimpleTextMessage struct {
	Content string `json:"content"`
}
