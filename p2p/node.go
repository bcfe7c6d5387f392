package p2p

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"gargantua/internal/curve"
)

// Node represents a participant or relayer in the network.
type Node struct {
	ID        string
	Address   string
	Peers     map[string]string // Map of Node ID to its address
	server    *http.Server
	waitGroup *sync.WaitGroup

	// DH exchange state management
	dhMutex              sync.Mutex
	DHKeys               map[string]*DHState // Map of peer ID to their DH state
	dhCompletionChannels map[string]chan error

	// OnInstruction, if set, is invoked for every relayed instruction
	// envelope this node receives (most commonly a relayer accepting a
	// participant's Transfer submission).
	OnInstruction func(senderID string, encoded []byte)
}

// NewNode creates and initializes a new Node.
func NewNode(id, address string, peers map[string]string, wg *sync.WaitGroup) *Node {
	return &Node{
		ID:                   id,
		Address:              address,
		Peers:                peers,
		waitGroup:            wg,
		DHKeys:               make(map[string]*DHState),
		dhCompletionChannels: make(map[string]chan error),
	}
}

// messageHandler is the HTTP handler for receiving messages.
// It decodes the message envelope and then processes the payload based on its type.
func (n *Node) messageHandler(w http.ResponseWriter, r *http.Request) {
	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		log.Printf("[%s] Received a bad request: %v", n.ID, err)
		return
	}

	log.Printf("[%s] Received message of type '%s'", n.ID, msg.Type)

	switch msg.Type {
	case "dh_initiate":
		var payload DHInitiatePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			log.Printf("[%s] Error unmarshalling DHInitiatePayload: %v", n.ID, err)
			return
		}
		n.handleDHInitiate(payload)

	case "dh_response":
		var payload DHResponsePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			log.Printf("[%s] Error unmarshalling DHResponsePayload: %v", n.ID, err)
			return
		}
		n.handleDHResponse(payload)

	case "instruction":
		var payload InstructionPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			log.Printf("[%s] Error unmarshalling InstructionPayload: %v", n.ID, err)
			return
		}
		if n.OnInstruction != nil {
			n.OnInstruction(payload.SenderID, payload.Encoded)
		}

	case "simple_text":
		var textPayload SimpleTextMessage
		if err := json.Unmarshal(msg.Payload, &textPayload); err != nil {
			log.Printf("[%s] Error unmarshalling SimpleTextMessage payload: %v", n.ID, err)
			return
		}
		log.Printf("    -> Text Message: '%s'", textPayload.Content)

	default:
		log.Printf("[%s] Received unknown message type: %s", n.ID, msg.Type)
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Message received")
}

// handleDHInitiate is called by the responder when it receives an initiation request.
// It generates its own key, computes the shared point, stores it, and
// sends its own public point back in a `dh_response` message.
func (n *Node) handleDHInitiate(payload DHInitiatePayload) {
	n.dhMutex.Lock()
	defer n.dhMutex.Unlock()

	log.Printf("[%s] Handling DH initiation from %s", n.ID, payload.SenderID)

	theirPublic, err := decodePoint(payload.PublicKey)
	if err != nil {
		log.Printf("[%s] Rejecting DH initiate from %s: %v", n.ID, payload.SenderID, err)
		return
	}

	secretB := curve.HashToScalar("p2p/dh-ephemeral", []byte(n.ID), []byte(payload.SenderID), []byte(time.Now().String()))
	publicB := curve.ScalarBaseMult(secretB)
	sharedSecret := theirPublic.ScalarMult(secretB)

	n.DHKeys[payload.SenderID] = &DHState{
		OurSecret:    secretB,
		OurPublic:    publicB,
		TheirPublic:  theirPublic,
		SharedSecret: sharedSecret,
		Status:       "completed",
	}

	log.Printf("[%s] Computed shared point with %s", n.ID, payload.SenderID)

	responsePayload := DHResponsePayload{
		SenderID:  n.ID,
		PublicKey: encodePoint(publicB),
	}

	go func() {
		if err := n.SendMessage(payload.SenderID, "dh_response", responsePayload); err != nil {
			log.Printf("[%s] Error sending DH response to %s: %v", n.ID, payload.SenderID, err)
		}
	}()
}

// handleDHResponse is called by the initiator when it receives the responder's public point.
func (n *Node) handleDHResponse(payload DHResponsePayload) {
	n.dhMutex.Lock()
	defer n.dhMutex.Unlock()

	log.Printf("[%s] Handling DH response from %s", n.ID, payload.SenderID)

	state, ok := n.DHKeys[payload.SenderID]
	if !ok || state.Status != "initiated" {
		log.Printf("[%s] Received a DH response for an unknown or completed session from %s", n.ID, payload.SenderID)
		return
	}

	theirPublic, err := decodePoint(payload.PublicKey)
	if err != nil {
		log.Printf("[%s] Rejecting DH response from %s: %v", n.ID, payload.SenderID, err)
		return
	}

	state.TheirPublic = theirPublic
	state.SharedSecret = theirPublic.ScalarMult(state.OurSecret)
	state.Status = "completed"

	log.Printf("[%s] Computed shared point with %s", n.ID, payload.SenderID)

	if ch, ok := n.dhCompletionChannels[payload.SenderID]; ok {
		ch <- nil
		close(ch)
		delete(n.dhCompletionChannels, payload.SenderID)
	}
}

// InitiateDHExchange starts the key exchange process with a target peer.
// It returns a channel that will receive an error or nil upon completion.
func (n *Node) InitiateDHExchange(targetID string) <-chan error {
	doneCh := make(chan error)

	go func() {
		n.dhMutex.Lock()
		defer n.dhMutex.Unlock()

		log.Printf("[%s] Initiating DH exchange with %s", n.ID, targetID)

		secretA := curve.HashToScalar("p2p/dh-ephemeral", []byte(n.ID), []byte(targetID), []byte(time.Now().String()))
		publicA := curve.ScalarBaseMult(secretA)

		n.DHKeys[targetID] = &DHState{
			OurSecret: secretA,
			OurPublic: publicA,
			Status:    "initiated",
		}
		n.dhCompletionChannels[targetID] = doneCh

		payload := DHInitiatePayload{
			SenderID:  n.ID,
			PublicKey: encodePoint(publicA),
		}

		if err := n.SendMessage(targetID, "dh_initiate", payload); err != nil {
			doneCh <- fmt.Errorf("failed to send dh_initiate message: %v", err)
			close(doneCh)
			delete(n.dhCompletionChannels, targetID)
		}
	}()

	return doneCh
}

// RelayInstruction sends an encoded Gargantua instruction to targetID —
// a participant submitting a Transfer to its relayer, or a relayer
// forwarding it onward to the host ledger.
func (n *Node) RelayInstruction(targetID string, encoded []byte) error {
	return n.SendMessage(targetID, "instruction", InstructionPayload{SenderID: n.ID, Encoded: encoded})
}

// StartServer starts the node's HTTP server in a new goroutine.
// It signals on the 'ready' channel once the server is actively listening.
func (n *Node) StartServer(ready chan<- struct{}) {
	mux := http.NewServeMux()
	mux.HandleFunc("/message", n.messageHandler)

	n.server = &http.Server{
		Addr:    n.Address,
		Handler: mux,
	}

	listener, err := net.Listen("tcp", n.Address)
	if err != nil {
		log.Fatalf("[%s] failed to listen: %v", n.ID, err)
	}

	n.waitGroup.Add(1)
	go func() {
		defer n.waitGroup.Done()
		log.Printf("[%s] Server starting on %s", n.ID, n.Address)

		ready <- struct{}{}

		if err := n.server.Serve(listener); err != http.ErrServerClosed {
			log.Fatalf("[%s] Server failed: %v", n.ID, err)
		}
		log.Printf("[%s] Server stopped.", n.ID)
	}()
}

// SendMessage sends a message to another node in the network.
// The payload can be any struct that is marshallable to JSON.
func (n *Node) SendMessage(targetID, messageType string, payload interface{}) error {
	targetAddress, ok := n.Peers[targetID]
	if !ok {
		return fmt.Errorf("peer '%s' not found in directory", targetID)
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %v", err)
	}

	msg := Message{
		Type:     messageType,
		Payload:  payloadBytes,
		SenderID: n.ID,
	}

	messageBytes, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message envelope: %v", err)
	}

	log.Printf("[%s] Sending message of type '%s' to %s at %s", n.ID, messageType, targetID, targetAddress)
	req, err := http.NewRequest("POST", "http://"+targetAddress+"/message", bytes.NewBuffer(messageBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("peer returned non-OK status: %s", resp.Status)
	}

	return nil
}
