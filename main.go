// Command gargantua drives a small end-to-end scenario through the
// core state machine: initialize the pool, register two participants
// and a relayer, and fund one of them, logging whether each instruction
// was accepted. It does not run a Transfer or a Burn: both need a
// client-side proof that this harness does not generate.
//
// This is a demonstration harness, not the production entry point; see
// cmd/gargantuad for the daemon that hosts an Engine behind HTTP.
package main

import (
	"fmt"
	"log"
	"time"

	"gargantua/internal/curve"
	"gargantua/internal/gargantua"
	"gargantua/internal/transactions/register"
	"gargantua/internal/transcript"
)

// systemClock reports wall-clock seconds.
type systemClock struct{}

func (systemClock) Now() int64 { return time.Now().Unix() }

// fixedIdentity always reports the same caller; fine for a demo driver
// where every instruction in this scenario originates from one key.
type fixedIdentity struct {
	id gargantua.Identity
}

func (f fixedIdentity) CurrentCaller() gargantua.Identity { return f.id }

// memoryCustody is a trivial in-process stand-in for the external
// token-custody adapter (spec §6): it just tracks a balance per owner
// rather than touching any real token ledger.
type memoryCustody struct {
	balances map[gargantua.Identity]uint64
}

func newMemoryCustody() *memoryCustody {
	return &memoryCustody{balances: make(map[gargantua.Identity]uint64)}
}

func (c *memoryCustody) Debit(srcOwner, _ gargantua.Identity, amount uint64) error {
	if c.balances[srcOwner] < amount {
		return fmt.Errorf("memoryCustody: insufficient external balance for %x", srcOwner)
	}
	c.balances[srcOwner] -= amount
	return nil
}

func (c *memoryCustody) Credit(_, dstOwner gargantua.Identity, amount uint64) error {
	c.balances[dstOwner] += amount
	return nil
}

func main() {
	custody := newMemoryCustody()
	funder := gargantua.Identity{0x01}
	custody.balances[funder] = 1_000

	engine := gargantua.NewEngine(systemClock{}, fixedIdentity{id: funder}, custody)

	log.Println("=== Gargantua demo: initialize / register / fund ===")

	initPayload := &gargantua.Instruction{
		Tag:        gargantua.TagInitialize,
		Initialize: &gargantua.InitializePayload{EpochLength: 60, Fee: 1},
	}
	mustDispatch(engine, initPayload, "Initialize")

	aliceSk := curve.HashToScalar("demo/alice")
	alicePk := curve.ScalarBaseMult(aliceSk)
	mustDispatch(engine, registerInstruction(alicePk, aliceSk), "Register(alice)")

	bobSk := curve.HashToScalar("demo/bob")
	bobPk := curve.ScalarBaseMult(bobSk)
	mustDispatch(engine, registerInstruction(bobPk, bobSk), "Register(bob)")

	relayerSk := curve.HashToScalar("demo/relayer")
	relayerPk := curve.ScalarBaseMult(relayerSk)
	mustDispatch(engine, registerInstruction(relayerPk, relayerSk), "Register(relayer)")

	fundPayload := &gargantua.Instruction{
		Tag: gargantua.TagFund,
		Fund: &gargantua.FundPayload{
			AccountPublicKey: alicePk.Encode(),
			Amount:           500,
		},
	}
	mustDispatch(engine, fundPayload, "Fund(alice, 500)")

	log.Println("demo scenario complete: Transfer/Burn require client-side proof construction, which is out of scope for this verifier-only core.")
}

// registerInstruction builds a genuine Schnorr proof of knowledge of sk,
// reproducing exactly the transcript the verifier recomputes (see
// internal/transactions/register): this is client-side proof
// construction, included here only so the demo scenario exercises the
// verifier's success path end to end.
func registerInstruction(pk *curve.Point, sk *curve.Scalar) *gargantua.Instruction {
	pkEnc := pk.Encode()
	r := curve.HashToScalar("demo/register-nonce", pkEnc[:])
	commitment := curve.ScalarBaseMult(r)

	tr := transcript.New()
	tr.AppendBytes("domain", []byte("gargantua/register"))
	tr.AppendPoint("public_key", pk)
	tr.AppendPoint("R", commitment)
	challenge := tr.ChallengeScalar("challenge")

	response := r.Add(challenge.Mul(sk))

	return &gargantua.Instruction{
		Tag: gargantua.TagRegister,
		Register: &register.Proof{
			PublicKey: pkEnc,
			Challenge: challenge.Encode(),
			Response:  response.Encode(),
		},
	}
}

func mustDispatch(engine *gargantua.Engine, ins *gargantua.Instruction, label string) {
	encoded, err := gargantua.EncodeInstruction(ins)
	if err != nil {
		log.Fatalf("%s: encode failed: %v", label, err)
	}
	if err := engine.Dispatch(encoded); err != nil {
		log.Printf("%s: rejected: %v", label, err)
		return
	}
	log.Printf("%s: accepted", label)
}
