package gargantua

import (
	"testing"

	"gargantua/internal/transactions/register"
)

func TestInitializeInstructionRoundTrips(t *testing.T) {
	ins := &Instruction{Tag: TagInitialize, Initialize: &InitializePayload{EpochLength: 60, Fee: 3}}
	encoded, err := EncodeInstruction(ins)
	if err != nil {
		t.Fatalf("EncodeInstruction: %v", err)
	}
	decoded, err := DecodeInstruction(encoded)
	if err != nil {
		t.Fatalf("DecodeInstruction: %v", err)
	}
	if *decoded.Initialize != *ins.Initialize {
		t.Fatalf("round trip mismatch: got %+v, want %+v", decoded.Initialize, ins.Initialize)
	}
}

func TestRegisterInstructionRoundTrips(t *testing.T) {
	ins := &Instruction{Tag: TagRegister, Register: &register.Proof{
		PublicKey: [32]byte{1}, Challenge: [32]byte{2}, Response: [32]byte{3},
	}}
	encoded, err := EncodeInstruction(ins)
	if err != nil {
		t.Fatalf("EncodeInstruction: %v", err)
	}
	decoded, err := DecodeInstruction(encoded)
	if err != nil {
		t.Fatalf("DecodeInstruction: %v", err)
	}
	if *decoded.Register != *ins.Register {
		t.Fatal("Register proof did not round-trip")
	}
}

func TestFundInstructionRoundTrips(t *testing.T) {
	ins := &Instruction{Tag: TagFund, Fund: &FundPayload{AccountPublicKey: [32]byte{4}, Amount: 500}}
	encoded, _ := EncodeInstruction(ins)
	decoded, err := DecodeInstruction(encoded)
	if err != nil {
		t.Fatalf("DecodeInstruction: %v", err)
	}
	if *decoded.Fund != *ins.Fund {
		t.Fatal("Fund payload did not round-trip")
	}
}

func TestRollOverInstructionRoundTrips(t *testing.T) {
	ins := &Instruction{Tag: TagRollOver, RollOver: &RollOverPayload{AccountPublicKey: [32]byte{6}}}
	encoded, _ := EncodeInstruction(ins)
	decoded, err := DecodeInstruction(encoded)
	if err != nil {
		t.Fatalf("DecodeInstruction: %v", err)
	}
	if *decoded.RollOver != *ins.RollOver {
		t.Fatal("RollOver payload did not round-trip")
	}
}

func TestDecodeInstructionRejectsEmptyPayload(t *testing.T) {
	if _, err := DecodeInstruction(nil); err == nil {
		t.Fatal("expected error decoding an empty payload")
	}
}

func TestDecodeInstructionRejectsTrailingBytes(t *testing.T) {
	ins := &Instruction{Tag: TagRollOver, RollOver: &RollOverPayload{AccountPublicKey: [32]byte{6}}}
	encoded, _ := EncodeInstruction(ins)
	encoded = append(encoded, 0xAB)
	if _, err := DecodeInstruction(encoded); err == nil {
		t.Fatal("expected error decoding a payload with trailing bytes")
	}
}

func TestDecodeInstructionRejectsTruncatedPayload(t *testing.T) {
	ins := &Instruction{Tag: TagFund, Fund: &FundPayload{AccountPublicKey: [32]byte{4}, Amount: 500}}
	encoded, _ := EncodeInstruction(ins)
	if _, err := DecodeInstruction(encoded[:len(encoded)-3]); err == nil {
		t.Fatal("expected error decoding a truncated payload")
	}
}

func TestDecodeInstructionRejectsUnknownTag(t *testing.T) {
	if _, err := DecodeInstruction([]byte{0xFF}); err == nil {
		t.Fatal("expected error decoding an unknown tag byte")
	}
}
