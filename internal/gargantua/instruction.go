package gargantua

import (
	"gargantua/internal/bulletproof"
	"gargantua/internal/transactions/burn"
	"gargantua/internal/transactions/register"
	"gargantua/internal/transactions/transfer"
)

// Tag selects one of the six operations (spec §6 "Instruction encoding":
// one leading tag byte, 0..=5).
type Tag byte

const (
	TagInitialize Tag = iota
	TagRegister
	TagFund
	TagTransfer
	TagBurn
	TagRollOver
)

type InitializePayload struct {
	EpochLength uint64
	Fee         uint64
}

type FundPayload struct {
	AccountPublicKey [32]byte
	Amount           uint64
}

type TransferPayload struct {
	Commitments []([32]byte)
	CommitmentD [32]byte
	PublicKeys  []([32]byte)
	Nonce       [32]byte
	Beneficiary [32]byte
	Relayer     [32]byte
	Proof       *transfer.Proof
}

type BurnPayload struct {
	AccountPublicKey [32]byte
	Amount           uint64
	Nonce            [32]byte
	Proof            *burn.Proof
}

type RollOverPayload struct {
	AccountPublicKey [32]byte
}

// Instruction is the decoded form of one wire instruction: exactly one
// of the payload fields is non-nil, selected by Tag. A tag switch over
// this closed sum (rather than an interface with six implementations)
// keeps each operation's dispatch logic in one place (spec §9 "prefer a
// tag switch over polymorphism").
type Instruction struct {
	Tag        Tag
	Initialize *InitializePayload
	Register   *register.Proof
	Fund       *FundPayload
	Transfer   *TransferPayload
	Burn       *BurnPayload
	RollOver   *RollOverPayload
}

// EncodeInstruction serializes an Instruction to its wire form: a tag
// byte followed by the operation's fields in the order §4.F lists them.
func EncodeInstruction(ins *Instruction) ([]byte, error) {
	w := &byteWriter{buf: []byte{byte(ins.Tag)}}
	switch ins.Tag {
	case TagInitialize:
		w.u64(ins.Initialize.EpochLength)
		w.u64(ins.Initialize.Fee)
	case TagRegister:
		w.fixed(ins.Register.PublicKey[:])
		w.fixed(ins.Register.Challenge[:])
		w.fixed(ins.Register.Response[:])
	case TagFund:
		w.fixed(ins.Fund.AccountPublicKey[:])
		w.u64(ins.Fund.Amount)
	case TagTransfer:
		encodeTransferPayload(w, ins.Transfer)
	case TagBurn:
		w.fixed(ins.Burn.AccountPublicKey[:])
		w.u64(ins.Burn.Amount)
		w.fixed(ins.Burn.Nonce[:])
		encodeBurnProof(w, ins.Burn.Proof)
	case TagRollOver:
		w.fixed(ins.RollOver.AccountPublicKey[:])
	default:
		return nil, newError(InvalidInstruction, "unknown tag")
	}
	return w.buf, nil
}

// DecodeInstruction parses the wire form written by EncodeInstruction.
func DecodeInstruction(b []byte) (*Instruction, error) {
	if len(b) == 0 {
		return nil, newError(InvalidInstruction, "empty payload")
	}
	tag := Tag(b[0])
	r := &byteReader{buf: b[1:]}
	ins := &Instruction{Tag: tag}

	switch tag {
	case TagInitialize:
		epochLength, err := r.u64()
		if err != nil {
			return nil, err
		}
		fee, err := r.u64()
		if err != nil {
			return nil, err
		}
		ins.Initialize = &InitializePayload{EpochLength: epochLength, Fee: fee}
	case TagRegister:
		pub, err := r.point32()
		if err != nil {
			return nil, err
		}
		chal, err := r.point32()
		if err != nil {
			return nil, err
		}
		resp, err := r.point32()
		if err != nil {
			return nil, err
		}
		ins.Register = &register.Proof{PublicKey: pub, Challenge: chal, Response: resp}
	case TagFund:
		pub, err := r.point32()
		if err != nil {
			return nil, err
		}
		amount, err := r.u64()
		if err != nil {
			return nil, err
		}
		ins.Fund = &FundPayload{AccountPublicKey: pub, Amount: amount}
	case TagTransfer:
		payload, err := decodeTransferPayload(r)
		if err != nil {
			return nil, err
		}
		ins.Transfer = payload
	case TagBurn:
		pub, err := r.point32()
		if err != nil {
			return nil, err
		}
		amount, err := r.u64()
		if err != nil {
			return nil, err
		}
		nonce, err := r.point32()
		if err != nil {
			return nil, err
		}
		proof, err := decodeBurnProof(r)
		if err != nil {
			return nil, err
		}
		ins.Burn = &BurnPayload{AccountPublicKey: pub, Amount: amount, Nonce: nonce, Proof: proof}
	case TagRollOver:
		pub, err := r.point32()
		if err != nil {
			return nil, err
		}
		ins.RollOver = &RollOverPayload{AccountPublicKey: pub}
	default:
		return nil, newError(InvalidInstruction, "unknown tag")
	}

	if !r.atEnd() {
		return nil, newError(InvalidInstruction, "trailing payload bytes")
	}
	return ins, nil
}

func encodeTransferPayload(w *byteWriter, p *TransferPayload) {
	encodePoints32(w, p.Commitments)
	w.fixed(p.CommitmentD[:])
	encodePoints32(w, p.PublicKeys)
	w.fixed(p.Nonce[:])
	w.fixed(p.Beneficiary[:])
	w.fixed(p.Relayer[:])
	encodeTransferProof(w, p.Proof)
}

func decodeTransferPayload(r *byteReader) (*TransferPayload, error) {
	commitments, err := decodePoints32(r)
	if err != nil {
		return nil, err
	}
	commitmentD, err := r.point32()
	if err != nil {
		return nil, err
	}
	publicKeys, err := decodePoints32(r)
	if err != nil {
		return nil, err
	}
	nonce, err := r.point32()
	if err != nil {
		return nil, err
	}
	beneficiary, err := r.point32()
	if err != nil {
		return nil, err
	}
	relayer, err := r.point32()
	if err != nil {
		return nil, err
	}
	proof, err := decodeTransferProof(r)
	if err != nil {
		return nil, err
	}
	return &TransferPayload{
		Commitments: commitments,
		CommitmentD: commitmentD,
		PublicKeys:  publicKeys,
		Nonce:       nonce,
		Beneficiary: beneficiary,
		Relayer:     relayer,
		Proof:       proof,
	}, nil
}

func encodePoints32(w *byteWriter, pts []([32]byte)) {
	w.u64(uint64(len(pts)))
	for _, p := range pts {
		w.fixed(p[:])
	}
}

func decodePoints32(r *byteReader) ([]([32]byte), error) {
	n, err := r.u64()
	if err != nil {
		return nil, err
	}
	out := make([]([32]byte), n)
	for i := range out {
		out[i], err = r.point32()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func encodeOwnership(w *byteWriter, ownership []transfer.OwnershipProof) {
	w.u64(uint64(len(ownership)))
	for _, o := range ownership {
		w.fixed(o.Commitment[:])
		w.fixed(o.LinkageCommitment[:])
		w.fixed(o.Response[:])
	}
}

func decodeOwnership(r *byteReader) ([]transfer.OwnershipProof, error) {
	n, err := r.u64()
	if err != nil {
		return nil, err
	}
	out := make([]transfer.OwnershipProof, n)
	for i := range out {
		c, err := r.point32()
		if err != nil {
			return nil, err
		}
		linkage, err := r.point32()
		if err != nil {
			return nil, err
		}
		s, err := r.point32()
		if err != nil {
			return nil, err
		}
		out[i] = transfer.OwnershipProof{Commitment: c, LinkageCommitment: linkage, Response: s}
	}
	return out, nil
}

func encodeTransferProof(w *byteWriter, p *transfer.Proof) {
	rp := p.Range.Encode()
	w.bytes(rp)
	encodeOwnership(w, p.Ownership)
	w.fixed(p.FeeOpening[:])
}

func decodeTransferProof(r *byteReader) (*transfer.Proof, error) {
	rpBytes, err := r.bytes()
	if err != nil {
		return nil, err
	}
	rp, _, err := bulletproof.DecodeRangeProof(rpBytes)
	if err != nil {
		return nil, newError(InvalidProofStructure, err.Error())
	}
	ownership, err := decodeOwnership(r)
	if err != nil {
		return nil, err
	}
	fee, err := r.point32()
	if err != nil {
		return nil, err
	}
	return &transfer.Proof{Range: rp, Ownership: ownership, FeeOpening: fee}, nil
}

func encodeBurnProof(w *byteWriter, p *burn.Proof) {
	rp := p.Range.Encode()
	w.bytes(rp)
	w.fixed(p.Commitment[:])
	w.fixed(p.Response[:])
}

func decodeBurnProof(r *byteReader) (*burn.Proof, error) {
	rpBytes, err := r.bytes()
	if err != nil {
		return nil, err
	}
	rp, _, err := bulletproof.DecodeRangeProof(rpBytes)
	if err != nil {
		return nil, newError(InvalidProofStructure, err.Error())
	}
	commitment, err := r.point32()
	if err != nil {
		return nil, err
	}
	response, err := r.point32()
	if err != nil {
		return nil, err
	}
	return &burn.Proof{Range: rp, Commitment: commitment, Response: response}, nil
}
