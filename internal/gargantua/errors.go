package gargantua

import "fmt"

// Kind is one of the twenty fatal error categories of spec §7, plus
// TransactionFailed for custody-adapter failure. No Kind is retried
// internally.
type Kind int

const (
	InvalidInstruction Kind = iota
	AccountNotRegistered
	AccountAlreadyRegistered
	InvalidRegistrationSignature
	TransferAmountOutOfRange
	NonceAlreadySeen
	TransferProofVerificationFailed
	BurnProofVerificationFailed
	InnerProductProofVerificationFailed
	SigmaProtocolChallengeFailed
	InvalidEpoch
	InsufficientFunds
	InvalidAccountData
	InvalidProofStructure
	RangeProofVerificationFailed
	ConstraintSystemVerificationFailed
	BalanceConservationFailed
	ArithmeticConstraintFailed
	InvalidCommitment
	EpochTransitionError
	// TransactionFailed signals custody-adapter failure (spec §6); when it
	// is raised the instruction's own credit or debit is not written, but
	// the epoch bump and account rollover that precede the custody call
	// stay applied.
	TransactionFailed
)

var kindNames = map[Kind]string{
	InvalidInstruction:                  "InvalidInstruction",
	AccountNotRegistered:                "AccountNotRegistered",
	AccountAlreadyRegistered:            "AccountAlreadyRegistered",
	InvalidRegistrationSignature:        "InvalidRegistrationSignature",
	TransferAmountOutOfRange:            "TransferAmountOutOfRange",
	NonceAlreadySeen:                    "NonceAlreadySeen",
	TransferProofVerificationFailed:     "TransferProofVerificationFailed",
	BurnProofVerificationFailed:         "BurnProofVerificationFailed",
	InnerProductProofVerificationFailed: "InnerProductProofVerificationFailed",
	SigmaProtocolChallengeFailed:        "SigmaProtocolChallengeFailed",
	InvalidEpoch:                        "InvalidEpoch",
	InsufficientFunds:                   "InsufficientFunds",
	InvalidAccountData:                  "InvalidAccountData",
	InvalidProofStructure:               "InvalidProofStructure",
	RangeProofVerificationFailed:        "RangeProofVerificationFailed",
	ConstraintSystemVerificationFailed:  "ConstraintSystemVerificationFailed",
	BalanceConservationFailed:           "BalanceConservationFailed",
	ArithmeticConstraintFailed:          "ArithmeticConstraintFailed",
	InvalidCommitment:                   "InvalidCommitment",
	EpochTransitionError:                "EpochTransitionError",
	TransactionFailed:                   "TransactionFailed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the core's error type. detail is diagnostic text for operators
// and must never describe or leak witness contents (spec §7 "No error
// carries private information about the witness").
type Error struct {
	Kind   Kind
	detail string
}

func (e *Error) Error() string {
	if e.detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.detail)
}

// newError constructs an Error of the given kind with operator-facing
// detail text.
func newError(k Kind, detail string) *Error {
	return &Error{Kind: k, detail: detail}
}
