package bulletproof

import "errors"

// ErrProofStructure is returned when a proof's element counts or vector
// lengths don't match its claimed aggregation, n, or round count
// (spec §4.C: "reject any proof with wrong element count or wrong element
// types").
var ErrProofStructure = errors.New("bulletproof: malformed proof structure")

// ErrZeroChallenge is returned when a Fiat-Shamir challenge squeezed during
// verification is the zero scalar (spec §4.C: "reject when any challenge
// would be zero").
var ErrZeroChallenge = errors.New("bulletproof: zero challenge")

// ErrRangeProofFailed is returned when the t-polynomial identity does not
// hold.
var ErrRangeProofFailed = errors.New("bulletproof: range proof identity failed")

// ErrInnerProductFailed is returned when the inner-product argument's final
// folded identity does not hold.
var ErrInnerProductFailed = errors.New("bulletproof: inner-product argument failed")
