// Package transcript implements the Gargantua Fiat-Shamir transcript
// (spec §4.B): an append-only, domain-separated sponge keyed by
// "GARGANTUA-v1", built on github.com/gtank/merlin. The verifier replays,
// in protocol order, the exact bytes the prover absorbed and squeezes
// challenges at designated points; any reorder or omission of a message
// changes every challenge from that point on and the proof is rejected.
package transcript
