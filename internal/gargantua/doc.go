// Package gargantua implements the Gargantua account/epoch engine and
// instruction dispatcher (spec §4.E-§4.F): a custodied confidential-payment
// pool whose participants register, fund, transfer between, and burn
// balances without revealing sender, receiver, or amount, verified against
// a Pedersen-committed account model rather than a trusted-setup circuit.
//
// Overview:
//   - GlobalState, ZerosolAccount, PendingAccount, and NonceState are the
//     four persisted record kinds (spec §3), held by an in-memory Store
//     keyed by account identity and optionally snapshotted to disk.
//   - Engine sequences load → verify → write for each of the six
//     instructions, holding the Engine's mutex for the duration so no
//     instruction observes another's partial effects.
//   - The per-operation proof types and their verification wiring live in
//     internal/transactions/{register,transfer,burn}; this package owns
//     only the state machine and the tag-switch dispatch.
//
// Security model:
//   - No field here ever holds a raw secret key or blinding factor; all
//     cryptographic material is points, scalars that are public
//     proof responses, or opaque nonces.
//   - Errors never carry information about a rejected witness (spec §7).
package gargantua
