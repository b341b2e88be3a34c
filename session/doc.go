// Package session holds the process-wide authenticated state for the console:
// the token pair, the user identity, the role, and the flat permission set.
//
// # Atomicity
//
// [Store.Set] and [Store.Clear] replace the whole state under a single write
// lock. Readers that race with a write observe either the fully-prior or the
// fully-new state, never a mix. There is no partially-authenticated state.
//
// # Architecture boundaries
//
// This package owns the [Store] and the [Session] snapshot model. It does NOT
// call the network, interpret tokens, or decide navigation policy — those
// responsibilities belong to the Controller and the Guard.
//
// # What this package must NOT do
//
//   - Import consoleauth or any sibling package (no upward imports).
//   - Cache permission decisions outside the store.
//   - Persist anything: the store lives and dies with the process.
package session
