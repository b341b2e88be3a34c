// Package vault persists the remember-me credential across restarts: the
// username in the clear and the password behind a locally reversible codec.
//
// # Not a security boundary
//
// The encryption key material lives on the same machine as the ciphertext, so
// the codec is obfuscation for a convenience feature, not protection against
// an attacker with local access. Its contract is purely behavioral: a stored
// password round-trips through Remember/Recall, and a ciphertext that fails
// to decrypt degrades to an empty password instead of raising.
//
// # Storage
//
// Persistence goes through the [Storage] interface. [MemoryStorage] backs
// tests and single-process use; [RedisStorage] shares remembered credentials
// across console nodes.
package vault
