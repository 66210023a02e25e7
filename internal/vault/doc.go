// Package vault implements the core of the Envault secrets store: key
// derivation, the authenticated encryption envelope, and the on-disk
// project store.
//
// # Envelope format
//
// An encrypted file holds a 16-byte random salt followed by a Fernet
// token:
//
//	bytes 0..15   salt, fresh per encryption
//	bytes 16..    Fernet token (version, timestamp, IV, ciphertext, HMAC)
//
// The key is derived from the password and the salt with
// PBKDF2-HMAC-SHA256 at a fixed iteration count. Because the salt is
// never reused, two encryptions of the same plaintext with the same
// password produce different envelopes. Decryption is all-or-nothing:
// any verification failure returns ErrAuthenticationFailed and no
// plaintext.
//
// # Store layout
//
//	<root>/projects/<name>/<kind>            plaintext env file
//	<root>/projects/<name>/<kind>.encrypted  envelope
//
// A Store value carries its root path and recognized-kind list
// explicitly; the package keeps no mutable state.
package vault
