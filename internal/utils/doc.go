// Package utils provides shared helpers for terminal interaction and
// filesystem plumbing: hidden passphrase prompts, yes/no and list
// selection prompts, and copy/move primitives used by the store and
// archive layers.
package utils
