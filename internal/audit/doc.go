// Package audit appends a JSON Lines record of vault operations to the
// store root. The trail records what happened and when, never passwords
// or file contents.
package audit
