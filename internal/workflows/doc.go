// Package workflows implements Envault's operations as plain functions
// over Options and Result structs. Each workflow validates its inputs,
// drives the vault, archive, and registry layers, records an audit
// entry, and returns a structured result. Errors are sentinel values
// wrapped for context and nothing panics across the CLI boundary.
//
// Interactive concerns (prompts, confirmation, spinner output) live in
// the cmd layer; workflows receive already-made decisions such as
// Overwrite or RemovePlaintext.
package workflows
