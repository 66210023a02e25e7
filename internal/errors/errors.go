package errors

import "errors"

// Project errors indicate issues with project state in the vault.
var (
	// ErrProjectNotFound indicates the named project does not exist in the store.
	ErrProjectNotFound = errors.New("project not found")

	// ErrProjectAlreadyExists indicates a project with this name already exists.
	// Non-fatal: callers may retry with overwrite semantics after confirmation.
	ErrProjectAlreadyExists = errors.New("project already exists")

	// ErrInvalidProjectName indicates the project name cannot be used as a
	// directory name (empty, path separators, traversal components, or NUL).
	ErrInvalidProjectName = errors.New("invalid project name")
)

// File errors indicate issues with source files or file discovery.
var (
	// ErrNoRecognizedFiles indicates no recognized env file was found.
	ErrNoRecognizedFiles = errors.New("no recognized env files found")

	// ErrSourcePathUnreadable indicates the source directory could not be read.
	ErrSourcePathUnreadable = errors.New("source path is not readable")
)

// Cryptographic errors indicate failures during encryption or decryption.
var (
	// ErrPasswordMismatch indicates the password and its confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrAuthenticationFailed indicates decryption failed. A wrong password,
	// a corrupted envelope, and a truncated envelope are intentionally not
	// distinguished, and the underlying cryptographic error is never exposed.
	ErrAuthenticationFailed = errors.New("decryption failed: wrong password or corrupted data")

	// ErrInvalidSaltLength indicates a salt of the wrong size was supplied
	// to key derivation.
	ErrInvalidSaltLength = errors.New("invalid salt length")
)

// Archive errors indicate failures while bundling or restoring the store.
var (
	// ErrUnrecognizedArchiveFormat indicates the file could not be opened as
	// any supported container format, under its own name or a sibling name.
	ErrUnrecognizedArchiveFormat = errors.New("unrecognized archive format")

	// ErrInvalidArchivePath indicates an archive entry would escape the
	// extraction root.
	ErrInvalidArchivePath = errors.New("invalid file path in archive")
)
