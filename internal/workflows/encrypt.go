package workflows

import (
	"context"

	"envault/internal/audit"
	"envault/internal/vault"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	// StoreRoot is the vault's root directory.
	StoreRoot string

	// Project is the project whose files to encrypt.
	Project string

	// Password encrypts the files. The caller has already confirmed it.
	Password []byte

	// FilePatterns narrows the operation to matching env files. Empty
	// means every present recognized kind.
	FilePatterns []string

	// RemovePlaintext deletes each plaintext copy after its envelope has
	// been written. Leaving both copies is a valid, explicit choice.
	RemovePlaintext bool
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	// Project is the project operated on.
	Project string

	// Files holds one entry per env file attempted, each independent.
	Files []vault.FileResult
}

// Encrypt encrypts a project's env files with a password-derived key. The
// plaintext copy is removed only after its envelope is on disk, so no
// partial failure silently loses data.
//
// Returns ErrProjectNotFound if the project does not exist.
// Returns ErrNoRecognizedFiles if no env file is present or matches.
func Encrypt(ctx context.Context, opts EncryptOptions) (*EncryptResult, error) {
	store := vault.New(opts.StoreRoot)

	// Check existence before globbing so a missing project is not
	// mistaken for patterns that match nothing.
	if err := store.EnsureProject(opts.Project); err != nil {
		return nil, err
	}

	files, err := vault.ResolveFiles(opts.FilePatterns, store.ProjectDir(opts.Project), true)
	if err != nil {
		return nil, err
	}

	var results []vault.FileResult
	if files == nil {
		results, err = store.EncryptAll(opts.Project, opts.Password, opts.RemovePlaintext)
	} else {
		results, err = store.EncryptFiles(opts.Project, files, opts.Password, opts.RemovePlaintext)
	}
	if err != nil {
		return nil, err
	}

	var succeeded []string
	for _, r := range results {
		if r.Err == nil {
			succeeded = append(succeeded, r.Name)
		}
	}

	audit.Log(opts.StoreRoot, audit.Entry{
		Operation: "encrypt",
		Project:   opts.Project,
		Files:     succeeded,
	})

	return &EncryptResult{Project: opts.Project, Files: results}, nil
}
