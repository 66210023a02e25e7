package workflows

import (
	"context"

	"envault/internal/audit"
	"envault/internal/vault"
)

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	// StoreRoot is the vault's root directory.
	StoreRoot string

	// Project is the project whose envelopes to decrypt.
	Project string

	// Password is tried against every selected envelope.
	Password []byte

	// FilePatterns narrows the operation to matching envelope files.
	// Empty means every envelope in the project.
	FilePatterns []string
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	// Project is the project operated on.
	Project string

	// Files holds one entry per envelope attempted. Failures are
	// per-file: a wrong password fails only the envelopes it was tried
	// against, and no output file is written for those. The caller may
	// retry individual files with a different password.
	Files []vault.FileResult

	// Failed counts entries whose Err is set.
	Failed int
}

// Decrypt decrypts a project's envelopes back into plaintext env files,
// overwriting any stale plaintext copy of the same kind.
//
// Returns ErrProjectNotFound if the project does not exist.
func Decrypt(ctx context.Context, opts DecryptOptions) (*DecryptResult, error) {
	store := vault.New(opts.StoreRoot)

	// Check existence before globbing so a missing project is not
	// mistaken for patterns that match nothing.
	if err := store.EnsureProject(opts.Project); err != nil {
		return nil, err
	}

	files, err := vault.ResolveFiles(opts.FilePatterns, store.ProjectDir(opts.Project), false)
	if err != nil {
		return nil, err
	}

	var results []vault.FileResult
	if files == nil {
		results, err = store.DecryptAll(opts.Project, opts.Password)
	} else {
		results, err = store.DecryptFiles(opts.Project, files, opts.Password)
	}
	if err != nil {
		return nil, err
	}

	result := &DecryptResult{Project: opts.Project, Files: results}
	var succeeded []string
	for _, r := range results {
		if r.Err != nil {
			result.Failed++
		} else {
			succeeded = append(succeeded, r.Name)
		}
	}

	audit.Log(opts.StoreRoot, audit.Entry{
		Operation: "decrypt",
		Project:   opts.Project,
		Files:     succeeded,
	})

	return result, nil
}
