package workflows

import (
	"context"
	"fmt"

	"envault/internal/audit"
	"envault/internal/configs"
	"envault/internal/vault"
)

// CreateOptions configures the create workflow.
type CreateOptions struct {
	// StoreRoot is the vault's root directory.
	StoreRoot string

	// Name is the new project's name.
	Name string

	// SourcePath is the directory holding the env files to copy in.
	SourcePath string

	// Overwrite proceeds when a project of the same name exists. The copy
	// is additive per kind; existing files not re-copied stay untouched.
	Overwrite bool

	// Password, when non-nil, encrypts the copied files immediately.
	Password []byte

	// RemovePlaintext deletes the plaintext copies after encryption. Only
	// honored when Password is set.
	RemovePlaintext bool
}

// CreateResult contains the outcome of a create operation.
type CreateResult struct {
	// Name is the created project's name.
	Name string

	// ProjectPath is the project's directory.
	ProjectPath string

	// CopiedFiles lists the env kinds copied from the source.
	CopiedFiles []string

	// EncryptResults holds per-file encryption outcomes, when requested.
	EncryptResults []vault.FileResult
}

// Create creates a project from a source directory and optionally encrypts
// the copied files in the same call.
//
// Returns ErrInvalidProjectName for unusable names.
// Returns ErrProjectAlreadyExists when the name is taken and Overwrite is false.
// Returns ErrSourcePathUnreadable when the source cannot be read.
// Returns ErrNoRecognizedFiles when the source holds no recognized env file;
// any directory created for the attempt is rolled back.
func Create(ctx context.Context, opts CreateOptions) (*CreateResult, error) {
	store := vault.New(opts.StoreRoot)

	copied, err := store.CreateProject(opts.Name, opts.SourcePath, opts.Overwrite)
	if err != nil {
		return nil, err
	}

	result := &CreateResult{
		Name:        opts.Name,
		ProjectPath: store.ProjectDir(opts.Name),
		CopiedFiles: copied,
	}

	if opts.Password != nil {
		encrypted, err := store.EncryptFiles(opts.Name, copied, opts.Password, opts.RemovePlaintext)
		if err != nil {
			return nil, fmt.Errorf("encrypting copied files: %w", err)
		}
		result.EncryptResults = encrypted
	}

	reg, err := configs.LoadRegistry(opts.StoreRoot)
	if err != nil {
		return nil, err
	}
	reg.Add(opts.Name, opts.SourcePath)
	if err := configs.SaveRegistry(opts.StoreRoot, reg); err != nil {
		return nil, err
	}

	audit.Log(opts.StoreRoot, audit.Entry{
		Operation:  "create",
		Project:    opts.Name,
		Files:      copied,
		SourcePath: opts.SourcePath,
	})

	return result, nil
}
