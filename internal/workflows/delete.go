package workflows

import (
	"context"

	"envault/internal/audit"
	"envault/internal/configs"
	"envault/internal/vault"
)

// DeleteOptions configures the delete workflow.
type DeleteOptions struct {
	// StoreRoot is the vault's root directory.
	StoreRoot string

	// Name is the project to delete.
	Name string
}

// DeleteResult contains the outcome of a delete operation.
type DeleteResult struct {
	// Name is the deleted project's name.
	Name string
}

// Delete removes a project's entire subtree and its registry entry. The
// removal is irreversible.
//
// Returns ErrProjectNotFound if no such project exists.
func Delete(ctx context.Context, opts DeleteOptions) (*DeleteResult, error) {
	store := vault.New(opts.StoreRoot)

	if err := store.DeleteProject(opts.Name); err != nil {
		return nil, err
	}

	reg, err := configs.LoadRegistry(opts.StoreRoot)
	if err == nil {
		reg.Remove(opts.Name)
		// Registry cleanup is best-effort; the directory is already gone.
		_ = configs.SaveRegistry(opts.StoreRoot, reg)
	}

	audit.Log(opts.StoreRoot, audit.Entry{
		Operation: "delete",
		Project:   opts.Name,
	})

	return &DeleteResult{Name: opts.Name}, nil
}
