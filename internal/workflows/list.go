package workflows

import (
	"context"

	"envault/internal/configs"
	"envault/internal/vault"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	// StoreRoot is the vault's root directory.
	StoreRoot string
}

// ProjectInfo describes one project in a list result.
type ProjectInfo struct {
	// Name is the project's name.
	Name string

	// SourcePath is the registered origin of the project's env files.
	// Empty when the project directory exists without a registry entry.
	SourcePath string

	// PlaintextFiles lists the recognized plaintext kinds present.
	PlaintextFiles []string

	// EncryptedFiles lists the envelope files present.
	EncryptedFiles []string
}

// ListResult contains the outcome of a list operation.
type ListResult struct {
	// Projects is sorted by name and reflects the directory state at call
	// time; nothing is cached between calls.
	Projects []ProjectInfo
}

// List enumerates the store's projects with their file states.
func List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	store := vault.New(opts.StoreRoot)

	names, err := store.ListProjects()
	if err != nil {
		return nil, err
	}

	reg, err := configs.LoadRegistry(opts.StoreRoot)
	if err != nil {
		return nil, err
	}

	result := &ListResult{}
	for _, name := range names {
		info := ProjectInfo{Name: name}
		if entry, ok := reg.Projects[name]; ok {
			info.SourcePath = entry.SourcePath
		}

		// Listing ignores per-project read errors; a project that vanished
		// mid-listing simply shows no files.
		info.PlaintextFiles, _ = store.PlaintextFiles(name)
		info.EncryptedFiles, _ = store.ListEncrypted(name)

		result.Projects = append(result.Projects, info)
	}

	return result, nil
}
