package workflows

import (
	"context"

	"envault/internal/archive"
	"envault/internal/audit"
)

// ImportOptions configures the import workflow.
type ImportOptions struct {
	// StoreRoot is the vault's root directory.
	StoreRoot string

	// ArchivePath is the container file to restore. Its extension is not
	// trusted; the true format is probed.
	ArchivePath string
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	// SourcePath is the file that actually opened as a valid container,
	// possibly a sibling of the requested path.
	SourcePath string

	// Format is the detected container format.
	Format archive.Format

	// FilesMerged counts the entries merged into the store. Entries with
	// the same relative path as existing files overwrite them.
	FilesMerged int
}

// Import restores an archive into the store. Extraction happens in an
// isolated staging area first, so a file that fails to open as any
// supported container leaves the store untouched.
//
// Returns ErrUnrecognizedArchiveFormat when the file opens as neither
// supported container under its own name or a recovered sibling name.
// Merge failures after a successful extraction are returned as themselves.
func Import(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	res, err := archive.Decompress(opts.ArchivePath, opts.StoreRoot)
	if err != nil {
		return nil, err
	}

	audit.Log(opts.StoreRoot, audit.Entry{
		Operation:  "import",
		SourcePath: res.SourcePath,
		Format:     res.Format.String(),
		FilesCount: len(res.Extracted),
	})

	return &ImportResult{
		SourcePath:  res.SourcePath,
		Format:      res.Format,
		FilesMerged: len(res.Extracted),
	}, nil
}
