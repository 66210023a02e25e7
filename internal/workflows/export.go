package workflows

import (
	"context"
	"fmt"
	"os"
	"time"

	"envault/internal/archive"
	"envault/internal/audit"
	kerrors "envault/internal/errors"
)

// ExportOptions configures the export workflow.
type ExportOptions struct {
	// StoreRoot is the vault's root directory.
	StoreRoot string

	// Format selects the container format.
	Format archive.Format

	// OutputPath is the archive destination. It is taken verbatim, any
	// extension, misleading or not. If empty, defaults to
	// envault-YYYY-MM-DD.<format extension>.
	OutputPath string
}

// ExportResult contains the outcome of an export operation.
type ExportResult struct {
	// OutputPath is the path to the created archive.
	OutputPath string

	// Format is the container format used.
	Format archive.Format

	// FileCount is the number of files bundled.
	FileCount int
}

// Export bundles the entire store, registry and audit log included,
// into a single container file for transfer. Project files go in as-is
// regardless of encryption state.
func Export(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	if _, err := os.Stat(opts.StoreRoot); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: store is empty", kerrors.ErrNoRecognizedFiles)
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = fmt.Sprintf("envault-%s%s", time.Now().Format("2006-01-02"), opts.Format.Extension())
	}

	count, err := archive.Compress(opts.StoreRoot, opts.Format, outputPath)
	if err != nil {
		return nil, fmt.Errorf("creating archive: %w", err)
	}
	if count == 0 {
		_ = os.Remove(outputPath)
		return nil, fmt.Errorf("%w: store is empty", kerrors.ErrNoRecognizedFiles)
	}

	audit.Log(opts.StoreRoot, audit.Entry{
		Operation:  "export",
		Format:     opts.Format.String(),
		OutputPath: outputPath,
		FilesCount: count,
	})

	return &ExportResult{OutputPath: outputPath, Format: opts.Format, FileCount: count}, nil
}
