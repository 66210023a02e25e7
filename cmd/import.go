package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	kerrors "envault/internal/errors"
	"envault/internal/workflows"
)

var importCmd = &cobra.Command{
	Use:   "import <archive>",
	Short: "Restore projects from a vault archive",
	Long: `Restore projects from a vault archive into the store.

The archive's extension is not trusted: the file is probed as each
supported container format, and when that fails, sibling files with
the real extensions are tried. Extracted entries overwrite existing
files with the same relative path; everything else is left alone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		archivePath := args[0]

		s, cleanup := startSpinner("Restoring from archive...")
		defer cleanup()

		result, err := workflows.Import(cmd.Context(), workflows.ImportOptions{
			StoreRoot:   storeRoot,
			ArchivePath: archivePath,
		})
		if errors.Is(err, kerrors.ErrUnrecognizedArchiveFormat) {
			s.FinalMSG = color.RedString("✗") + " " + color.YellowString(archivePath) +
				" is not a recognizable zip or tar.gz archive\n" +
				color.CyanString("→") + " The store was not modified"
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to import archive: %v", err)
		}

		msg := color.GreenString("✓") + fmt.Sprintf(" Merged %d files into the vault (%s)",
			result.FilesMerged, result.Format)
		if result.SourcePath != archivePath {
			msg += "\n" + color.CyanString("→") + " Recovered from sibling file " + color.YellowString(result.SourcePath)
		}
		s.FinalMSG = msg
		return nil
	},
}
