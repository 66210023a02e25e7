package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"envault/internal/archive"
	kerrors "envault/internal/errors"
	"envault/internal/workflows"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Bundle the whole vault into a portable archive",
	Long: `Bundle the whole vault into a single archive file for transfer.

The output name is used exactly as given, so you can pick an extension
unrelated to the real container format to keep the file inconspicuous.
'envault import' recovers the true format regardless of the name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := archive.ParseFormat(exportFormat)
		if err != nil {
			fmt.Println(color.RedString("✗") + " Unknown format " + color.YellowString(exportFormat) +
				" (supported: zip, tar.gz)")
			return nil
		}

		s, cleanup := startSpinner("Bundling the vault...")
		defer cleanup()

		result, err := workflows.Export(cmd.Context(), workflows.ExportOptions{
			StoreRoot:  storeRoot,
			Format:     format,
			OutputPath: exportOutput,
		})
		if errors.Is(err, kerrors.ErrNoRecognizedFiles) {
			s.FinalMSG = color.RedString("✗") + " The vault is empty; nothing to export"
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to export vault: %v", err)
		}

		s.FinalMSG = color.GreenString("✓") + fmt.Sprintf(" Bundled %d files into ", result.FileCount) +
			color.YellowString(result.OutputPath) + fmt.Sprintf(" (%s)", result.Format)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "tar.gz", "container format: zip or tar.gz")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "archive path, any extension (default envault-<date>.<format>)")
}
