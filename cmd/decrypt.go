package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	kerrors "envault/internal/errors"
	"envault/internal/utils"
	"envault/internal/vault"
	"envault/internal/workflows"
)

var decryptFiles []string

var decryptCmd = &cobra.Command{
	Use:   "decrypt <project>",
	Short: "Decrypt a project's encrypted env files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project := args[0]
		Logger.Infof("Starting decrypt command for project %s", project)

		password, err := utils.ReadPassphrase("Enter the password to decrypt the files: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}
		defer utils.Wipe(password)

		s, cleanup := startSpinner("Decrypting environment files...")
		defer cleanup()

		result, err := workflows.Decrypt(cmd.Context(), workflows.DecryptOptions{
			StoreRoot:    storeRoot,
			Project:      project,
			Password:     password,
			FilePatterns: decryptFiles,
		})

		switch {
		case errors.Is(err, kerrors.ErrProjectNotFound):
			s.FinalMSG = color.RedString("✗") + " Project " + color.CyanString(project) + " not found"
			return nil
		case errors.Is(err, kerrors.ErrNoRecognizedFiles):
			s.FinalMSG = color.RedString("✗") + " No encrypted files to decrypt in " + color.CyanString(project)
			return nil
		case err != nil:
			return Logger.ErrorfAndReturn("failed to decrypt files: %v", err)
		}

		if len(result.Files) == 0 {
			s.FinalMSG = color.RedString("✗") + " No encrypted files to decrypt in " + color.CyanString(project)
			return nil
		}

		s.FinalMSG = fileResultsMessage(result.Files, "decrypted")
		if result.Failed > 0 {
			s.FinalMSG += color.CyanString("→") + " Failed files can be retried individually with " +
				color.YellowString("--files") + "\n"
		}
		return nil
	},
}

// fileResultsMessage renders per-file outcomes, one line each. Failed
// decryptions report only that authentication failed, never the
// underlying cryptographic detail.
func fileResultsMessage(results []vault.FileResult, verb string) string {
	msg := ""
	for _, r := range results {
		if r.Err != nil {
			msg += color.RedString("✗") + " " + r.Name + ": " + r.Err.Error() + "\n"
			continue
		}
		msg += color.GreenString("✓") + " " + r.Name + " " + verb + "\n"
	}
	return msg
}

func init() {
	decryptCmd.Flags().StringSliceVar(&decryptFiles, "files", nil, "glob patterns selecting which encrypted files to decrypt")
}
