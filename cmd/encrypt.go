package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	kerrors "envault/internal/errors"
	"envault/internal/ui"
	"envault/internal/utils"
	"envault/internal/workflows"
)

var (
	encryptFiles  []string
	encryptRemove bool
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt <project>",
	Short: "Encrypt a project's env files with a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project := args[0]
		Logger.Infof("Starting encrypt command for project %s", project)

		password, err := utils.ReadPassphraseConfirmed(
			"Enter a password to encrypt the files: ",
			"Confirm the password: ",
		)
		if errors.Is(err, kerrors.ErrPasswordMismatch) {
			fmt.Println(color.RedString("✗") + " Passwords do not match. Aborting encryption.")
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}
		defer utils.Wipe(password)

		s, cleanup := startSpinner("Encrypting environment files...")
		defer cleanup()

		result, err := workflows.Encrypt(cmd.Context(), workflows.EncryptOptions{
			StoreRoot:       storeRoot,
			Project:         project,
			Password:        password,
			FilePatterns:    encryptFiles,
			RemovePlaintext: encryptRemove,
		})

		switch {
		case errors.Is(err, kerrors.ErrProjectNotFound):
			s.FinalMSG = color.RedString("✗") + " Project " + color.CyanString(project) + " not found"
			return nil
		case errors.Is(err, kerrors.ErrNoRecognizedFiles):
			s.FinalMSG = color.RedString("✗") + " No plaintext env files to encrypt in " + color.CyanString(project)
			return nil
		case err != nil:
			return Logger.ErrorfAndReturn("failed to encrypt files: %v", err)
		}

		s.FinalMSG = fileResultsMessage(result.Files, "encrypted")
		if encryptRemove {
			s.FinalMSG += ui.Info.Sprint("→") + " Plaintext copies were removed\n"
		} else {
			s.FinalMSG += ui.Info.Sprint("→") + " Plaintext copies were kept alongside the envelopes\n"
		}
		return nil
	},
}

func init() {
	encryptCmd.Flags().StringSliceVar(&encryptFiles, "files", nil, "glob patterns selecting which env files to encrypt")
	encryptCmd.Flags().BoolVar(&encryptRemove, "remove-plaintext", false, "delete each plaintext copy once its envelope is written")
}
