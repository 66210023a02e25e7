package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	kerrors "envault/internal/errors"
	"envault/internal/utils"
	"envault/internal/workflows"
)

var (
	createSource    string
	createOverwrite bool
	createEncrypt   bool
	createRemove    bool
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project and copy its env files into the vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		Logger.Infof("Starting create command for project %s", name)

		// Prompt before the spinner starts so hidden input isn't mangled.
		var password []byte
		if createEncrypt {
			var err error
			password, err = utils.ReadPassphraseConfirmed(
				"Enter a password to encrypt the copied files: ",
				"Confirm the password: ",
			)
			if errors.Is(err, kerrors.ErrPasswordMismatch) {
				fmt.Println(color.RedString("✗") + " Passwords do not match. Aborting.")
				return nil
			}
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read password: %v", err)
			}
			defer utils.Wipe(password)
		}

		s, cleanup := startSpinner("Creating project...")
		defer cleanup()

		result, err := workflows.Create(cmd.Context(), workflows.CreateOptions{
			StoreRoot:       storeRoot,
			Name:            name,
			SourcePath:      createSource,
			Overwrite:       createOverwrite,
			Password:        password,
			RemovePlaintext: createRemove,
		})

		switch {
		case errors.Is(err, kerrors.ErrInvalidProjectName):
			s.FinalMSG = color.RedString("✗") + " " + color.CyanString(name) + " cannot be used as a project name"
			return nil
		case errors.Is(err, kerrors.ErrProjectAlreadyExists):
			s.FinalMSG = color.RedString("✗") + " Project " + color.CyanString(name) + " already exists\n" +
				color.CyanString("→") + " Re-run with " + color.YellowString("--overwrite") + " to copy into it anyway"
			return nil
		case errors.Is(err, kerrors.ErrSourcePathUnreadable):
			s.FinalMSG = color.RedString("✗") + " Cannot read source directory " + color.YellowString(createSource)
			return nil
		case errors.Is(err, kerrors.ErrNoRecognizedFiles):
			s.FinalMSG = color.RedString("✗") + " No env files found in " + color.YellowString(createSource) + "\n" +
				color.CyanString("→") + " Recognized names: .env, .env.local, .env.development, .env.production"
			return nil
		case err != nil:
			return Logger.ErrorfAndReturn("failed to create project: %v", err)
		}

		msg := color.GreenString("✓") + " Project " + color.CyanString(name) + " created with " +
			strings.Join(result.CopiedFiles, ", ")
		if createEncrypt {
			msg += "\n" + color.GreenString("✓") + " Copied files encrypted"
			if createRemove {
				msg += " and plaintext copies removed"
			}
		}
		s.FinalMSG = msg
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createSource, "source", "s", ".", "directory holding the env files to copy")
	createCmd.Flags().BoolVar(&createOverwrite, "overwrite", false, "copy into an existing project of the same name")
	createCmd.Flags().BoolVarP(&createEncrypt, "encrypt", "e", false, "encrypt the copied files immediately")
	createCmd.Flags().BoolVar(&createRemove, "remove-plaintext", false, "delete plaintext copies after encryption (with --encrypt)")
}
