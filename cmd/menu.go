package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"envault/internal/archive"
	kerrors "envault/internal/errors"
	"envault/internal/utils"
	"envault/internal/workflows"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the interactive vault menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		banner := figure.NewColorFigure("Envault", "", "cyan", true)
		banner.Print()
		fmt.Println()

		reader := bufio.NewReader(os.Stdin)
		for {
			choice, err := utils.PromptSelect(reader, os.Stdout, "Choose an option", []string{
				"Create a new project and copy its env files",
				"Encrypt a project's env files",
				"Decrypt a project's env files",
				"List projects",
				"Delete a project",
				"Export the vault to an archive",
				"Import a vault archive",
				"Exit",
			})
			if err != nil {
				return err
			}

			switch choice {
			case "Create a new project and copy its env files":
				menuCreate(cmd, reader)
			case "Encrypt a project's env files":
				menuEncrypt(cmd, reader)
			case "Decrypt a project's env files":
				menuDecrypt(cmd, reader)
			case "List projects":
				_ = listCmd.RunE(cmd, nil)
			case "Delete a project":
				menuDelete(cmd, reader)
			case "Export the vault to an archive":
				menuExport(cmd, reader)
			case "Import a vault archive":
				menuImport(cmd, reader)
			case "Exit":
				fmt.Println(color.CyanString("Exiting..."))
				return nil
			}
			fmt.Println()
		}
	},
}

func menuCreate(cmd *cobra.Command, reader *bufio.Reader) {
	name, err := utils.PromptInput(reader, os.Stdout, "Enter new project name", "")
	if err != nil || name == "" {
		fmt.Println(color.RedString("✗") + " A project name is required")
		return
	}
	source, err := utils.PromptInput(reader, os.Stdout, "Enter the directory holding the env files", ".")
	if err != nil {
		return
	}

	opts := workflows.CreateOptions{StoreRoot: storeRoot, Name: name, SourcePath: source}

	encrypt, err := utils.PromptConfirm(reader, os.Stdout, "Do you want to encrypt the copied files?", true)
	if err != nil {
		return
	}
	if encrypt {
		password, err := utils.ReadPassphraseConfirmed(
			"Enter a password to encrypt the copied files: ",
			"Confirm the password: ",
		)
		if errors.Is(err, kerrors.ErrPasswordMismatch) {
			fmt.Println(color.RedString("✗") + " Passwords do not match. Aborting encryption.")
			return
		}
		if err != nil {
			fmt.Println(color.RedString("✗") + " " + err.Error())
			return
		}
		defer utils.Wipe(password)
		opts.Password = password

		remove, err := utils.PromptConfirm(reader, os.Stdout, "Do you want to delete the unencrypted copies?", true)
		if err != nil {
			return
		}
		opts.RemovePlaintext = remove
	}

	result, err := workflows.Create(cmd.Context(), opts)
	switch {
	case errors.Is(err, kerrors.ErrProjectAlreadyExists):
		overwrite, perr := utils.PromptConfirm(reader, os.Stdout,
			"Project "+color.CyanString(name)+" already exists. Copy into it anyway?", false)
		if perr != nil || !overwrite {
			fmt.Println("Aborted.")
			return
		}
		opts.Overwrite = true
		result, err = workflows.Create(cmd.Context(), opts)
		if err != nil {
			fmt.Println(color.RedString("✗") + " " + err.Error())
			return
		}
	case errors.Is(err, kerrors.ErrNoRecognizedFiles),
		errors.Is(err, kerrors.ErrSourcePathUnreadable),
		errors.Is(err, kerrors.ErrInvalidProjectName):
		fmt.Println(color.RedString("✗") + " " + err.Error())
		return
	case err != nil:
		fmt.Println(color.RedString("✗") + " " + err.Error())
		return
	}

	for _, file := range result.CopiedFiles {
		fmt.Println(color.GreenString("✓") + " Copied " + color.YellowString(file) + " into project " + color.CyanString(name))
	}
	for _, r := range result.EncryptResults {
		if r.Err != nil {
			fmt.Println(color.RedString("✗") + " " + r.Name + ": " + r.Err.Error())
		} else {
			fmt.Println(color.GreenString("✓") + " Encrypted " + color.YellowString(r.Name))
		}
	}
}

func menuEncrypt(cmd *cobra.Command, reader *bufio.Reader) {
	project, ok := menuSelectProject(cmd, reader)
	if !ok {
		return
	}

	password, err := utils.ReadPassphraseConfirmed(
		"Enter a password to encrypt the files: ",
		"Confirm the password: ",
	)
	if errors.Is(err, kerrors.ErrPasswordMismatch) {
		fmt.Println(color.RedString("✗") + " Passwords do not match. Aborting encryption.")
		return
	}
	if err != nil {
		fmt.Println(color.RedString("✗") + " " + err.Error())
		return
	}
	defer utils.Wipe(password)

	remove, err := utils.PromptConfirm(reader, os.Stdout, "Do you want to delete the unencrypted copies?", true)
	if err != nil {
		return
	}

	result, err := workflows.Encrypt(cmd.Context(), workflows.EncryptOptions{
		StoreRoot:       storeRoot,
		Project:         project,
		Password:        password,
		RemovePlaintext: remove,
	})
	if err != nil {
		fmt.Println(color.RedString("✗") + " " + err.Error())
		return
	}
	fmt.Print(fileResultsMessage(result.Files, "encrypted"))
}

func menuDecrypt(cmd *cobra.Command, reader *bufio.Reader) {
	project, ok := menuSelectProject(cmd, reader)
	if !ok {
		return
	}

	password, err := utils.ReadPassphrase("Enter the password to decrypt the files: ")
	if err != nil {
		fmt.Println(color.RedString("✗") + " " + err.Error())
		return
	}
	defer utils.Wipe(password)

	result, err := workflows.Decrypt(cmd.Context(), workflows.DecryptOptions{
		StoreRoot: storeRoot,
		Project:   project,
		Password:  password,
	})
	if err != nil {
		fmt.Println(color.RedString("✗") + " " + err.Error())
		return
	}
	if len(result.Files) == 0 {
		fmt.Println(color.RedString("✗") + " No encrypted files in project " + color.CyanString(project))
		return
	}
	fmt.Print(fileResultsMessage(result.Files, "decrypted"))
}

func menuDelete(cmd *cobra.Command, reader *bufio.Reader) {
	project, ok := menuSelectProject(cmd, reader)
	if !ok {
		return
	}

	confirmed, err := utils.PromptConfirm(reader, os.Stdout,
		"Delete project "+color.CyanString(project)+" and all of its files? This cannot be undone.", false)
	if err != nil || !confirmed {
		fmt.Println("Aborted.")
		return
	}

	if _, err := workflows.Delete(cmd.Context(), workflows.DeleteOptions{StoreRoot: storeRoot, Name: project}); err != nil {
		fmt.Println(color.RedString("✗") + " " + err.Error())
		return
	}
	fmt.Println(color.GreenString("✓") + " Project " + color.CyanString(project) + " deleted")
}

func menuExport(cmd *cobra.Command, reader *bufio.Reader) {
	formatName, err := utils.PromptSelect(reader, os.Stdout, "Choose a container format", []string{"tar.gz", "zip"})
	if err != nil {
		return
	}
	format, _ := archive.ParseFormat(formatName)

	output, err := utils.PromptInput(reader, os.Stdout, "Archive path (any extension)", "")
	if err != nil {
		return
	}

	result, err := workflows.Export(cmd.Context(), workflows.ExportOptions{
		StoreRoot:  storeRoot,
		Format:     format,
		OutputPath: output,
	})
	if err != nil {
		fmt.Println(color.RedString("✗") + " " + err.Error())
		return
	}
	fmt.Println(color.GreenString("✓") + fmt.Sprintf(" Bundled %d files into ", result.FileCount) +
		color.YellowString(result.OutputPath))
}

func menuImport(cmd *cobra.Command, reader *bufio.Reader) {
	path, err := utils.PromptInput(reader, os.Stdout, "Path of the archive to restore", "")
	if err != nil || path == "" {
		fmt.Println(color.RedString("✗") + " An archive path is required")
		return
	}

	result, err := workflows.Import(cmd.Context(), workflows.ImportOptions{StoreRoot: storeRoot, ArchivePath: path})
	if err != nil {
		fmt.Println(color.RedString("✗") + " " + err.Error())
		return
	}
	fmt.Println(color.GreenString("✓") + fmt.Sprintf(" Merged %d files into the vault (%s)", result.FilesMerged, result.Format))
}

// menuSelectProject presents the project list and returns the choice.
func menuSelectProject(cmd *cobra.Command, reader *bufio.Reader) (string, bool) {
	list, err := workflows.List(cmd.Context(), workflows.ListOptions{StoreRoot: storeRoot})
	if err != nil {
		fmt.Println(color.RedString("✗") + " " + err.Error())
		return "", false
	}
	if len(list.Projects) == 0 {
		fmt.Println("No projects yet.")
		return "", false
	}

	names := make([]string, 0, len(list.Projects))
	for _, p := range list.Projects {
		names = append(names, p.Name)
	}

	name, err := utils.PromptSelect(reader, os.Stdout, "Choose a project", names)
	if err != nil {
		return "", false
	}
	return name, true
}
