package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	kerrors "envault/internal/errors"
	"envault/internal/utils"
	"envault/internal/workflows"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a project and all of its files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		if !deleteForce {
			reader := bufio.NewReader(os.Stdin)
			confirmed, err := utils.PromptConfirm(reader, os.Stderr,
				"Delete project "+color.CyanString(name)+" and all of its files? This cannot be undone.", false)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read confirmation: %v", err)
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
		}

		result, err := workflows.Delete(cmd.Context(), workflows.DeleteOptions{
			StoreRoot: storeRoot,
			Name:      name,
		})
		if errors.Is(err, kerrors.ErrProjectNotFound) {
			fmt.Println(color.RedString("✗") + " Project " + color.CyanString(name) + " not found")
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to delete project: %v", err)
		}

		fmt.Println(color.GreenString("✓") + " Project " + color.CyanString(result.Name) + " deleted")
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip the confirmation prompt")
}
