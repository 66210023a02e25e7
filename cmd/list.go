package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"envault/internal/workflows"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the projects in the vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.List(cmd.Context(), workflows.ListOptions{StoreRoot: storeRoot})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to list projects: %v", err)
		}

		if len(result.Projects) == 0 {
			fmt.Println("No projects yet. Run " + color.YellowString("envault create <name> --source <dir>") + " to add one.")
			return nil
		}

		for _, p := range result.Projects {
			line := color.CyanString(p.Name)
			var states []string
			if len(p.PlaintextFiles) > 0 {
				states = append(states, fmt.Sprintf("%d plaintext", len(p.PlaintextFiles)))
			}
			if len(p.EncryptedFiles) > 0 {
				states = append(states, fmt.Sprintf("%d encrypted", len(p.EncryptedFiles)))
			}
			if len(states) > 0 {
				line += "  (" + strings.Join(states, ", ") + ")"
			}
			if p.SourcePath != "" {
				line += "  " + color.HiBlackString("from "+p.SourcePath)
			}
			fmt.Println(line)
		}
		return nil
	},
}
