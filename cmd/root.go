package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"envault/internal/configs"
	logger "envault/internal/logging"
)

var (
	verbose   bool
	debug     bool
	storeFlag string

	// storeRoot is resolved once per invocation and passed to every
	// workflow; nothing below the cmd layer reads flags or environment.
	storeRoot string

	Logger logger.Logger

	RootCmd = &cobra.Command{
		Use:   "envault",
		Short: "Envault - a local vault for your project's env files.",
		Long: `Envault groups a project's environment files under a named project,
encrypts them at rest with a password-derived key, and can bundle the
whole vault into a portable archive for transfer.

The vault lives in a local store directory (--store, ENVAULT_STORE, or
the XDG data directory by default). Run 'envault menu' for the
interactive menu, or use the subcommands directly.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			Logger = logger.Logger{Verbose: verbose, Debug: debug}

			var err error
			storeRoot, err = configs.ResolveStoreRoot(storeFlag)
			if err != nil {
				return fmt.Errorf("resolving store root: %w", err)
			}
			Logger.Debugf("Using store root: %s", storeRoot)
			return nil
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "store root directory (default: $ENVAULT_STORE or XDG data dir)")

	RootCmd.AddCommand(createCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(deleteCmd)
	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(importCmd)
	RootCmd.AddCommand(menuCmd)
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
