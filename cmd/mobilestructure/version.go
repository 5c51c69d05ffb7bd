package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.eggybyte.com/mobilestructure/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show mobilestructure version information",
		Long: `Display version information for the mobilestructure CLI.

This command shows:
  • CLI version, git commit hash, and build timestamp
  • Go runtime version and platform`,
		Args: cobra.NoArgs,
		// Skip settings resolution, a broken config must not hide the version.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersionInfo())
		},
	}
}

// setVersion wires --version and -v on the root command.
func setVersion(rootCmd *cobra.Command) {
	rootCmd.Version = version.GetVersionString()
	rootCmd.SetVersionTemplate(`{{.Version}}
`)
}
