package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deixis/swiftkit"
)

// NewRootCommand returns the swiftkit command with all subcommands.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swiftkit",
		Short: "Validate Swift code and scaffold SwiftUI apps",
		Long: `swiftkit type-checks Swift snippets with the installed toolchain, scaffolds
SwiftUI app packages, and serves both as MCP tools for coding agents.`,
		Version: swiftkit.Version,
	}
	cmd.AddCommand(
		NewValidateCommand("validate"),
		NewScaffoldCommand("scaffold"),
		newToolchainCommand(),
		newMCPCommand(),
		newVersionCommand(),
	)
	return configure(cmd)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "swiftkit version %s\n", swiftkit.Version)
			return nil
		},
	}
}
