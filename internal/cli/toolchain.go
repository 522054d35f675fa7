package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deixis/swiftkit/internal/toolchain"
)

func newToolchainCommand() *cobra.Command {
	var (
		asJSON  bool
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "toolchain",
		Short: "Show the Swift toolchain in use and check its version",
		Long: `Resolve swiftc and swift (configured path, PATH, then xcrun on macOS),
read the compiler version and compare it with the configured minimum.

Exit status is 1 when a tool is missing or the version is too old.`,
		Args: args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := newLogger(cmd.ErrOrStderr(), verbose)
			defer func() { _ = log.Sync() }()

			workspace, cfg, err := loadWorkspace()
			if err != nil {
				return err
			}
			info := toolchain.Describe(cmd.Context(), newRunner(cfg, workspace, log), cfg.Swiftc, cfg.Swift, cfg.MinSwift())

			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), info); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), info.String())
			}
			if !info.Supported {
				return &ExitError{Code: ExitFailure}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}
