package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deixis/swiftkit/internal/scaffold"
	"github.com/deixis/swiftkit/internal/toolchain"
)

type scaffoldOptions struct {
	platform    string
	path        string
	swiftpmInit bool
	verbose     bool
}

// NewScaffoldCommand returns the scaffold command. use is the command
// name, e.g. "swift-scaffold" for the standalone binary.
func NewScaffoldCommand(use string) *cobra.Command {
	var opts scaffoldOptions
	cmd := &cobra.Command{
		Use:   use + " <name>",
		Short: "Scaffold Swift app project",
		Long: `Create a SwiftUI app skeleton under <path>/<name>: Package.swift,
Sources/<name>/main.swift and .gitignore.

With --swiftpm-init the directory is populated by 'swift package init'
instead of the SwiftUI templates.`,
		Args: args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			return runScaffold(cmd, a[0], &opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.platform, "platform", "macos", "Target platform ("+strings.Join(scaffold.PlatformNames(), ", ")+")")
	f.StringVar(&opts.path, "path", ".", "Output directory")
	f.BoolVar(&opts.swiftpmInit, "swiftpm-init", false, "Run 'swift package init' instead of writing the SwiftUI templates")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	return configure(cmd)
}

func runScaffold(cmd *cobra.Command, name string, opts *scaffoldOptions) error {
	log := newLogger(cmd.ErrOrStderr(), opts.verbose)
	defer func() { _ = log.Sync() }()

	_, cfg, err := loadWorkspace()
	if err != nil {
		return err
	}

	platform := opts.platform
	if !cmd.Flags().Changed("platform") {
		platform = cfg.Platform()
	}
	if _, err := scaffold.ParsePlatform(platform); err != nil {
		return usageError(err)
	}

	parent, err := filepath.Abs(opts.path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", opts.path, err)
	}
	so := scaffold.Options{Name: name, Platform: platform, Path: parent}
	log.Debug("scaffolding", zap.String("name", name), zap.String("platform", platform), zap.String("path", parent))

	out := cmd.OutOrStdout()
	if opts.swiftpmInit {
		r := newRunner(cfg, parent, log)
		res, err := scaffold.InitPackage(cmd.Context(), r, toolchain.ResolveOrName(toolchain.Swift, cfg.Swift), so)
		if err != nil {
			return err
		}
		scaffold.PrintPackageSummary(out, res)
		return nil
	}

	res, err := scaffold.Generate(so)
	if err != nil {
		return err
	}
	scaffold.PrintSummary(out, res, name)
	return nil
}
