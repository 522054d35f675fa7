// Package cli builds the cobra commands behind the swift-validate,
// swift-scaffold and swiftkit binaries.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deixis/swiftkit/internal/config"
	"github.com/deixis/swiftkit/internal/runner"
	"github.com/deixis/swiftkit/internal/toolchain"
	"github.com/deixis/swiftkit/internal/validate"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError carries a process exit status out of a command. Err is nil
// when the command has already reported the failure itself.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}

// Execute runs cmd with a context cancelled on SIGINT and returns the
// process exit status. Errors are printed to the command's stderr.
func Execute(ctx context.Context, cmd *cobra.Command) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	var ee *ExitError
	if errors.As(err, &ee) {
		if ee.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", cmd.Name(), ee.Err)
		}
		return ee.Code
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", cmd.Name(), err)
	return ExitFailure
}

// configure applies the settings shared by every command built here.
func configure(cmd *cobra.Command) *cobra.Command {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError(fmt.Errorf("%w\nRun '%s --help' for usage.", err, c.CommandPath()))
	})
	return cmd
}

// args wraps a cobra positional-argument validator so that its failures
// exit with the usage status.
func args(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, a []string) error {
		if err := fn(cmd, a); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// newRunner builds the process runner for a workspace. Swapped in tests.
var newRunner = func(cfg *config.Config, workspace string, log *zap.Logger) validate.CommandRunner {
	return &runner.Runner{
		Workspace: workspace,
		Timeout:   cfg.Timeout(),
		MaxOutput: cfg.MaxOutputBytes(),
		Logger:    log,
	}
}

// loadWorkspace returns the working directory and its configuration.
func loadWorkspace() (string, *config.Config, error) {
	workspace, err := os.Getwd()
	if err != nil {
		return "", nil, fmt.Errorf("determining workspace: %w", err)
	}
	loaded, err := config.Load(workspace)
	if err != nil {
		return "", nil, fmt.Errorf("loading config: %w", err)
	}
	return workspace, loaded.Config, nil
}

// newValidator builds a validator from configuration. A positive
// runTimeout overrides the configured execution timeout.
func newValidator(cfg *config.Config, r validate.CommandRunner, runTimeout time.Duration, log *zap.Logger) *validate.Validator {
	if runTimeout <= 0 {
		runTimeout = cfg.RunTimeout()
	}
	return &validate.Validator{
		Runner:        r,
		Swiftc:        toolchain.ResolveOrName(toolchain.Swiftc, cfg.Swiftc),
		Swift:         toolchain.ResolveOrName(toolchain.Swift, cfg.Swift),
		TypecheckArgs: cfg.Typecheck.Args,
		RunArgs:       cfg.Run.Args,
		RunTimeout:    runTimeout,
		Logger:        log,
	}
}
