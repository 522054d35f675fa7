package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deixis/swiftkit/internal/validate"
)

type validateOptions struct {
	code    string
	run     bool
	view    bool
	json    bool
	noColor bool
	timeout time.Duration
	verbose bool
}

// NewValidateCommand returns the validate command. use is the command
// name, e.g. "swift-validate" for the standalone binary.
func NewValidateCommand(use string) *cobra.Command {
	var opts validateOptions
	cmd := &cobra.Command{
		Use:   use + " [file]",
		Short: "Validate Swift code",
		Long: `Type-check Swift code with swiftc -typecheck and optionally execute it.

The code comes from --code, then the file argument, then standard input.
With --view the code is a SwiftUI view fragment declaring ContentView; it is
wrapped in a minimal App and type-checked only.

Exit status is 0 when the code is valid and 1 otherwise.`,
		Args: args(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			return runValidate(cmd, a, &opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.code, "code", "", "Validate inline code")
	f.BoolVar(&opts.run, "run", false, "Execute the code after a successful type-check")
	f.BoolVar(&opts.view, "view", false, "Validate as SwiftUI View")
	f.BoolVar(&opts.json, "json", false, "Print the result as JSON")
	f.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	f.DurationVar(&opts.timeout, "timeout", 0, "Execution timeout (default from config, 5s)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	return configure(cmd)
}

func runValidate(cmd *cobra.Command, a []string, opts *validateOptions) error {
	log := newLogger(cmd.ErrOrStderr(), opts.verbose)
	defer func() { _ = log.Sync() }()

	code, err := readCode(cmd, a, opts.code)
	if err != nil {
		return &ExitError{Code: ExitFailure, Err: err}
	}

	workspace, cfg, err := loadWorkspace()
	if err != nil {
		return err
	}
	v := newValidator(cfg, newRunner(cfg, workspace, log), opts.timeout, log)

	res := v.Do(cmd.Context(), validate.Request{Code: code, Run: opts.run, View: opts.view})
	log.Debug("validation finished",
		zap.String("run_id", res.RunID),
		zap.Bool("valid", res.Valid),
		zap.String("stage", res.Stage),
	)

	if opts.json {
		if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
			return err
		}
	} else {
		printResult(cmd, res, opts.noColor)
	}

	if !res.Valid {
		return &ExitError{Code: ExitFailure}
	}
	return nil
}

// readCode picks the source: inline code wins over the file argument,
// which wins over standard input.
func readCode(cmd *cobra.Command, a []string, inline string) (string, error) {
	if inline != "" {
		return inline, nil
	}
	if len(a) > 0 {
		data, err := os.ReadFile(a[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", a[0], err)
		}
		return string(data), nil
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Reading from stdin...")
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func printResult(cmd *cobra.Command, res *validate.Result, noColor bool) {
	if res.Valid {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n%s\n", newBanners(out, noColor).valid(), res.Output)
		return
	}
	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "%s\n%s\n", newBanners(errOut, noColor).invalid(), res.Errors)
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}
