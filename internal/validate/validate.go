// Package validate checks Swift snippets with the compiler's type-checker
// and optionally executes them.
//
// The package never interprets Swift itself. A snippet is written to a temp
// file, handed to `swiftc -typecheck`, and, when requested, to `swift` under
// a short timeout. Every fault is folded into the returned Result; callers
// never see an error.
package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/deixis/swiftkit/internal/report"
	"github.com/deixis/swiftkit/internal/runner"
)

// DefaultRunTimeout bounds snippet execution when RunTimeout is unset.
const DefaultRunTimeout = 5 * time.Second

// Result messages.
const (
	MsgTypecheckPassed = "syntax and type checking passed"
	execOutputHeader   = "\n\n--- Execution Output ---\n"
	warningsHeader     = "\n--- Warnings ---\n"
	truncatedNote      = "\n[output truncated]\n"
)

// Stages name the step that decided a result.
const (
	StageTypecheck = "typecheck"
	StageExecute   = "execute"
	StageInternal  = "internal"
)

// CommandRunner executes commands within a workspace.
// Implemented by runner.Runner.
type CommandRunner interface {
	Run(ctx context.Context, argv []string, cwd string) (*runner.Result, error)
}

// Request is one validation as received from a CLI or tool call.
type Request struct {
	Code string
	Run  bool // execute after a successful type-check
	View bool // wrap as a SwiftUI view fragment; never executed
}

// Result is the outcome of a validation. A valid result carries Output,
// an invalid one carries Errors.
type Result struct {
	RunID       string              `json:"run_id"`
	Kind        report.Kind         `json:"kind"`
	Valid       bool                `json:"valid"`
	Output      string              `json:"output"`
	Errors      string              `json:"errors"`
	Stage       string              `json:"stage"`
	Executed    bool                `json:"executed"`
	ExitCode    *int                `json:"exit_code,omitempty"` // execution exit status
	Diagnostics []report.Diagnostic `json:"diagnostics,omitempty"`
}

// Record converts the result for the run store.
func (r *Result) Record() *report.RunResult {
	return &report.RunResult{
		ID:          r.RunID,
		Kind:        r.Kind,
		Valid:       r.Valid,
		Stage:       r.Stage,
		Output:      r.Output,
		Errors:      r.Errors,
		Diagnostics: r.Diagnostics,
	}
}

// Validator runs the type-check and execute pipeline.
type Validator struct {
	Runner        CommandRunner
	Swiftc        string        // compiler binary; defaults to "swiftc"
	Swift         string        // driver binary; defaults to "swift"
	TypecheckArgs []string      // extra swiftc flags
	RunArgs       []string      // extra swift flags, placed before the file
	RunTimeout    time.Duration // execution bound; defaults to DefaultRunTimeout
	TempDir       string        // where snippet files go; "" selects os.TempDir
	Logger        *zap.Logger
}

// Do dispatches a request to Validate or ValidateView.
func (v *Validator) Do(ctx context.Context, req Request) *Result {
	if req.View {
		return v.ValidateView(ctx, req.Code)
	}
	return v.Validate(ctx, req.Code, req.Run)
}

// Validate type-checks code and, if run is set and the type-check passed,
// executes it. A timed-out execution turns a passing type-check into an
// invalid result. The snippet file is removed before Validate returns.
func (v *Validator) Validate(ctx context.Context, code string, run bool) (res *Result) {
	res = &Result{
		RunID: uuid.New().String(),
		Kind:  report.Validate,
		Stage: StageInternal,
	}
	log := v.logger().With(zap.String("run_id", res.RunID))

	defer func() {
		if p := recover(); p != nil {
			log.Error("validation panicked", zap.Any("panic", p))
			res.fail(StageInternal, fmt.Sprintf("validation error: %v", p))
		}
	}()

	file, err := newScratch(v.TempDir, code)
	if err != nil {
		res.fail(StageInternal, "validation error: "+err.Error())
		return res
	}
	defer func() {
		if err := file.Remove(); err != nil {
			log.Warn("removing snippet file", zap.String("path", file.path), zap.Error(err))
		}
	}()

	if err := v.typecheck(ctx, file.path, res); err != nil {
		log.Debug("typecheck could not run", zap.Error(err))
		res.fail(StageInternal, "validation error: "+err.Error())
		return res
	}
	if !res.Valid || !run {
		return res
	}

	if err := v.execute(ctx, file.path, res); err != nil {
		if errors.Is(err, runner.ErrTimeout) {
			log.Debug("execution timed out", zap.Duration("limit", v.runTimeout()))
			res.fail(StageExecute, fmt.Sprintf("execution timeout (%s limit)", v.runTimeout()))
			res.Executed = true
			return res
		}
		res.fail(StageInternal, "validation error: "+err.Error())
		return res
	}
	return res
}

// ValidateView wraps a SwiftUI view fragment in a minimal App declaration
// and type-checks it. The wrapped program is never executed.
func (v *Validator) ValidateView(ctx context.Context, fragment string) *Result {
	res := v.Validate(ctx, WrapView(fragment), false)
	res.Kind = report.View
	return res
}

// WrapView returns fragment embedded between a SwiftUI import and an App
// whose scene shows ContentView.
func WrapView(fragment string) string {
	return viewPrologue + fragment + viewEpilogue
}

const viewPrologue = "\nimport SwiftUI\n\n"

const viewEpilogue = `

// Minimal validation wrapper
struct ValidateApp: App {
    var body: some Scene {
        WindowGroup {
            ContentView()
        }
    }
}
`

// typecheck runs swiftc -typecheck and records its verdict in res. The
// returned error is reserved for failures to run the compiler at all.
func (v *Validator) typecheck(ctx context.Context, path string, res *Result) error {
	argv := []string{v.swiftc(), "-typecheck"}
	argv = append(argv, v.TypecheckArgs...)
	argv = append(argv, path)

	out, err := v.Runner.Run(ctx, argv, "")
	if err != nil {
		return err
	}

	res.Stage = StageTypecheck
	res.Diagnostics = ParseDiagnostics(out.Stderr, path)
	if out.ExitCode != 0 {
		res.Valid = false
		res.Errors = string(out.Stderr)
		return nil
	}
	res.Valid = true
	res.Output = MsgTypecheckPassed
	return nil
}

// execute runs the snippet with swift under the run timeout and appends
// its streams to res.Output.
func (v *Validator) execute(ctx context.Context, path string, res *Result) error {
	ctx, cancel := context.WithTimeout(ctx, v.runTimeout())
	defer cancel()

	argv := []string{v.swift()}
	argv = append(argv, v.RunArgs...)
	argv = append(argv, path)

	out, err := v.Runner.Run(ctx, argv, "")
	if err != nil {
		return err
	}

	res.Stage = StageExecute
	res.Executed = true
	exit := out.ExitCode
	res.ExitCode = &exit

	var b strings.Builder
	b.WriteString(res.Output)
	b.WriteString(execOutputHeader)
	b.Write(out.Stdout)
	if len(out.Stderr) > 0 {
		b.WriteString(warningsHeader)
		b.Write(out.Stderr)
	}
	if out.Truncated {
		b.WriteString(truncatedNote)
	}
	res.Output = b.String()
	return nil
}

// fail marks the result invalid. Output is cleared so that only Errors
// carries content.
func (r *Result) fail(stage, msg string) {
	r.Valid = false
	r.Output = ""
	r.Errors = msg
	r.Stage = stage
}

func (v *Validator) swiftc() string {
	if v.Swiftc != "" {
		return v.Swiftc
	}
	return "swiftc"
}

func (v *Validator) swift() string {
	if v.Swift != "" {
		return v.Swift
	}
	return "swift"
}

func (v *Validator) runTimeout() time.Duration {
	if v.RunTimeout > 0 {
		return v.RunTimeout
	}
	return DefaultRunTimeout
}

func (v *Validator) logger() *zap.Logger {
	if v.Logger == nil {
		return zap.NewNop()
	}
	return v.Logger
}
