// Package toolchain locates the Swift compiler and driver and checks that
// the installed toolchain is recent enough for the generated manifests.
package toolchain

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/deixis/swiftkit/internal/runner"
)

// Tool binary names.
const (
	Swiftc = "swiftc"
	Swift  = "swift"
)

// CommandRunner executes commands within a workspace.
// Implemented by runner.Runner.
type CommandRunner interface {
	Run(ctx context.Context, argv []string, cwd string) (*runner.Result, error)
}

// lookPath and xcrunFind are swapped in tests.
var (
	lookPath  = exec.LookPath
	xcrunFind = func(name string) (string, error) {
		out, err := exec.Command("xcrun", "--find", name).Output()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(out)), nil
	}
)

// Resolve returns the path of the named tool. An explicit override (from
// configuration) wins; otherwise the system PATH is searched, then
// `xcrun --find` on macOS where the command line tools may not be on PATH.
func Resolve(name, override string) (string, error) {
	if override != "" {
		p, err := lookPath(override)
		if err != nil {
			return "", fmt.Errorf("configured %s %q: %w", name, override, err)
		}
		return p, nil
	}

	if p, err := lookPath(name); err == nil {
		return p, nil
	}

	if runtime.GOOS == "darwin" {
		if p, err := xcrunFind(name); err == nil && p != "" {
			return p, nil
		}
	}

	return "", NewErrToolUnavailable(name)
}

// ResolveOrName is Resolve for callers that prefer to surface a missing
// tool when it is first executed: it falls back to the bare tool name.
func ResolveOrName(name, override string) string {
	p, err := Resolve(name, override)
	if err != nil {
		if override != "" {
			return override
		}
		return name
	}
	return p
}

// toolInfo holds install metadata for a known tool.
type toolInfo struct {
	// Darwin is the install instruction on macOS.
	Darwin string
	// Other is the install instruction elsewhere.
	Other string
}

var swiftInstall = toolInfo{
	Darwin: "xcode-select --install   # or install Xcode from the App Store",
	Other:  "https://www.swift.org/install/",
}

// knownTools maps tool binary names to their install metadata.
var knownTools = map[string]toolInfo{
	Swiftc:  swiftInstall,
	Swift:   swiftInstall,
	"xcrun": {Darwin: "xcode-select --install"},
}

// ErrToolUnavailable is returned when a required tool is not installed.
// It includes actionable install instructions when the tool is known.
type ErrToolUnavailable struct {
	Name string
	Info *toolInfo
}

// NewErrToolUnavailable builds an ErrToolUnavailable for name.
func NewErrToolUnavailable(name string) ErrToolUnavailable {
	e := ErrToolUnavailable{Name: name}
	if info, ok := knownTools[name]; ok {
		e.Info = &info
	}
	return e
}

func (e ErrToolUnavailable) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is required but not installed.", e.Name)

	if e.Info == nil {
		return b.String()
	}

	hint := e.Info.Other
	if runtime.GOOS == "darwin" && e.Info.Darwin != "" {
		hint = e.Info.Darwin
	}
	if hint != "" {
		fmt.Fprintf(&b, "\n\nInstall: %s", hint)
	}
	return b.String()
}
