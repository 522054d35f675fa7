package toolchain

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// versionPattern matches both "Apple Swift version 5.9.2 (...)" and
// "Swift version 6.0.3 (swift-6.0.3-RELEASE)".
var versionPattern = regexp.MustCompile(`Swift version (\d+(?:\.\d+){0,2})`)

// ParseVersion extracts the Swift language version from `swiftc --version` output.
func ParseVersion(output string) (*semver.Version, error) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("no Swift version in %q", firstLine(output))
	}
	v, err := semver.NewVersion(m[1])
	if err != nil {
		return nil, fmt.Errorf("parsing Swift version %q: %w", m[1], err)
	}
	return v, nil
}

// Version runs `<swiftc> --version` and parses the result.
func Version(ctx context.Context, r CommandRunner, swiftc string) (*semver.Version, error) {
	res, err := r.Run(ctx, []string{swiftc, "--version"}, "")
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("%s --version exited %d: %s", swiftc, res.ExitCode, firstLine(string(res.Stderr)))
	}
	// Older toolchains print the banner on stderr.
	out := string(res.Stdout) + string(res.Stderr)
	return ParseVersion(out)
}

// CheckMinimum returns an error if v is older than minimum.
func CheckMinimum(v *semver.Version, minimum string) error {
	m, err := semver.NewVersion(strings.TrimPrefix(minimum, "v"))
	if err != nil {
		return fmt.Errorf("parsing minimum version %q: %w", minimum, err)
	}
	if v.LessThan(m) {
		return fmt.Errorf("Swift %s is older than the required %s", v, m)
	}
	return nil
}

// Info summarises the installed toolchain.
type Info struct {
	Swiftc    string   `json:"swiftc,omitempty"`
	Swift     string   `json:"swift,omitempty"`
	Version   string   `json:"version,omitempty"`
	Minimum   string   `json:"minimum"`
	Supported bool     `json:"supported"`
	Problems  []string `json:"problems,omitempty"`
}

// Describe resolves both tools, reads the compiler version, and checks it
// against minimum. Problems are collected rather than returned so callers can
// report everything at once.
func Describe(ctx context.Context, r CommandRunner, swiftcOverride, swiftOverride, minimum string) *Info {
	info := &Info{Minimum: minimum}

	swiftc, err := Resolve(Swiftc, swiftcOverride)
	if err != nil {
		info.Problems = append(info.Problems, err.Error())
	}
	info.Swiftc = swiftc

	swift, err := Resolve(Swift, swiftOverride)
	if err != nil {
		info.Problems = append(info.Problems, err.Error())
	}
	info.Swift = swift

	if swiftc == "" {
		return info
	}

	v, err := Version(ctx, r, swiftc)
	if err != nil {
		info.Problems = append(info.Problems, err.Error())
		return info
	}
	info.Version = v.String()

	if err := CheckMinimum(v, minimum); err != nil {
		info.Problems = append(info.Problems, err.Error())
		return info
	}
	info.Supported = len(info.Problems) == 0
	return info
}

// String renders the summary for terminals and tool output.
func (i *Info) String() string {
	var b strings.Builder
	if i.Supported {
		fmt.Fprintln(&b, "Status: OK")
	} else {
		fmt.Fprintln(&b, "Status: UNSUPPORTED")
	}
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "swiftc:  %s\n", orNone(i.Swiftc))
	fmt.Fprintf(&b, "swift:   %s\n", orNone(i.Swift))
	fmt.Fprintf(&b, "version: %s (minimum %s)\n", orNone(i.Version), i.Minimum)
	if len(i.Problems) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "Problems:")
		for _, p := range i.Problems {
			for _, line := range strings.Split(p, "\n") {
				fmt.Fprintf(&b, "  %s\n", line)
			}
		}
	}
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "(not found)"
	}
	return s
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
