// Package report provides structured persistence and retrieval of
// validation run results. Results are stored as typed structs and can be
// queried by severity or file.
package report

import (
	"fmt"
	"strings"
)

// Kind identifies the type of a run.
type Kind string

const (
	// Validate is a code snippet validation (type-check, optionally run).
	Validate Kind = "validate"
	// View is a SwiftUI view fragment validation.
	View Kind = "view"
)

// Severity levels reported by the Swift compiler.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityNote    = "note"
)

// Store persists and retrieves run results.
type Store interface {
	Save(result *RunResult) error
	Load(runID string) (*RunResult, error)
}

// RunResult holds the structured outcome of a validation run.
type RunResult struct {
	ID          string       `json:"id"`
	Kind        Kind         `json:"kind"`
	Valid       bool         `json:"valid"`
	Stage       string       `json:"stage"`
	Output      string       `json:"output,omitempty"`
	Errors      string       `json:"errors,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Expect returns an error if the run's Kind does not match want.
func (r *RunResult) Expect(want Kind) error {
	if r.Kind != want {
		return fmt.Errorf("run %s is a %s run, not a %s run", r.ID, r.Kind, want)
	}
	return nil
}

// Diagnostic is a single compiler message.
type Diagnostic struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Col      int    `json:"col"`
	Severity string `json:"severity"` // error, warning, note
	Message  string `json:"message"`
}

// String renders the diagnostic the way the compiler does.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.File)
	if d.Line > 0 {
		fmt.Fprintf(&b, ":%d", d.Line)
		if d.Col > 0 {
			fmt.Fprintf(&b, ":%d", d.Col)
		}
	}
	fmt.Fprintf(&b, ": %s: %s", d.Severity, d.Message)
	return b.String()
}

// BySeverity returns the diagnostics with the given severity.
// An empty severity returns all diagnostics.
func BySeverity(result *RunResult, severity string) []Diagnostic {
	if severity == "" {
		return result.Diagnostics
	}
	var out []Diagnostic
	for _, d := range result.Diagnostics {
		if strings.EqualFold(d.Severity, severity) {
			out = append(out, d)
		}
	}
	return out
}

// Counts tallies diagnostics per severity.
func Counts(diagnostics []Diagnostic) map[string]int {
	out := make(map[string]int)
	for _, d := range diagnostics {
		out[d.Severity]++
	}
	return out
}
