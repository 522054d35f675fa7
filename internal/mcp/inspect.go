package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/swiftkit/internal/report"
)

type inspectParams struct {
	RunID    string `json:"run_id" jsonschema:"the run ID from a swift_validate result"`
	Severity string `json:"severity,omitempty" jsonschema:"only list diagnostics of this severity: error, warning or note. Default: all."`
}

func (h *handler) inspectHandler(ctx context.Context, req *mcp.CallToolRequest, params inspectParams) (*mcp.CallToolResult, any, error) {
	if params.RunID == "" {
		return errorResult("run_id is required")
	}
	switch strings.ToLower(params.Severity) {
	case "", report.SeverityError, report.SeverityWarning, report.SeverityNote:
	default:
		return errorResult(fmt.Sprintf("unknown severity %q (want error, warning or note)", params.Severity))
	}

	result, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to load run %s: %v", params.RunID, err))
	}

	diagnostics := report.BySeverity(result, params.Severity)
	if len(diagnostics) == 0 {
		if params.Severity != "" {
			return textResult(fmt.Sprintf("No %s diagnostics in run %s (%s).", strings.ToLower(params.Severity), params.RunID, result.Kind))
		}
		return textResult(fmt.Sprintf("No diagnostics in run %s (%s).", params.RunID, result.Kind))
	}

	return textResult(formatInspectOutput(result, diagnostics))
}

func formatInspectOutput(result *report.RunResult, diagnostics []report.Diagnostic) string {
	var b strings.Builder

	status := "VALID"
	if !result.Valid {
		status = "INVALID"
	}
	fmt.Fprintf(&b, "Run: %s (%s, %s at %s)\n", result.ID, result.Kind, status, result.Stage)
	fmt.Fprintf(&b, "Diagnostics: %s\n", summarize(report.Counts(diagnostics)))
	fmt.Fprintln(&b)

	for _, d := range diagnostics {
		fmt.Fprintln(&b, d.String())
	}
	return b.String()
}
