package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/deixis/swiftkit/internal/report"
	"github.com/deixis/swiftkit/internal/validate"
)

type validateParams struct {
	Code string `json:"code" jsonschema:"Swift source code to type-check"`
	Run  bool   `json:"run,omitempty" jsonschema:"Execute the snippet after a successful type-check. Default: false."`
	View bool   `json:"view,omitempty" jsonschema:"Treat code as a SwiftUI view fragment declaring ContentView. It is wrapped in a minimal App and never executed. Default: false."`
}

func (h *handler) validateHandler(ctx context.Context, req *mcp.CallToolRequest, params validateParams) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(params.Code) == "" {
		return errorResult("code is required")
	}

	result := h.validator.Do(ctx, validate.Request{
		Code: params.Code,
		Run:  params.Run,
		View: params.View,
	})

	// Save results for swift_inspect.
	if err := h.store.Save(result.Record()); err != nil {
		h.log.Warn("saving run", zap.String("run_id", result.RunID), zap.Error(err))
	}

	return textResult(formatValidate(result))
}

func formatValidate(res *validate.Result) string {
	var b strings.Builder

	if res.Valid {
		fmt.Fprintln(&b, "Status: VALID")
	} else {
		fmt.Fprintln(&b, "Status: INVALID")
	}
	fmt.Fprintf(&b, "Run: %s (%s)\n", res.RunID, res.Kind)
	fmt.Fprintf(&b, "Stage: %s\n", res.Stage)
	if res.ExitCode != nil {
		fmt.Fprintf(&b, "Exit code: %d\n", *res.ExitCode)
	}
	fmt.Fprintln(&b)

	if res.Valid {
		fmt.Fprintln(&b, strings.TrimRight(res.Output, "\n"))
	} else {
		fmt.Fprintln(&b, strings.TrimRight(res.Errors, "\n"))
	}

	if len(res.Diagnostics) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "Diagnostics: %s\n", summarize(report.Counts(res.Diagnostics)))
		fmt.Fprintf(&b, "Inspect with swift_inspect(run_id=%q).\n", res.RunID)
	}
	return b.String()
}

// summarize renders severity counts as "2 error, 1 warning" in a stable
// order.
func summarize(counts map[string]int) string {
	order := map[string]int{
		report.SeverityError:   0,
		report.SeverityWarning: 1,
		report.SeverityNote:    2,
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, iok := order[keys[i]]
		oj, jok := order[keys[j]]
		if iok != jok {
			return iok
		}
		if oi != oj {
			return oi < oj
		}
		return keys[i] < keys[j]
	})

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%d %s", counts[k], k))
	}
	return strings.Join(parts, ", ")
}
