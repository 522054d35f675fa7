// Package mcp provides the swiftkit MCP server, registering all tools
// and publishing model instructions.
package mcp

import (
	"context"
	_ "embed"
	"net/url"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/deixis/swiftkit"
	"github.com/deixis/swiftkit/internal/config"
	"github.com/deixis/swiftkit/internal/report"
	"github.com/deixis/swiftkit/internal/runner"
	"github.com/deixis/swiftkit/internal/toolchain"
	"github.com/deixis/swiftkit/internal/validate"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	cfg       *config.Config
	validator *validate.Validator
	runner    *runner.Runner
	store     report.Store
	workspace string
	log       *zap.Logger
}

// NewServer creates an MCP server with all swiftkit tools registered.
// The validator must use r (or a runner sharing its workspace) so that
// workspace updates from client roots reach both.
func NewServer(cfg *config.Config, v *validate.Validator, r *runner.Runner, store report.Store, workspace string, opts ...ServerOption) *mcp.Server {
	var so serverOptions
	for _, o := range opts {
		o(&so)
	}
	log := so.logger
	if log == nil {
		log = zap.NewNop()
	}

	h := &handler{
		cfg:       cfg,
		validator: v,
		runner:    r,
		store:     store,
		workspace: workspace,
		log:       log,
	}

	mcpOpts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
		InitializedHandler: func(ctx context.Context, req *mcp.InitializedRequest) {
			h.updateWorkspaceFromRoots(ctx, req.Session)
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "swiftkit", Version: swiftkit.Version}, mcpOpts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "swift_validate",
		Description: `Type-check a Swift snippet with swiftc -typecheck, optionally executing it.

Set run=true to execute the snippet after a successful type-check (5s limit; a timeout makes the
result invalid). Set view=true for a SwiftUI view fragment declaring ContentView; it is wrapped in a
minimal App and never executed. Results are stored for drill-down via swift_inspect.`,
	}, h.validateHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "swift_inspect",
		Description: `List the compiler diagnostics of a swift_validate run.

Use the run_id from the swift_validate output. Optionally filter by severity (error, warning, note).`,
	}, h.inspectHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "swift_scaffold",
		Description: "Create a SwiftUI app skeleton (Package.swift, Sources/<name>/main.swift, .gitignore) under path/name.",
	}, h.scaffoldHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "swift_toolchain",
		Description: "Report the swiftc and swift binaries in use and whether the installed Swift version is supported.",
	}, h.toolchainHandler)

	return s
}

// ServerOption configures the swiftkit MCP server.
type ServerOption func(*serverOptions)

type serverOptions struct {
	logger *zap.Logger
}

// WithLogger attaches a logger to the server.
func WithLogger(l *zap.Logger) ServerOption {
	return func(o *serverOptions) {
		o.logger = l
	}
}

// updateWorkspaceFromRoots queries the client for MCP roots and updates the
// handler's runner, validator, and config if a valid root is returned.
// This is called during session initialization, before any tool calls.
func (h *handler) updateWorkspaceFromRoots(ctx context.Context, session *mcp.ServerSession) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	roots, err := session.ListRoots(ctx, &mcp.ListRootsParams{})
	if err != nil {
		return
	}
	if len(roots.Roots) == 0 {
		return
	}

	u, err := url.Parse(roots.Roots[0].URI)
	if err != nil || u.Scheme != "file" {
		return
	}
	workspace := u.Path

	loaded, err := config.Load(workspace)
	if err != nil {
		h.log.Warn("loading config from client root", zap.String("root", workspace), zap.Error(err))
		return
	}
	cfg := loaded.Config

	h.runner.Workspace = workspace
	h.runner.Timeout = cfg.Timeout()
	h.runner.MaxOutput = cfg.MaxOutputBytes()

	h.validator.Swiftc = toolchain.ResolveOrName(toolchain.Swiftc, cfg.Swiftc)
	h.validator.Swift = toolchain.ResolveOrName(toolchain.Swift, cfg.Swift)
	h.validator.TypecheckArgs = cfg.Typecheck.Args
	h.validator.RunArgs = cfg.Run.Args
	h.validator.RunTimeout = cfg.RunTimeout()

	h.cfg = cfg
	h.workspace = workspace
	h.log.Debug("workspace updated from client roots", zap.String("workspace", workspace))
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
