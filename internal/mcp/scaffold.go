package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/swiftkit/internal/scaffold"
)

type scaffoldParams struct {
	Name     string `json:"name" jsonschema:"app name, used for the package, target and directory"`
	Platform string `json:"platform,omitempty" jsonschema:"ios, macos or multiplatform. Defaults to the configured scaffold platform."`
	Path     string `json:"path,omitempty" jsonschema:"parent directory, absolute or relative to the workspace. Must be inside the workspace. Default: workspace root."`
}

func (h *handler) scaffoldHandler(ctx context.Context, req *mcp.CallToolRequest, params scaffoldParams) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(params.Name) == "" {
		return errorResult("name is required")
	}
	if strings.ContainsAny(params.Name, `/\`) || params.Name == "." || params.Name == ".." {
		return errorResult(fmt.Sprintf("name %q must be a single path element", params.Name))
	}

	platform := params.Platform
	if platform == "" {
		platform = h.cfg.Platform()
	}
	if _, err := scaffold.ParsePlatform(platform); err != nil {
		return errorResult(err.Error())
	}

	parent, err := h.resolveInWorkspace(params.Path)
	if err != nil {
		return errorResult(err.Error())
	}

	res, err := scaffold.Generate(scaffold.Options{
		Name:     params.Name,
		Platform: platform,
		Path:     parent,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("scaffold failed: %v", err))
	}

	var b strings.Builder
	scaffold.PrintSummary(&b, res, res.Dir)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Files:")
	for _, f := range res.Files {
		fmt.Fprintf(&b, "  %s\n", f)
	}
	return textResult(b.String())
}

// resolveInWorkspace resolves p relative to the workspace and rejects
// paths that escape it.
func (h *handler) resolveInWorkspace(p string) (string, error) {
	if p == "" {
		return h.workspace, nil
	}
	dir := p
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(h.workspace, dir)
	}
	dir = filepath.Clean(dir)

	rel, err := filepath.Rel(h.workspace, dir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside workspace %q", p, h.workspace)
	}
	return dir, nil
}
