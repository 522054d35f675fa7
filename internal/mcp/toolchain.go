package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/swiftkit/internal/toolchain"
)

type toolchainParams struct{}

func (h *handler) toolchainHandler(ctx context.Context, req *mcp.CallToolRequest, _ toolchainParams) (*mcp.CallToolResult, any, error) {
	info := toolchain.Describe(ctx, h.runner, h.cfg.Swiftc, h.cfg.Swift, h.cfg.MinSwift())
	return textResult(info.String())
}
