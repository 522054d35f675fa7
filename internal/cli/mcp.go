package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	swiftmcp "github.com/deixis/swiftkit/internal/mcp"
	"github.com/deixis/swiftkit/internal/report"
	"github.com/deixis/swiftkit/internal/runner"
)

// runCacheSize is the number of runs the MCP session keeps in memory.
const runCacheSize = 5

func newMCPCommand() *cobra.Command {
	var (
		instructions bool
		httpAddr     string
		verbose      bool
	)
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server",
		Long: `Serve swift_validate, swift_inspect, swift_scaffold and swift_toolchain over
stdio, or over streamable HTTP with --http.`,
		Args: args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if instructions {
				fmt.Fprint(cmd.OutOrStdout(), swiftmcp.Instructions)
				return nil
			}
			log := newLogger(cmd.ErrOrStderr(), verbose)
			defer func() { _ = log.Sync() }()
			return serve(cmd.Context(), httpAddr, cmd.ErrOrStderr(), log)
		},
	}
	cmd.Flags().BoolVar(&instructions, "instructions", false, "Print model instructions and exit")
	cmd.Flags().StringVar(&httpAddr, "http", "", "Start HTTP server on address (e.g. :9090)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}

func serve(ctx context.Context, httpAddr string, stderr io.Writer, log *zap.Logger) error {
	workspace, cfg, err := loadWorkspace()
	if err != nil {
		return err
	}

	disk := report.NewDiskStore("")
	defer func() {
		if err := disk.Close(); err != nil {
			log.Warn("removing run store", zap.Error(err))
		}
	}()
	store := report.NewLRUStore(runCacheSize, disk)

	r := &runner.Runner{
		Workspace: workspace,
		Timeout:   cfg.Timeout(),
		MaxOutput: cfg.MaxOutputBytes(),
		Logger:    log,
	}
	v := newValidator(cfg, r, 0, log)

	server := swiftmcp.NewServer(cfg, v, r, store, workspace, swiftmcp.WithLogger(log))

	if httpAddr != "" {
		return serveHTTP(ctx, server, httpAddr, stderr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string, stderr io.Writer) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	fmt.Fprintf(stderr, "listening on %s\n", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
