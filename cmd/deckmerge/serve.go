package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/deckmerge/internal/mcptools"
)

func newServeCmd(a *app) *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio, or on streamable HTTP with --http",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// release runs after RunHTTP has drained in-flight calls.
			svc, p, release := a.service()
			defer release()
			server := mcptools.NewDeckMCPServer(svc)

			addr := httpAddr
			if addr == "" {
				addr = a.cfg.HTTPAddr
			}
			if addr != "" {
				a.logger.Info("serving MCP over HTTP", "addr", addr, "outputDir", p.Config().OutputDir)
				return mcptools.RunHTTP(ctx, server, addr)
			}
			a.logger.Debug("serving MCP over stdio", "outputDir", p.Config().OutputDir)
			return mcptools.RunStdio(ctx, server)
		},
	}
	cmd.Flags().StringVar(&httpAddr, "http", "", "listen address for streamable HTTP (e.g. :8080)")
	return cmd
}
