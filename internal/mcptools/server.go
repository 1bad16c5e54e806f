package mcptools

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewDeckMCPServer creates an MCP server with the four deck tools
// registered: extract_deck, extract_document_outline, combine and
// render_from_outline.
func NewDeckMCPServer(svc *DeckService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "deckmerge",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract_deck",
		Description: "Extract the outline of a PowerPoint deck (.pptx/.ppt): slide titles, text content, tables, images and layout names.",
	}, svc.ExtractDeck)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract_document_outline",
		Description: "Analyze the structure of a Word document (.docx/.doc): sections, subsections, styles, heading index and tables.",
	}, svc.ExtractDocumentOutline)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "combine",
		Description: "Extract a deck and a document, merge them by matching slide titles to section headings, and render the combined outline as a new .pptx.",
	}, svc.Combine)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_from_outline",
		Description: "Render a combined outline (title and content slides) into a new .pptx.",
	}, svc.RenderFromOutline)

	return server
}

// RunStdio runs the MCP server on stdio transport, blocking until stdin is
// closed or the context is cancelled. Nothing but protocol traffic may be
// written to stdout while it runs.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// shutdownGrace bounds how long RunHTTP waits for in-flight tool calls.
const shutdownGrace = 10 * time.Second

// RunHTTP serves the MCP server over streamable HTTP on addr until ctx is
// cancelled.
func RunHTTP(ctx context.Context, server *mcp.Server, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled. RunHTTP returns only
	// after in-flight requests have finished or the grace period expired.
	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		shutdownErr <- httpServer.Shutdown(sctx)
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
