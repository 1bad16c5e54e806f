package mcptools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/deckmerge/internal/orchestrator"
	"github.com/dusk-indust/deckmerge/internal/outline"
)

// DeckService handles MCP tool calls. Each call is a boundary: failures
// are logged once and returned in the envelope, never as protocol errors.
type DeckService struct {
	pipeline *orchestrator.Pipeline
	logger   *slog.Logger
}

// NewDeckService creates a DeckService over pipeline.
func NewDeckService(pipeline *orchestrator.Pipeline, logger *slog.Logger) *DeckService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckService{pipeline: pipeline, logger: logger}
}

// ExtractDeck returns the outline of a slide deck.
func (s *DeckService) ExtractDeck(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractDeckInput,
) (*mcp.CallToolResult, Envelope[outline.DeckOutline], error) {
	deck, err := s.pipeline.ExtractDeck(ctx, input.Path)
	if err != nil {
		return nil, failure[outline.DeckOutline](s.logger, "extract_deck", err), nil
	}
	return nil, Envelope[outline.DeckOutline]{
		Success: true,
		Data:    deck,
		Message: fmt.Sprintf("Successfully extracted content from %d slides", deck.SlideCount),
	}, nil
}

// ExtractDocumentOutline returns the outline of a structured document.
func (s *DeckService) ExtractDocumentOutline(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractDocumentInput,
) (*mcp.CallToolResult, Envelope[outline.DocumentOutline], error) {
	doc, err := s.pipeline.ExtractDocument(ctx, input.Path)
	if err != nil {
		return nil, failure[outline.DocumentOutline](s.logger, "extract_document_outline", err), nil
	}
	return nil, Envelope[outline.DocumentOutline]{
		Success: true,
		Data:    doc,
		Message: fmt.Sprintf("Successfully analyzed structure with %d sections", len(doc.Sections)),
	}, nil
}

// Combine extracts both inputs, merges them and renders the merge.
func (s *DeckService) Combine(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CombineInput,
) (*mcp.CallToolResult, Envelope[orchestrator.CombineResult], error) {
	res, err := s.pipeline.Combine(ctx, input.DeckPath, input.DocumentPath, input.OutputPath)
	if err != nil {
		return nil, failure[orchestrator.CombineResult](s.logger, "combine", err), nil
	}
	s.logger.Info("combined presentation written", "tool", "combine", "output", res.OutputFile, "slides", res.SlidesCreated)
	return nil, Envelope[orchestrator.CombineResult]{
		Success: true,
		Data:    res,
		Message: fmt.Sprintf("Successfully created combined presentation with %d slides", res.SlidesCreated),
	}, nil
}

// RenderFromOutline renders a combined outline into a new deck.
func (s *DeckService) RenderFromOutline(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RenderInput,
) (*mcp.CallToolResult, Envelope[orchestrator.RenderResult], error) {
	in, err := DecodeOutline(input.Outline)
	if err != nil {
		return nil, failure[orchestrator.RenderResult](s.logger, "render_from_outline", err), nil
	}
	res, err := s.pipeline.Render(ctx, in.Combined(), input.OutputPath)
	if err != nil {
		return nil, failure[orchestrator.RenderResult](s.logger, "render_from_outline", err), nil
	}
	s.logger.Info("presentation written", "tool", "render_from_outline", "output", res.OutputFile, "slides", res.SlidesCreated)
	return nil, Envelope[orchestrator.RenderResult]{
		Success: true,
		Data:    res,
		Message: fmt.Sprintf("Successfully created presentation at %s", res.OutputFile),
	}, nil
}

func failure[T any](logger *slog.Logger, tool string, err error) Envelope[T] {
	logger.Error("tool failed", "tool", tool, "kind", outline.ErrorKind(err), "err", err)
	return Envelope[T]{Success: false, Error: err.Error()}
}
