package mcptools

import (
	"encoding/json"
	"fmt"

	"github.com/dusk-indust/deckmerge/internal/outline"
)

// --- MCP tool types ---
// Every tool answers with an Envelope. On failure only Success=false and
// Error are set.

// Envelope is the uniform tool result.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ExtractDeckInput is the input for the extract_deck tool.
type ExtractDeckInput struct {
	Path string `json:"path" jsonschema:"path to a .pptx or .ppt file"`
}

// ExtractDocumentInput is the input for the extract_document_outline tool.
type ExtractDocumentInput struct {
	Path string `json:"path" jsonschema:"path to a .docx or .doc file"`
}

// CombineInput is the input for the combine tool.
type CombineInput struct {
	DeckPath     string `json:"deck_path" jsonschema:"path to the source deck"`
	DocumentPath string `json:"document_path" jsonschema:"path to the structured document"`
	OutputPath   string `json:"output_path,omitempty" jsonschema:"where to write the combined .pptx (default: combined_presentation.pptx in the output directory)"`
}

// RenderInput is the input for the render_from_outline tool. Outline is
// left untyped in the schema so a malformed outline reaches the handler
// and is answered with an envelope; see DecodeOutline.
type RenderInput struct {
	Outline    any    `json:"outline,omitempty" jsonschema:"combined outline to render: {presentation_title, slides: [{slide_type, title, content, layout_hint, origin}]}"`
	OutputPath string `json:"output_path,omitempty" jsonschema:"where to write the .pptx (default: generated_presentation.pptx in the output directory)"`
}

// OutlineInput is a hand-built or combine-produced outline. Only
// slide_type is required per slide.
type OutlineInput struct {
	PresentationTitle string              `json:"presentation_title,omitempty"`
	Slides            []SlideInput        `json:"slides"`
	SourceInfo        *outline.SourceInfo `json:"source_info,omitempty"`
}

// SlideInput is one slide of an OutlineInput.
type SlideInput struct {
	SlideType  string   `json:"slide_type" jsonschema:"title or content"`
	Title      string   `json:"title,omitempty"`
	Content    []string `json:"content,omitempty"`
	LayoutHint string   `json:"layout_hint,omitempty"`
	Origin     string   `json:"origin,omitempty"`
}

// Combined converts the input into a CombinedOutline.
func (in OutlineInput) Combined() outline.CombinedOutline {
	c := outline.CombinedOutline{
		PresentationTitle: in.PresentationTitle,
		Slides:            make([]outline.OutputSlide, 0, len(in.Slides)),
	}
	if in.SourceInfo != nil {
		c.SourceInfo = *in.SourceInfo
	}
	for _, s := range in.Slides {
		content := s.Content
		if content == nil {
			content = []string{}
		}
		c.Slides = append(c.Slides, outline.OutputSlide{
			SlideType:  s.SlideType,
			Title:      s.Title,
			Content:    content,
			LayoutHint: s.LayoutHint,
			Origin:     s.Origin,
		})
	}
	return c
}

// DecodeOutline reads a render_from_outline outline argument. A missing or
// malformed outline is reported as outline.ErrInvalidInput.
func DecodeOutline(v any) (OutlineInput, error) {
	var in OutlineInput
	if v == nil {
		return in, fmt.Errorf("%w: outline is required", outline.ErrInvalidInput)
	}
	if typed, ok := v.(OutlineInput); ok {
		return typed, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return in, fmt.Errorf("%w: outline: %v", outline.ErrInvalidInput, err)
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return in, fmt.Errorf("%w: outline: %v", outline.ErrInvalidInput, err)
	}
	return in, nil
}
