// Package render draws a CombinedOutline onto a new deck.
package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/dusk-indust/deckmerge/internal/outline"
	"github.com/dusk-indust/deckmerge/internal/pptx"
)

// Bullet markers recognized on content lines.
const (
	Bullet    = "•"
	SubBullet = "  - "
)

// Page is one slide being authored.
type Page interface {
	SetTitle(text string)
	// SetBody fills the secondary placeholder and reports whether the
	// layout has one.
	SetBody(text string) bool
}

// Canvas is a deck-authoring backend.
type Canvas interface {
	AddSlide(layout string) (Page, error)
	Save(path string) error
}

// Renderer turns combined outlines into decks.
type Renderer struct {
	newCanvas func() Canvas
}

// New creates a Renderer that draws on canvases from newCanvas. A nil
// newCanvas uses the built-in pptx writer.
func New(newCanvas func() Canvas) *Renderer {
	if newCanvas == nil {
		newCanvas = NewPPTXCanvas
	}
	return &Renderer{newCanvas: newCanvas}
}

// Render writes c to target and returns target. Canvas failures are
// returned as *outline.RenderError; an invalid outline is rejected with
// outline.ErrInvalidInput before anything is drawn.
func (r *Renderer) Render(ctx context.Context, c outline.CombinedOutline, target string) (string, error) {
	if err := outline.CheckOutput(target); err != nil {
		return "", err
	}
	if err := c.Validate(); err != nil {
		return "", err
	}

	canvas := r.newCanvas()
	for i, s := range c.Slides {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := drawSlide(canvas, s); err != nil {
			return "", &outline.RenderError{Path: target, Err: fmt.Errorf("slide %d: %w", i+1, err)}
		}
	}
	if err := canvas.Save(target); err != nil {
		return "", &outline.RenderError{Path: target, Err: err}
	}
	return target, nil
}

func drawSlide(canvas Canvas, s outline.OutputSlide) error {
	if s.SlideType == outline.SlideTypeTitle {
		page, err := canvas.AddSlide(outline.LayoutTitleSlide)
		if err != nil {
			return err
		}
		page.SetTitle(s.Title)
		page.SetBody(strings.Join(s.Content, "\n"))
		return nil
	}

	page, err := canvas.AddSlide(outline.LayoutTitleAndContent)
	if err != nil {
		return err
	}
	page.SetTitle(s.Title)
	page.SetBody(strings.Join(BulletLines(s.Content), "\n"))
	return nil
}

// BulletLines prefixes every line with "• " unless it already starts with
// a bullet or sub-bullet marker.
func BulletLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.HasPrefix(line, Bullet) || strings.HasPrefix(line, SubBullet) {
			out[i] = line
			continue
		}
		out[i] = Bullet + " " + line
	}
	return out
}

// pptxCanvas adapts pptx.Builder to Canvas.
type pptxCanvas struct {
	b *pptx.Builder
}

// NewPPTXCanvas returns a Canvas backed by a new pptx.Builder.
func NewPPTXCanvas() Canvas {
	return &pptxCanvas{b: pptx.NewBuilder()}
}

func (c *pptxCanvas) AddSlide(layout string) (Page, error) {
	s, err := c.b.AddSlide(layout)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (c *pptxCanvas) Save(path string) error {
	return c.b.Save(path)
}
