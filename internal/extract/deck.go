package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/dusk-indust/deckmerge/internal/outline"
	"github.com/dusk-indust/deckmerge/internal/pptx"
)

// DeckReader extracts a DeckOutline from a .pptx file.
type DeckReader struct {
	opts Options
}

// NewDeckReader creates a DeckReader.
func NewDeckReader(opts Options) *DeckReader {
	opts.defaults()
	return &DeckReader{opts: opts}
}

// Read validates path and extracts its outline. Parse failures are
// returned as *outline.DeckReadError.
func (r *DeckReader) Read(ctx context.Context, path string) (*outline.DeckOutline, error) {
	if err := outline.CheckInput(path, outline.FormatDeck, r.opts.MaxFileSize); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pres, err := pptx.Open(path)
	if err != nil {
		return nil, &outline.DeckReadError{Path: path, Err: err}
	}

	out := BuildDeckOutline(pres)
	r.opts.Logger.Debug("deck extracted", "path", path, "slides", out.SlideCount, "title", out.Title)
	return &out, nil
}

// BuildDeckOutline derives the outline of a parsed deck.
func BuildDeckOutline(pres *pptx.Presentation) outline.DeckOutline {
	out := outline.DeckOutline{Slides: []outline.SlideRecord{}}
	if pres == nil {
		return out
	}

	if len(pres.Slides) > 0 {
		out.Title = firstText(pres.Slides[0])
	}
	for i, s := range pres.Slides {
		out.Slides = append(out.Slides, buildSlide(i, s))
	}
	out.SlideCount = len(out.Slides)
	return out
}

// firstText returns the first non-empty shape text, whatever the shape name.
func firstText(s pptx.Slide) string {
	for _, sh := range s.Shapes {
		if !sh.HasTextFrame() {
			continue
		}
		if text := strings.TrimSpace(sh.Text); text != "" {
			return text
		}
	}
	return ""
}

func buildSlide(i int, s pptx.Slide) outline.SlideRecord {
	rec := outline.SlideRecord{
		Index:        i + 1,
		ContentItems: []outline.ContentItem{},
		Tables:       [][][]string{},
		Images:       []outline.ImageRecord{},
		LayoutName:   s.LayoutName,
	}
	if rec.LayoutName == "" {
		rec.LayoutName = fmt.Sprintf("Layout %d", i+1)
	}

	for _, sh := range s.Shapes {
		if sh.HasTextFrame() {
			if text := strings.TrimSpace(sh.Text); text != "" {
				// Title-named shapes never become content; the last one wins.
				if isTitleShape(sh.Name) {
					rec.Title = text
				} else {
					rec.ContentItems = append(rec.ContentItems, outline.ContentItem{
						Text:      text,
						ShapeName: sh.Name,
					})
				}
			}
		}
		if sh.HasTable() {
			rec.Tables = append(rec.Tables, sh.Table)
		}
		if sh.Kind == pptx.ShapePicture {
			rec.Images = append(rec.Images, outline.ImageRecord{
				ShapeName: sh.Name,
				Width:     sh.Width,
				Height:    sh.Height,
			})
		}
	}
	return rec
}

func isTitleShape(name string) bool {
	return strings.Contains(strings.ToLower(name), "title")
}
