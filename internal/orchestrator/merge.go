package orchestrator

import (
	"fmt"

	"github.com/dusk-indust/deckmerge/internal/outline"
)

// MergeOptions configures a Merger. Zero fields take the package defaults.
type MergeOptions struct {
	Match          Matcher
	DefaultTitle   string
	TitleSlideLine string
}

// Merger combines a deck outline and a document outline.
type Merger struct {
	opts MergeOptions
}

// NewMerger creates a Merger.
func NewMerger(opts MergeOptions) *Merger {
	if opts.Match == nil {
		opts.Match = LexicalOverlap
	}
	if opts.DefaultTitle == "" {
		opts.DefaultTitle = DefaultTitle
	}
	if opts.TitleSlideLine == "" {
		opts.TitleSlideLine = DefaultTitleSlideLine
	}
	return &Merger{opts: opts}
}

// Merge builds the combined outline: a title slide, one content slide per
// document section with the content of every matching deck slide folded
// in, then one "from_deck" slide per deck slide that matched no section.
// Merge never fails; missing inputs yield an outline with only the title
// slide.
func (m *Merger) Merge(deck outline.DeckOutline, doc outline.DocumentOutline) outline.CombinedOutline {
	out := outline.CombinedOutline{
		PresentationTitle: m.title(deck, doc),
		SourceInfo: outline.SourceInfo{
			DeckSlideCount:       len(deck.Slides),
			DocumentSectionCount: len(doc.Sections),
		},
	}

	out.Slides = append(out.Slides, outline.OutputSlide{
		SlideType:  outline.SlideTypeTitle,
		Title:      out.PresentationTitle,
		Content:    []string{m.opts.TitleSlideLine},
		LayoutHint: outline.LayoutTitleSlide,
	})

	for _, sec := range doc.Sections {
		out.Slides = append(out.Slides, m.sectionSlide(sec, deck.Slides))
	}

	// Leftovers are compared against section slides only, so every deck
	// slide lands in exactly one content slide.
	sectionSlides := out.Slides[1:]
	var leftovers []outline.OutputSlide
	for _, ds := range deck.Slides {
		if m.matchesAny(ds.Title, sectionSlides) {
			continue
		}
		title := ds.Title
		if title == "" {
			title = fmt.Sprintf("Slide %d", ds.Index)
		}
		leftovers = append(leftovers, outline.OutputSlide{
			SlideType:  outline.SlideTypeContent,
			Title:      title,
			Content:    ds.ContentTexts(),
			LayoutHint: outline.LayoutTitleAndContent,
			Origin:     outline.OriginFromDeck,
		})
	}
	out.Slides = append(out.Slides, leftovers...)
	return out
}

func (m *Merger) title(deck outline.DeckOutline, doc outline.DocumentOutline) string {
	switch {
	case deck.Title != "":
		return deck.Title
	case doc.DocumentTitle != "":
		return doc.DocumentTitle
	default:
		return m.opts.DefaultTitle
	}
}

func (m *Merger) sectionSlide(sec outline.Section, deckSlides []outline.SlideRecord) outline.OutputSlide {
	content := []string{}
	for _, c := range sec.Content {
		content = append(content, c.Text)
	}
	for _, ds := range deckSlides {
		if m.opts.Match(ds.Title, sec.Title) {
			content = append(content, ds.ContentTexts()...)
		}
	}
	for _, sub := range sec.Subsections {
		content = append(content, "• "+sub.Title)
		for _, c := range sub.Content {
			content = append(content, "  - "+c.Text)
		}
	}
	return outline.OutputSlide{
		SlideType:  outline.SlideTypeContent,
		Title:      sec.Title,
		Content:    content,
		LayoutHint: outline.LayoutTitleAndContent,
	}
}

func (m *Merger) matchesAny(title string, slides []outline.OutputSlide) bool {
	for _, s := range slides {
		if m.opts.Match(title, s.Title) {
			return true
		}
	}
	return false
}
