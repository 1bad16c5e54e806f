package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/deckmerge/internal/outline"
)

func deckSlide(index int, title string, content ...string) outline.SlideRecord {
	rec := outline.SlideRecord{Index: index, Title: title}
	for _, c := range content {
		rec.ContentItems = append(rec.ContentItems, outline.ContentItem{Text: c})
	}
	return rec
}

func scenarioDeck() outline.DeckOutline {
	return outline.DeckOutline{
		Title: "Test Presentation",
		Slides: []outline.SlideRecord{
			deckSlide(1, "Test Presentation", "This is a test"),
			deckSlide(2, "Project Overview", "Main objective", "Secondary goal"),
		},
		SlideCount: 2,
	}
}

func scenarioDocument() outline.DocumentOutline {
	return outline.DocumentOutline{
		DocumentTitle: "Report",
		Sections: []outline.Section{
			{
				Title:   "1. Introduction",
				Level:   1,
				Content: []outline.SectionContent{{Text: "This document describes the project."}},
			},
			{
				Title:   "2. Project Overview",
				Level:   1,
				Content: []outline.SectionContent{{Text: "The project aims to deliver."}},
				Subsections: []outline.Subsection{
					{Title: "Goals", Level: 2, Content: []outline.SubsectionContent{{Text: "ship"}}},
				},
			},
		},
	}
}

func TestMerge_ScenarioA(t *testing.T) {
	got := NewMerger(MergeOptions{}).Merge(scenarioDeck(), scenarioDocument())

	assert.Equal(t, "Test Presentation", got.PresentationTitle)
	assert.Equal(t, outline.SourceInfo{DeckSlideCount: 2, DocumentSectionCount: 2}, got.SourceInfo)
	require.Len(t, got.Slides, 4)

	title := got.Slides[0]
	assert.Equal(t, outline.SlideTypeTitle, title.SlideType)
	assert.Equal(t, "Test Presentation", title.Title)
	assert.Equal(t, []string{DefaultTitleSlideLine}, title.Content)
	assert.Equal(t, outline.LayoutTitleSlide, title.LayoutHint)

	intro := got.Slides[1]
	assert.Equal(t, "1. Introduction", intro.Title)
	assert.Equal(t, []string{"This document describes the project."}, intro.Content)
	assert.Equal(t, outline.LayoutTitleAndContent, intro.LayoutHint)
	assert.Empty(t, intro.Origin)

	overview := got.Slides[2]
	assert.Equal(t, "2. Project Overview", overview.Title)
	assert.Equal(t, []string{
		"The project aims to deliver.",
		"Main objective",
		"Secondary goal",
		"• Goals",
		"  - ship",
	}, overview.Content)

	leftover := got.Slides[3]
	assert.Equal(t, "Test Presentation", leftover.Title)
	assert.Equal(t, outline.OriginFromDeck, leftover.Origin)
	assert.Equal(t, []string{"This is a test"}, leftover.Content)
}

func TestMerge_ScenarioB(t *testing.T) {
	deck := outline.DeckOutline{
		Slides: []outline.SlideRecord{
			deckSlide(1, "Welcome", "hello"),
			deckSlide(2, "", "untitled body"),
		},
	}
	got := NewMerger(MergeOptions{}).Merge(deck, outline.DocumentOutline{Sections: []outline.Section{}})

	require.Len(t, got.Slides, 3)
	assert.Equal(t, outline.SlideTypeTitle, got.Slides[0].SlideType)

	assert.Equal(t, "Welcome", got.Slides[1].Title)
	assert.Equal(t, []string{"hello"}, got.Slides[1].Content)
	assert.Equal(t, outline.OriginFromDeck, got.Slides[1].Origin)

	assert.Equal(t, "Slide 2", got.Slides[2].Title)
	assert.Equal(t, outline.OriginFromDeck, got.Slides[2].Origin)
	assert.Equal(t, outline.SlideTypeContent, got.Slides[2].SlideType)
}

func TestMerge_EmptyInputs(t *testing.T) {
	got := NewMerger(MergeOptions{}).Merge(outline.DeckOutline{}, outline.DocumentOutline{})

	assert.Equal(t, DefaultTitle, got.PresentationTitle)
	require.Len(t, got.Slides, 1)
	assert.Equal(t, outline.SlideTypeTitle, got.Slides[0].SlideType)
	assert.NoError(t, got.Validate())
}

func TestMerge_TitlePrecedence(t *testing.T) {
	m := NewMerger(MergeOptions{DefaultTitle: "Fallback"})

	tests := []struct {
		name      string
		deckTitle string
		docTitle  string
		want      string
	}{
		{"deck wins", "Deck", "Doc", "Deck"},
		{"document when deck empty", "", "Doc", "Doc"},
		{"default when both empty", "", "", "Fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Merge(outline.DeckOutline{Title: tt.deckTitle}, outline.DocumentOutline{DocumentTitle: tt.docTitle})
			assert.Equal(t, tt.want, got.PresentationTitle)
			assert.Equal(t, tt.want, got.Slides[0].Title)
		})
	}
}

func TestMerge_Coverage(t *testing.T) {
	deck := outline.DeckOutline{Slides: []outline.SlideRecord{
		deckSlide(1, "Budget Plan", "b"),
		deckSlide(2, "Team", "t"),
		deckSlide(3, "Risks and Issues", "r"),
		deckSlide(4, "Appendix", "a"),
	}}
	doc := outline.DocumentOutline{Sections: []outline.Section{
		{Title: "Budget"},
		{Title: "Known Risks"},
	}}

	got := NewMerger(MergeOptions{}).Merge(deck, doc)
	m := LexicalOverlap

	for _, ds := range deck.Slides {
		merged := 0
		for _, sec := range doc.Sections {
			if m(ds.Title, sec.Title) {
				merged++
			}
		}
		standalone := 0
		for _, s := range got.Slides {
			if s.Origin == outline.OriginFromDeck && s.Title == ds.Title {
				standalone++
			}
		}
		assert.True(t, (merged > 0) != (standalone > 0), "slide %q merged=%d standalone=%d", ds.Title, merged, standalone)
		assert.LessOrEqual(t, standalone, 1)
	}

	require.Len(t, got.Slides, 5)
	assert.Equal(t, "Team", got.Slides[3].Title)
	assert.Equal(t, "Appendix", got.Slides[4].Title)
}

func TestMerge_CustomMatcher(t *testing.T) {
	exact := func(a, b string) bool { return a != "" && a == b }
	got := NewMerger(MergeOptions{Match: exact}).Merge(scenarioDeck(), scenarioDocument())

	// Neither deck title equals a section title, so both are leftovers.
	require.Len(t, got.Slides, 5)
	assert.Equal(t, []string{"The project aims to deliver.", "• Goals", "  - ship"}, got.Slides[2].Content)
	assert.Equal(t, outline.OriginFromDeck, got.Slides[3].Origin)
	assert.Equal(t, outline.OriginFromDeck, got.Slides[4].Origin)
}

func TestMerge_Deterministic(t *testing.T) {
	m := NewMerger(MergeOptions{})
	assert.Equal(t, m.Merge(scenarioDeck(), scenarioDocument()), m.Merge(scenarioDeck(), scenarioDocument()))
}

func TestLexicalOverlap(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Project Overview", "2. Project Overview", true},
		{"project", "PROJECT plan", true},
		{"Test Presentation", "1. Introduction", false},
		{"Goals", "", false},
		{"", "", false},
		{"   ", "Goals", false},
		{"Goals:", "Goals", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LexicalOverlap(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
		assert.Equal(t, LexicalOverlap(tt.a, tt.b), LexicalOverlap(tt.b, tt.a), "symmetry for %q, %q", tt.a, tt.b)
	}
}
