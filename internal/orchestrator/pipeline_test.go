package orchestrator

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/deckmerge/internal/fixture"
	"github.com/dusk-indust/deckmerge/internal/outline"
	"github.com/dusk-indust/deckmerge/internal/pptx"
)

func writeInputs(t *testing.T) (deckPath, docPath string) {
	t.Helper()
	dir := t.TempDir()
	deckPath = filepath.Join(dir, "test.pptx")
	docPath = filepath.Join(dir, "test.docx")

	fixture.WriteDeck(t, deckPath,
		fixture.Slide{Layout: "Title Slide", Shapes: []fixture.Shape{
			fixture.TitleShape("Test Presentation"),
			{Kind: fixture.Placeholder, Name: "Subtitle 2", Text: "This is a test"},
		}},
		fixture.Slide{Layout: "Title and Content", Shapes: []fixture.Shape{
			fixture.TitleShape("Project Overview"),
			fixture.BodyShape("Main objective"),
			{Kind: fixture.TextBox, Name: "TextBox 3", Text: "Secondary goal"},
		}},
	)
	fixture.WriteDocument(t, docPath,
		fixture.P("Heading1", "1. Introduction"),
		fixture.P("", "This document describes the project."),
		fixture.P("Heading1", "2. Project Overview"),
		fixture.P("", "The project aims to deliver."),
		fixture.P("Heading2", "2.1 Goals"),
	)
	return deckPath, docPath
}

func TestPipeline_Combine(t *testing.T) {
	deckPath, docPath := writeInputs(t)
	out := t.TempDir()
	p := NewPipeline(Config{OutputDir: out})
	defer p.Close()

	res, err := p.Combine(context.Background(), deckPath, docPath, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, CombinedFileName), res.OutputFile)
	assert.Equal(t, 4, res.SlidesCreated)
	assert.Equal(t, "Test Presentation", res.Outline.PresentationTitle)

	overview := res.Outline.Slides[2]
	assert.Equal(t, "2. Project Overview", overview.Title)
	assert.Equal(t, []string{
		"The project aims to deliver.",
		"Main objective",
		"Secondary goal",
		"• 2.1 Goals",
	}, overview.Content)

	pres, err := pptx.Open(res.OutputFile)
	require.NoError(t, err)
	assert.Len(t, pres.Slides, 4)
}

func TestPipeline_CombineErrors(t *testing.T) {
	deckPath, docPath := writeInputs(t)
	p := NewPipeline(Config{OutputDir: t.TempDir()})
	ctx := context.Background()

	_, err := p.Combine(ctx, deckPath, docPath, filepath.Join(t.TempDir(), "out.txt"))
	assert.ErrorIs(t, err, outline.ErrInvalidInput)

	_, err = p.Combine(ctx, filepath.Join(t.TempDir(), "missing.pptx"), docPath, "")
	assert.ErrorIs(t, err, outline.ErrNotFound)

	_, err = p.Combine(ctx, docPath, deckPath, "")
	assert.ErrorIs(t, err, outline.ErrInvalidInput, "swapped inputs fail the extension check")

	broken := filepath.Join(t.TempDir(), "broken.docx")
	fixture.WriteFile(t, broken, "nope")
	_, err = p.Combine(ctx, deckPath, broken, "")
	var docErr *outline.DocumentReadError
	assert.True(t, errors.As(err, &docErr))
}

func TestPipeline_RenderDefaultPath(t *testing.T) {
	out := t.TempDir()
	p := NewPipeline(Config{OutputDir: out})

	c := outline.CombinedOutline{Slides: []outline.OutputSlide{
		{SlideType: outline.SlideTypeTitle, Title: "Hand Built"},
		{SlideType: outline.SlideTypeContent, Title: "One", Content: []string{"a", "b"}},
	}}
	res, err := p.Render(context.Background(), c, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, GeneratedFileName), res.OutputFile)
	assert.Equal(t, 2, res.SlidesCreated)
}

func TestPipeline_ProgressEvents(t *testing.T) {
	deckPath, _ := writeInputs(t)
	p := NewPipeline(Config{})

	_, err := p.ExtractDeck(context.Background(), deckPath)
	require.NoError(t, err)
	_, err = p.ExtractDeck(context.Background(), filepath.Join(t.TempDir(), "missing.pptx"))
	require.Error(t, err)
	p.Close()

	var statuses []ProgressStatus
	for ev := range p.Progress() {
		assert.Equal(t, StepExtractDeck, ev.Step)
		statuses = append(statuses, ev.Status)
	}
	assert.Equal(t, []ProgressStatus{ProgressWorking, ProgressComplete, ProgressWorking, ProgressFailed}, statuses)
}

func TestPipeline_UsableAfterClose(t *testing.T) {
	deckPath, docPath := writeInputs(t)
	p := NewPipeline(Config{OutputDir: t.TempDir()})
	p.Close()

	require.NotPanics(t, func() {
		res, err := p.Combine(context.Background(), deckPath, docPath, "")
		require.NoError(t, err)
		assert.Equal(t, 4, res.SlidesCreated)
		p.Close()
	})
}

func TestConfig_Defaults(t *testing.T) {
	p := NewPipeline(Config{})
	cfg := p.Config()
	assert.NotEmpty(t, cfg.OutputDir)
	assert.Equal(t, DefaultTitle, cfg.DefaultTitle)
	assert.Equal(t, DefaultTitleSlideLine, cfg.TitleSlideLine)
	assert.Equal(t, 4, cfg.Workers)
	assert.NotNil(t, cfg.Match)
	assert.NotNil(t, cfg.Logger)

	assert.Equal(t, "given.pptx", cfg.OutputPath("given.pptx", CombinedFileName))
	assert.Equal(t, filepath.Join(cfg.OutputDir, GeneratedFileName), cfg.OutputPath("", GeneratedFileName))
}
