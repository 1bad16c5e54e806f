package orchestrator

import (
	"context"

	"github.com/dusk-indust/deckmerge/internal/extract"
	"github.com/dusk-indust/deckmerge/internal/outline"
	"github.com/dusk-indust/deckmerge/internal/render"
)

// Compile-time interface check.
var _ Extractor = (*Pipeline)(nil)

// CombineResult is the outcome of Pipeline.Combine.
type CombineResult struct {
	Outline       outline.CombinedOutline `json:"combined_outline"`
	OutputFile    string                  `json:"output_file"`
	SlidesCreated int                     `json:"slides_created"`
}

// RenderResult is the outcome of Pipeline.Render.
type RenderResult struct {
	OutputFile    string `json:"output_file"`
	SlidesCreated int    `json:"slides_created"`
}

// Pipeline runs the extract, merge and render steps. Every call builds its
// own outlines, so one Pipeline may serve concurrent requests.
type Pipeline struct {
	cfg      Config
	deck     *extract.DeckReader
	document *extract.DocumentOutliner
	merger   *Merger
	renderer *render.Renderer
	progress *ProgressReporter
}

// NewPipeline creates a Pipeline.
func NewPipeline(cfg Config) *Pipeline {
	cfg.defaults()
	opts := extract.Options{MaxFileSize: cfg.MaxFileSize, Logger: cfg.Logger}
	return &Pipeline{
		cfg:      cfg,
		deck:     extract.NewDeckReader(opts),
		document: extract.NewDocumentOutliner(opts),
		merger: NewMerger(MergeOptions{
			Match:          cfg.Match,
			DefaultTitle:   cfg.DefaultTitle,
			TitleSlideLine: cfg.TitleSlideLine,
		}),
		renderer: render.New(cfg.NewCanvas),
		progress: NewProgressReporter(),
	}
}

// Config returns the effective configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Progress returns a channel that emits progress events.
func (p *Pipeline) Progress() <-chan ProgressEvent {
	return p.progress.Subscribe()
}

// Close ends the progress channel. The Pipeline stays usable afterwards;
// later steps simply report nothing.
func (p *Pipeline) Close() {
	p.progress.Close()
}

// ExtractDeck extracts the outline of one deck.
func (p *Pipeline) ExtractDeck(ctx context.Context, path string) (*outline.DeckOutline, error) {
	var out *outline.DeckOutline
	err := p.step(StepExtractDeck, path, func() error {
		var err error
		out, err = p.deck.Read(ctx, path)
		return err
	})
	return out, err
}

// ExtractDocument extracts the outline of one document.
func (p *Pipeline) ExtractDocument(ctx context.Context, path string) (*outline.DocumentOutline, error) {
	var out *outline.DocumentOutline
	err := p.step(StepExtractDocument, path, func() error {
		var err error
		out, err = p.document.Read(ctx, path)
		return err
	})
	return out, err
}

// Merge combines two outlines.
func (p *Pipeline) Merge(deck outline.DeckOutline, doc outline.DocumentOutline) outline.CombinedOutline {
	var out outline.CombinedOutline
	_ = p.step(StepMerge, "", func() error {
		out = p.merger.Merge(deck, doc)
		return nil
	})
	return out
}

// Combine extracts both inputs, merges them and renders the result to
// outputPath, or to the default combined file when outputPath is empty.
func (p *Pipeline) Combine(ctx context.Context, deckPath, docPath, outputPath string) (*CombineResult, error) {
	target := p.cfg.OutputPath(outputPath, CombinedFileName)
	if err := outline.CheckOutput(target); err != nil {
		return nil, err
	}

	deck, err := p.ExtractDeck(ctx, deckPath)
	if err != nil {
		return nil, err
	}
	doc, err := p.ExtractDocument(ctx, docPath)
	if err != nil {
		return nil, err
	}

	combined := p.Merge(*deck, *doc)

	res, err := p.Render(ctx, combined, target)
	if err != nil {
		return nil, err
	}
	return &CombineResult{
		Outline:       combined,
		OutputFile:    res.OutputFile,
		SlidesCreated: res.SlidesCreated,
	}, nil
}

// Render draws a combined outline to outputPath, or to the default
// generated file when outputPath is empty.
func (p *Pipeline) Render(ctx context.Context, c outline.CombinedOutline, outputPath string) (*RenderResult, error) {
	target := p.cfg.OutputPath(outputPath, GeneratedFileName)
	var file string
	err := p.step(StepRender, target, func() error {
		var err error
		file, err = p.renderer.Render(ctx, c, target)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &RenderResult{OutputFile: file, SlidesCreated: len(c.Slides)}, nil
}

// step runs fn between working and complete/failed progress events.
func (p *Pipeline) step(s Step, item string, fn func() error) error {
	p.progress.Emit(ProgressEvent{Step: s, Item: item, Status: ProgressWorking})
	if err := fn(); err != nil {
		p.progress.Emit(ProgressEvent{Step: s, Item: item, Status: ProgressFailed, Message: err.Error()})
		p.cfg.Logger.Debug("step failed", "step", s.String(), "item", item, "kind", outline.ErrorKind(err), "err", err)
		return err
	}
	p.progress.Emit(ProgressEvent{Step: s, Item: item, Status: ProgressComplete})
	return nil
}
