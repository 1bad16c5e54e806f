package orchestrator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/deckmerge/internal/outline"
)

// Extractor produces outlines from input files.
type Extractor interface {
	ExtractDeck(ctx context.Context, path string) (*outline.DeckOutline, error)
	ExtractDocument(ctx context.Context, path string) (*outline.DocumentOutline, error)
}

// ExtractTask is one input file to extract.
type ExtractTask struct {
	Path   string
	Format outline.Format
}

// TaskFor builds an ExtractTask, inferring the format from the extension.
// Unknown extensions yield an empty Format, which Run reports as
// ErrInvalidInput.
func TaskFor(path string) ExtractTask {
	t := ExtractTask{Path: path}
	switch {
	case outline.FormatDeck.HasExtension(path):
		t.Format = outline.FormatDeck
	case outline.FormatDocument.HasExtension(path):
		t.Format = outline.FormatDocument
	}
	return t
}

// ExtractResult holds the outcome of one ExtractTask. Exactly one of Deck,
// Document and Err is set.
type ExtractResult struct {
	Path     string
	Deck     *outline.DeckOutline
	Document *outline.DocumentOutline
	Err      error
}

// FanOut runs independent extractions in parallel. A failed task does not
// cancel the others; each result carries its own error.
type FanOut struct {
	ex         Extractor
	workers    int
	onProgress func(ProgressEvent)
}

// NewFanOut creates a FanOut running at most workers tasks at once.
// onProgress is called from the worker goroutines; it may be nil.
func NewFanOut(ex Extractor, workers int, onProgress func(ProgressEvent)) *FanOut {
	if workers <= 0 {
		workers = 1
	}
	return &FanOut{
		ex:         ex,
		workers:    workers,
		onProgress: onProgress,
	}
}

// Run extracts every task and returns the results in task order.
func (f *FanOut) Run(ctx context.Context, tasks []ExtractTask) []ExtractResult {
	results := make([]ExtractResult, len(tasks))

	var g errgroup.Group
	g.SetLimit(f.workers)

	for i, task := range tasks {
		step := stepFor(task.Format)
		f.emit(ProgressEvent{Step: step, Item: task.Path, Status: ProgressPending})

		g.Go(func() error {
			f.emit(ProgressEvent{Step: step, Item: task.Path, Status: ProgressWorking})

			res := f.extract(ctx, task)
			results[i] = res

			if res.Err != nil {
				f.emit(ProgressEvent{Step: step, Item: task.Path, Status: ProgressFailed, Message: res.Err.Error()})
				return nil
			}
			f.emit(ProgressEvent{Step: step, Item: task.Path, Status: ProgressComplete})
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func (f *FanOut) extract(ctx context.Context, task ExtractTask) ExtractResult {
	res := ExtractResult{Path: task.Path}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	switch task.Format {
	case outline.FormatDeck:
		res.Deck, res.Err = f.ex.ExtractDeck(ctx, task.Path)
	case outline.FormatDocument:
		res.Document, res.Err = f.ex.ExtractDocument(ctx, task.Path)
	default:
		res.Err = fmt.Errorf("%w: unsupported file type: %s", outline.ErrInvalidInput, task.Path)
	}
	return res
}

func stepFor(f outline.Format) Step {
	if f == outline.FormatDocument {
		return StepExtractDocument
	}
	return StepExtractDeck
}

// emit sends a progress event if a callback is registered.
func (f *FanOut) emit(ev ProgressEvent) {
	if f.onProgress != nil {
		f.onProgress(ev)
	}
}
