package orchestrator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/deckmerge/internal/outline"
)

// mockExtractor implements Extractor with configurable functions.
type mockExtractor struct {
	deck     func(ctx context.Context, path string) (*outline.DeckOutline, error)
	document func(ctx context.Context, path string) (*outline.DocumentOutline, error)
}

func (m *mockExtractor) ExtractDeck(ctx context.Context, path string) (*outline.DeckOutline, error) {
	return m.deck(ctx, path)
}

func (m *mockExtractor) ExtractDocument(ctx context.Context, path string) (*outline.DocumentOutline, error) {
	return m.document(ctx, path)
}

func okExtractor() *mockExtractor {
	return &mockExtractor{
		deck: func(ctx context.Context, path string) (*outline.DeckOutline, error) {
			return &outline.DeckOutline{Title: path}, nil
		},
		document: func(ctx context.Context, path string) (*outline.DocumentOutline, error) {
			return &outline.DocumentOutline{DocumentTitle: path}, nil
		},
	}
}

func TestTaskFor(t *testing.T) {
	assert.Equal(t, outline.FormatDeck, TaskFor("a.PPTX").Format)
	assert.Equal(t, outline.FormatDeck, TaskFor("a.ppt").Format)
	assert.Equal(t, outline.FormatDocument, TaskFor("b.docx").Format)
	assert.Equal(t, outline.Format(""), TaskFor("c.pdf").Format)
}

func TestFanOut_ResultsKeepTaskOrder(t *testing.T) {
	fanout := NewFanOut(okExtractor(), 2, nil)
	tasks := []ExtractTask{TaskFor("a.pptx"), TaskFor("b.docx"), TaskFor("c.pptx")}

	results := fanout.Run(context.Background(), tasks)
	require.Len(t, results, 3)

	assert.Equal(t, "a.pptx", results[0].Deck.Title)
	assert.Nil(t, results[0].Document)
	assert.Equal(t, "b.docx", results[1].Document.DocumentTitle)
	assert.Nil(t, results[1].Deck)
	assert.Equal(t, "c.pptx", results[2].Deck.Title)
	for i, res := range results {
		assert.Equal(t, tasks[i].Path, res.Path)
		assert.NoError(t, res.Err)
	}
}

func TestFanOut_FailureDoesNotCancelOthers(t *testing.T) {
	ex := okExtractor()
	ex.deck = func(ctx context.Context, path string) (*outline.DeckOutline, error) {
		if path == "bad.pptx" {
			return nil, &outline.DeckReadError{Path: path, Err: errors.New("corrupt")}
		}
		// Give the failure a chance to land first.
		time.Sleep(10 * time.Millisecond)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &outline.DeckOutline{Title: path}, nil
	}

	results := NewFanOut(ex, 4, nil).Run(context.Background(), []ExtractTask{
		TaskFor("bad.pptx"), TaskFor("good.pptx"), TaskFor("notes.txt"),
	})

	require.Len(t, results, 3)
	assert.Equal(t, outline.KindDeckReadError, outline.ErrorKind(results[0].Err))
	require.NoError(t, results[1].Err)
	assert.Equal(t, "good.pptx", results[1].Deck.Title)
	assert.ErrorIs(t, results[2].Err, outline.ErrInvalidInput)
}

func TestFanOut_RespectsWorkerLimit(t *testing.T) {
	var (
		inFlight atomic.Int32
		peak     atomic.Int32
	)
	ex := okExtractor()
	ex.deck = func(ctx context.Context, path string) (*outline.DeckOutline, error) {
		n := inFlight.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return &outline.DeckOutline{}, nil
	}

	tasks := make([]ExtractTask, 10)
	for i := range tasks {
		tasks[i] = TaskFor("deck.pptx")
	}
	NewFanOut(ex, 2, nil).Run(context.Background(), tasks)

	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.GreaterOrEqual(t, peak.Load(), int32(1))
}

func TestFanOut_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	ex := okExtractor()
	ex.deck = func(ctx context.Context, path string) (*outline.DeckOutline, error) {
		calls.Add(1)
		return &outline.DeckOutline{}, nil
	}

	results := NewFanOut(ex, 2, nil).Run(ctx, []ExtractTask{TaskFor("a.pptx"), TaskFor("b.pptx")})
	for _, res := range results {
		assert.ErrorIs(t, res.Err, context.Canceled)
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestFanOut_ProgressEvents(t *testing.T) {
	var (
		mu     sync.Mutex
		events []ProgressEvent
	)
	onProgress := func(ev ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	}

	ex := okExtractor()
	ex.document = func(ctx context.Context, path string) (*outline.DocumentOutline, error) {
		return nil, errors.New("broken")
	}

	NewFanOut(ex, 1, onProgress).Run(context.Background(), []ExtractTask{TaskFor("a.pptx"), TaskFor("b.docx")})

	mu.Lock()
	defer mu.Unlock()

	counts := map[ProgressStatus]int{}
	for _, ev := range events {
		counts[ev.Status]++
		if ev.Item == "b.docx" {
			assert.Equal(t, StepExtractDocument, ev.Step)
		}
	}
	assert.Equal(t, 2, counts[ProgressPending])
	assert.Equal(t, 2, counts[ProgressWorking])
	assert.Equal(t, 1, counts[ProgressComplete])
	assert.Equal(t, 1, counts[ProgressFailed])
}

func TestNewFanOut_ClampsWorkers(t *testing.T) {
	assert.Equal(t, 1, NewFanOut(okExtractor(), 0, nil).workers)
}
