package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dusk-indust/deckmerge/internal/outline"
)

// BatchExport is the JSON document printed for a multi-file extraction.
type BatchExport struct {
	ExportedAt string       `json:"exportedAt"`
	Files      []FileExport `json:"files"`
}

// FileExport is the outcome for one input file.
type FileExport struct {
	Path     string                   `json:"path"`
	Format   outline.Format           `json:"format,omitempty"`
	Deck     *outline.DeckOutline     `json:"deck,omitempty"`
	Document *outline.DocumentOutline `json:"document,omitempty"`
	Error    string                   `json:"error,omitempty"`
	Kind     string                   `json:"errorKind,omitempty"`
}

// NewBatchExport stamps an empty batch with the current time.
func NewBatchExport() *BatchExport {
	return &BatchExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Files:      []FileExport{},
	}
}

// Add records a file result. A non-nil err replaces the outlines.
func (b *BatchExport) Add(path string, format outline.Format, deck *outline.DeckOutline, doc *outline.DocumentOutline, err error) {
	fe := FileExport{Path: path, Format: format}
	if err != nil {
		fe.Error = err.Error()
		fe.Kind = outline.ErrorKind(err)
	} else {
		fe.Deck = deck
		fe.Document = doc
	}
	b.Files = append(b.Files, fe)
}

// Failed counts files that carry an error.
func (b *BatchExport) Failed() int {
	n := 0
	for _, f := range b.Files {
		if f.Error != "" {
			n++
		}
	}
	return n
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
