package outline

import (
	"errors"
	"fmt"
)

// ErrInvalidInput indicates a bad file extension, oversized input or a
// malformed outline.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotFound indicates a missing input path.
var ErrNotFound = errors.New("file not found")

// DeckReadError wraps a failure of the deck parser.
type DeckReadError struct {
	Path string
	Err  error
}

func (e *DeckReadError) Error() string {
	return fmt.Sprintf("read deck %s: %v", e.Path, e.Err)
}

func (e *DeckReadError) Unwrap() error {
	return e.Err
}

// DocumentReadError wraps a failure of the document parser.
type DocumentReadError struct {
	Path string
	Err  error
}

func (e *DocumentReadError) Error() string {
	return fmt.Sprintf("read document %s: %v", e.Path, e.Err)
}

func (e *DocumentReadError) Unwrap() error {
	return e.Err
}

// RenderError wraps a failure of the deck-authoring backend.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Error kinds reported by ErrorKind.
const (
	KindInvalidInput      = "invalid_input"
	KindNotFound          = "not_found"
	KindDeckReadError     = "deck_read_error"
	KindDocumentReadError = "document_read_error"
	KindRenderError       = "render_error"
	KindInternal          = "internal"
)

// ErrorKind classifies err into one of the Kind constants.
func ErrorKind(err error) string {
	var (
		deckErr   *DeckReadError
		docErr    *DocumentReadError
		renderErr *RenderError
	)
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.As(err, &deckErr):
		return KindDeckReadError
	case errors.As(err, &docErr):
		return KindDocumentReadError
	case errors.As(err, &renderErr):
		return KindRenderError
	default:
		return KindInternal
	}
}
