// Package extract turns parsed decks and documents into normalized outlines.
//
// Each reader validates its input path, parses the file, and hands the
// parsed package to a pure Build function. The Build functions keep no
// state between calls, so extracting the same file twice yields equal
// outlines.
package extract

import (
	"log/slog"
)

// DefaultMaxFileSize bounds the size of an input file.
const DefaultMaxFileSize = 100 << 20

// Options configures DeckReader and DocumentOutliner.
type Options struct {
	// MaxFileSize rejects larger inputs with ErrInvalidInput. Zero uses
	// DefaultMaxFileSize; a negative value disables the check.
	MaxFileSize int64

	Logger *slog.Logger
}

func (o *Options) defaults() {
	if o.MaxFileSize == 0 {
		o.MaxFileSize = DefaultMaxFileSize
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}
