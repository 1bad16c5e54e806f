package outline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies an input document family.
type Format string

const (
	FormatDeck     Format = "deck"
	FormatDocument Format = "document"
)

// Extensions lists the accepted suffixes per format, modern first.
var Extensions = map[Format][]string{
	FormatDeck:     {".pptx", ".ppt"},
	FormatDocument: {".docx", ".doc"},
}

func (f Format) label() string {
	switch f {
	case FormatDeck:
		return "PowerPoint presentation"
	case FormatDocument:
		return "Word document"
	default:
		return string(f)
	}
}

// HasExtension reports whether path carries one of the format's suffixes,
// compared case-insensitively.
func (f Format) HasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range Extensions[f] {
		if ext == want {
			return true
		}
	}
	return false
}

// CheckInput validates that path exists, carries an extension of format f
// and, when maxSize > 0, is not larger than maxSize bytes. File contents
// are not inspected.
func CheckInput(path string, f Format, maxSize int64) error {
	if path == "" {
		return fmt.Errorf("%w: path is required", ErrInvalidInput)
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidInput, path)
	}
	if !f.HasExtension(path) {
		return fmt.Errorf("%w: file must be a %s (%s)", ErrInvalidInput, f.label(), strings.Join(Extensions[f], " or "))
	}
	if maxSize > 0 && info.Size() > maxSize {
		return fmt.Errorf("%w: file too large: %d bytes (max %d)", ErrInvalidInput, info.Size(), maxSize)
	}
	return nil
}

// CheckOutput validates a render target path. Only the modern deck suffix
// can be written.
func CheckOutput(path string) error {
	if path == "" {
		return fmt.Errorf("%w: output path is required", ErrInvalidInput)
	}
	if strings.ToLower(filepath.Ext(path)) != ".pptx" {
		return fmt.Errorf("%w: output file must end in .pptx: %s", ErrInvalidInput, path)
	}
	return nil
}
