package orchestrator

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dusk-indust/deckmerge/internal/render"
)

// Default output file names, created under Config.OutputDir.
const (
	CombinedFileName  = "combined_presentation.pptx"
	GeneratedFileName = "generated_presentation.pptx"
)

// Defaults for the merged title slide.
const (
	DefaultTitle          = "Combined Presentation"
	DefaultTitleSlideLine = "Generated from deck extraction and document structure"
)

// Config holds the runtime configuration of a Pipeline.
type Config struct {
	// OutputDir receives default outputs. Empty means os.TempDir().
	OutputDir string

	// DefaultTitle is the presentation title when neither input has one.
	DefaultTitle string

	// TitleSlideLine is the single content line of the title slide.
	TitleSlideLine string

	// MaxFileSize bounds input files; see extract.Options.
	MaxFileSize int64

	// Workers bounds concurrent extractions in FanOut. Zero means 4.
	Workers int

	// Match aligns deck slides with document sections. Nil uses LexicalOverlap.
	Match Matcher

	// NewCanvas creates the authoring backend. Nil uses the pptx writer.
	NewCanvas func() render.Canvas

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.OutputDir == "" {
		c.OutputDir = os.TempDir()
	}
	if c.DefaultTitle == "" {
		c.DefaultTitle = DefaultTitle
	}
	if c.TitleSlideLine == "" {
		c.TitleSlideLine = DefaultTitleSlideLine
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.Match == nil {
		c.Match = LexicalOverlap
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// OutputPath returns path, or name under the output directory when path
// is empty.
func (c Config) OutputPath(path, name string) string {
	if path != "" {
		return path
	}
	dir := c.OutputDir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, name)
}
