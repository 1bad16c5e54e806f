package extract

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/dusk-indust/deckmerge/internal/docx"
	"github.com/dusk-indust/deckmerge/internal/outline"
)

// DocumentOutliner extracts a DocumentOutline from a .docx file.
type DocumentOutliner struct {
	opts Options
}

// NewDocumentOutliner creates a DocumentOutliner.
func NewDocumentOutliner(opts Options) *DocumentOutliner {
	opts.defaults()
	return &DocumentOutliner{opts: opts}
}

// Read validates path and extracts its outline. Parse failures are
// returned as *outline.DocumentReadError.
func (o *DocumentOutliner) Read(ctx context.Context, path string) (*outline.DocumentOutline, error) {
	if err := outline.CheckInput(path, outline.FormatDocument, o.opts.MaxFileSize); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := docx.Open(path)
	if err != nil {
		return nil, &outline.DocumentReadError{Path: path, Err: err}
	}

	out := BuildDocumentOutline(doc)
	o.opts.Logger.Debug("document outlined", "path", path,
		"sections", len(out.Sections), "paragraphs", out.ParagraphCount, "tables", out.TableCount)
	return &out, nil
}

// scanState is the accumulator threaded through the paragraph fold.
type scanState struct {
	open int // index into sections of the open top-level section, -1 when none
}

// BuildDocumentOutline derives the outline of a parsed document.
func BuildDocumentOutline(doc *docx.Document) outline.DocumentOutline {
	out := outline.DocumentOutline{
		Sections:         []outline.Section{},
		StylesUsed:       []string{},
		StructureOutline: []outline.OutlineEntry{},
		TableStructures:  []outline.TableStructure{},
	}
	if doc == nil {
		return out
	}

	styles := make(map[string]struct{})
	state := scanState{open: -1}
	for i, p := range doc.Paragraphs {
		state = scanParagraph(&out, state, i, p, styles)
	}

	for style := range styles {
		out.StylesUsed = append(out.StylesUsed, style)
	}
	sort.Strings(out.StylesUsed)

	for i, t := range doc.Tables {
		out.TableStructures = append(out.TableStructures, tableStructure(i, t))
	}
	out.ParagraphCount = len(doc.Paragraphs)
	out.TableCount = len(doc.Tables)
	return out
}

// scanParagraph applies one paragraph to the outline and returns the next
// accumulator.
func scanParagraph(out *outline.DocumentOutline, state scanState, i int, p docx.Paragraph, styles map[string]struct{}) scanState {
	text := strings.TrimSpace(p.Text)
	if text == "" {
		return state
	}
	if p.Style != "" {
		styles[p.Style] = struct{}{}
	}

	if !isHeading(p.Style, text) {
		if state.open >= 0 {
			sec := &out.Sections[state.open]
			sec.Content = append(sec.Content, outline.SectionContent{Text: text, Style: p.Style})
		} else if i == 0 {
			out.DocumentTitle = text
		}
		return state
	}

	level := headingLevel(p.Style)
	out.StructureOutline = append(out.StructureOutline, outline.OutlineEntry{
		Level:          level,
		Title:          text,
		ParagraphIndex: i,
	})

	if level == 1 || state.open < 0 {
		out.Sections = append(out.Sections, outline.Section{
			Title:       text,
			Level:       level,
			Content:     []outline.SectionContent{},
			Subsections: []outline.Subsection{},
		})
		return scanState{open: len(out.Sections) - 1}
	}

	sec := &out.Sections[state.open]
	sec.Subsections = append(sec.Subsections, outline.Subsection{
		Title:   text,
		Level:   level,
		Content: []outline.SubsectionContent{},
	})
	return state
}

// isHeading reports whether a paragraph is structural: a "Heading" style,
// an all upper-case text, or a text ending in ":".
func isHeading(style, text string) bool {
	return strings.Contains(style, "Heading") || isUpper(text) || strings.HasSuffix(text, ":")
}

// isUpper reports whether text has at least one cased letter and no
// lower-case letter.
func isUpper(text string) bool {
	cased := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

// headingLevel returns the trailing integer of a "Heading" style name, and
// 1 for every other structural paragraph.
func headingLevel(style string) int {
	if !strings.Contains(style, "Heading") {
		return 1
	}
	end := len(style)
	start := end
	for start > 0 && style[start-1] >= '0' && style[start-1] <= '9' {
		start--
	}
	if start == end {
		return 1
	}
	n, err := strconv.Atoi(style[start:end])
	if err != nil {
		return 1
	}
	return n
}

func tableStructure(i int, t docx.Table) outline.TableStructure {
	ts := outline.TableStructure{
		Number:      i + 1,
		RowCount:    len(t.Rows),
		ColumnCount: t.ColumnCount,
		HeaderCells: []string{},
	}
	if len(t.Rows) > 0 {
		ts.HeaderCells = append(ts.HeaderCells, t.Rows[0]...)
	}
	return ts
}
