// Package outline holds the normalized, format-agnostic outlines that flow
// between the extraction, merge and render stages.
package outline

import "fmt"

// Slide types of an OutputSlide.
const (
	SlideTypeTitle   = "title"
	SlideTypeContent = "content"
)

// Layout hints carried by output slides.
const (
	LayoutTitleSlide      = "Title Slide"
	LayoutTitleAndContent = "Title and Content"
)

// OriginFromDeck marks an output slide emitted for an unmatched deck slide.
const OriginFromDeck = "from_deck"

// --- Deck ---

// DeckOutline is the normalized structure of a slide deck.
type DeckOutline struct {
	Title      string        `json:"title"`
	Slides     []SlideRecord `json:"slides"`
	SlideCount int           `json:"slide_count"`
}

// SlideRecord describes one deck slide.
type SlideRecord struct {
	Index        int           `json:"index"` // 1-based
	Title        string        `json:"title"`
	ContentItems []ContentItem `json:"content_items"`
	Tables       [][][]string  `json:"tables"`
	Images       []ImageRecord `json:"images"`
	LayoutName   string        `json:"layout_name"`
}

// ContentItem is the text of a non-title shape.
type ContentItem struct {
	Text      string `json:"text"`
	ShapeName string `json:"source_shape_name"`
}

// ImageRecord is a picture shape. Sizes are in EMU.
type ImageRecord struct {
	ShapeName string `json:"shape_name"`
	Width     int64  `json:"width"`
	Height    int64  `json:"height"`
}

// ContentTexts returns the text of every content item in order.
func (s SlideRecord) ContentTexts() []string {
	texts := make([]string, 0, len(s.ContentItems))
	for _, item := range s.ContentItems {
		texts = append(texts, item.Text)
	}
	return texts
}

// --- Document ---

// DocumentOutline is the normalized structure of a text document.
type DocumentOutline struct {
	DocumentTitle    string           `json:"document_title"`
	Sections         []Section        `json:"sections"`
	StylesUsed       []string         `json:"styles_used"`
	StructureOutline []OutlineEntry   `json:"structure_outline"`
	TableStructures  []TableStructure `json:"table_structures"`
	ParagraphCount   int              `json:"paragraph_count"`
	TableCount       int              `json:"table_count"`
}

// Section is a top-level heading with its body paragraphs and nested headings.
type Section struct {
	Title       string           `json:"title"`
	Level       int              `json:"level"`
	Content     []SectionContent `json:"content"`
	Subsections []Subsection     `json:"subsections"`
}

// SectionContent is a body paragraph attached to a section.
type SectionContent struct {
	Text  string `json:"text"`
	Style string `json:"style_name"`
}

// Subsection is a deeper heading attached to its enclosing section.
type Subsection struct {
	Title   string              `json:"title"`
	Level   int                 `json:"level"`
	Content []SubsectionContent `json:"content"`
}

// SubsectionContent is a body line attached to a subsection.
type SubsectionContent struct {
	Text string `json:"text"`
}

// OutlineEntry is one heading in the flat heading index.
type OutlineEntry struct {
	Level          int    `json:"level"`
	Title          string `json:"title"`
	ParagraphIndex int    `json:"paragraph_index"`
}

// TableStructure summarizes a document table.
type TableStructure struct {
	Number      int      `json:"table_number"` // 1-based
	RowCount    int      `json:"row_count"`
	ColumnCount int      `json:"column_count"`
	HeaderCells []string `json:"header_cells"`
}

// --- Combined ---

// CombinedOutline is the merge of a deck outline and a document outline.
type CombinedOutline struct {
	PresentationTitle string        `json:"presentation_title"`
	Slides            []OutputSlide `json:"slides"`
	SourceInfo        SourceInfo    `json:"source_info"`
}

// OutputSlide is one slide of the combined outline.
type OutputSlide struct {
	SlideType  string   `json:"slide_type" jsonschema:"title or content"`
	Title      string   `json:"title"`
	Content    []string `json:"content"`
	LayoutHint string   `json:"layout_hint,omitempty"`
	Origin     string   `json:"origin,omitempty" jsonschema:"from_deck when the slide came from an unmatched deck slide"`
}

// SourceInfo records the sizes of the merged inputs.
type SourceInfo struct {
	DeckSlideCount       int `json:"deck_slide_count"`
	DocumentSectionCount int `json:"document_section_count"`
}

// Validate reports an InvalidInput error when the outline cannot be rendered.
func (c CombinedOutline) Validate() error {
	for i, s := range c.Slides {
		switch s.SlideType {
		case SlideTypeTitle, SlideTypeContent:
		default:
			return fmt.Errorf("%w: slide %d has slide_type %q (want %q or %q)",
				ErrInvalidInput, i+1, s.SlideType, SlideTypeTitle, SlideTypeContent)
		}
	}
	return nil
}
